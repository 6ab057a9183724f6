package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fueltrack-api/services"
)

func TestIsValidVIN(t *testing.T) {
	assert.True(t, IsValidVIN(""))
	assert.True(t, IsValidVIN("1HGCM82633A004352"))
	assert.True(t, IsValidVIN("1hgcm82633a004352"))
	assert.False(t, IsValidVIN("1HGCM82633A00435"))
	assert.False(t, IsValidVIN("1HGCM82633I004352"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("driver@example.com"))
	assert.False(t, IsValidEmail("driver@"))
}

func TestQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?window=3&bad=x", nil)

	v, ok := QueryInt(c, "window", 5)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	v, ok = QueryInt(c, "missing", 5)
	assert.True(t, ok)
	assert.Equal(t, 5, v)
	_, ok = QueryInt(c, "bad", 5)
	assert.False(t, ok)
}

func TestSendServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err  error
		code int
		body string
	}{
		{fmt.Errorf("vehicle: %w", services.ErrNotFound), http.StatusNotFound, `{"error":"Vehicle not found","code":404}`},
		{fmt.Errorf("%w: date is required", services.ErrInvalidInput), http.StatusBadRequest, `{"error":"Validation failed","message":"date is required","code":400}`},
		{errors.New("disk full"), http.StatusInternalServerError, `{"error":"Failed to process vehicle","message":"An unexpected error occurred","code":500}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		SendServiceError(c, tt.err, "Vehicle")
		assert.Equal(t, tt.code, w.Code)
		assert.JSONEq(t, tt.body, w.Body.String())
	}
}
