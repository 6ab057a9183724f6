package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fueltrack-api/services"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendValidationError(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: err,
		Code:    http.StatusBadRequest,
	})
}

// SendServiceError maps a service error to a response. what names the
// resource for not-found and failure messages, e.g. "Vehicle".
func SendServiceError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: what + " not found",
			Code:  http.StatusNotFound,
		})
	case errors.Is(err, services.ErrInvalidInput):
		SendValidationError(c, strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to process " + strings.ToLower(what),
			Message: "An unexpected error occurred",
			Code:    http.StatusInternalServerError,
		})
	}
}
