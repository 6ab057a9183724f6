package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// VINs are 17 characters and never use I, O or Q.
	vinRegex = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidVIN accepts an empty VIN, which is optional.
func IsValidVIN(vin string) bool {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	return vin == "" || vinRegex.MatchString(vin)
}

// QueryInt reads an integer query parameter. A missing parameter returns def;
// a malformed one returns ok=false.
func QueryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
