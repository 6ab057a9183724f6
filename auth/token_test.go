package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	raw, err := GenerateToken("secret", "u1", "u1@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1@example.com", claims.Email)
}

func TestParseRejects(t *testing.T) {
	good, err := GenerateToken("secret", "u1", "", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("secret", "u1", "", -time.Minute)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "x@example.com"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, tc := range map[string]struct{ secret, raw string }{
		"wrong secret":    {"other", good},
		"expired":         {"secret", expired},
		"wrong algorithm": {"secret", hs512},
		"missing user":    {"secret", noUser},
		"garbage":         {"secret", "not.a.token"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = GenerateToken("secret", "", "", time.Hour)
	assert.Error(t, err)
}
