package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, InitJWTSecret())
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	tokenString, err := GenerateJWT(42, "jane@example.com")
	require.NoError(t, err)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "jane@example.com", claims["email"])
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	require.NoError(t, InitJWTSecret())

	tokenString, err := GenerateJWT(1, "jane@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	require.NoError(t, InitJWTSecret())

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyJWTGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	_, err := VerifyJWT("not.a.token")
	assert.Error(t, err)
}
