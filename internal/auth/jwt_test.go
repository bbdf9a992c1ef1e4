package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())

	tokenString, err := GenerateJWT("alice")
	require.NoError(t, err)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "alice", claims["sub"])
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	require.NoError(t, InitJWTSecret())

	tokenString, err := GenerateJWT("alice")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	require.NoError(t, InitJWTSecret())

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestInitJWTSecretRequiresEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, InitJWTSecret())
}
