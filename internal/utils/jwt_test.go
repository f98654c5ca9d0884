package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configureTestJWT(t *testing.T) {
	t.Helper()
	ConfigureJWT(JWTParams{
		Secret:   "test-secret-key",
		Issuer:   "catalog-api",
		Audience: "catalog-admin",
		TTL:      time.Hour,
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	configureTestJWT(t)

	token, err := GenerateJWT("user-1", "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "catalog-api", claims.Issuer)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	configureTestJWT(t)
	token, err := GenerateJWT("user-1", "admin@example.com")
	require.NoError(t, err)

	ConfigureJWT(JWTParams{
		Secret:   "a-different-secret",
		Issuer:   "catalog-api",
		Audience: "catalog-admin",
		TTL:      time.Hour,
	})
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongIssuer(t *testing.T) {
	ConfigureJWT(JWTParams{
		Secret:   "test-secret-key",
		Issuer:   "some-other-service",
		Audience: "catalog-admin",
		TTL:      time.Hour,
	})
	token, err := GenerateJWT("user-1", "admin@example.com")
	require.NoError(t, err)

	configureTestJWT(t)
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	ConfigureJWT(JWTParams{
		Secret:   "test-secret-key",
		Issuer:   "catalog-api",
		Audience: "catalog-admin",
		TTL:      -time.Minute,
	})
	token, err := GenerateJWT("user-1", "admin@example.com")
	require.NoError(t, err)

	configureTestJWT(t)
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	configureTestJWT(t)
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
