package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/kpi-dashboard/internal/config"
)

func newTestJWTService(expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing",
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestJWTService(1)

	token, err := service.GenerateToken(OwnerSubject)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, OwnerSubject, claims.GetSubject())
	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
}

func TestJWTService_ValidateToken_Empty(t *testing.T) {
	service := newTestJWTService(1)

	_, err := service.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := newTestJWTService(1)

	_, err := service.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService(1)
	token, err := service.GenerateToken(OwnerSubject)
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-secret",
		ExpirationHours: 1,
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	// Negative expiration yields a token that expired in the past.
	service := newTestJWTService(-1)
	token, err := service.GenerateToken(OwnerSubject)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := newTestJWTService(1)
	token, err := service.GenerateToken(OwnerSubject)
	require.NoError(t, err)

	validator := service.AsTokenValidator()
	subject, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, OwnerSubject, subject.GetSubject())

	_, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
}
