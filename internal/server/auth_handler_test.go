package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/kpi-dashboard/internal/config"
	"github.com/jonathan/kpi-dashboard/internal/types"
)

func newTestAuthHandler(t *testing.T, password string) *AuthHandler {
	t.Helper()

	var hash string
	if password != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(raw)
	}

	passwords := &config.PasswordConfig{
		BcryptCost:    10,
		DashboardHash: hash,
	}
	return NewAuthHandler(passwords, newTestJWTService(1))
}

func postLogin(handler *AuthHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := newTestAuthHandler(t, "correct horse battery")

	rec := postLogin(handler, `{"password":"correct horse battery"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	// The issued token must round-trip through the same JWT service.
	claims, err := handler.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, OwnerSubject, claims.GetSubject())
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler := newTestAuthHandler(t, "correct horse battery")

	rec := postLogin(handler, `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_NotConfigured(t *testing.T) {
	handler := newTestAuthHandler(t, "")

	rec := postLogin(handler, `{"password":"anything"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	handler := newTestAuthHandler(t, "correct horse battery")

	rec := postLogin(handler, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	handler := newTestAuthHandler(t, "correct horse battery")

	rec := postLogin(handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
