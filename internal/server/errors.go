// Package server provides the HTTP REST API for the KPI dashboard.
package server

import (
	"fmt"
	"net/http"
)

// ErrInvalidCredentials indicates a failed dashboard login
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrAuthNotConfigured indicates no dashboard password hash is configured
type ErrAuthNotConfigured struct{}

func (e *ErrAuthNotConfigured) Error() string {
	return "dashboard authentication is not configured"
}

// ErrUnknownKPI indicates a request for a KPI key that is not registered
type ErrUnknownKPI struct {
	Key string
}

func (e *ErrUnknownKPI) Error() string {
	return fmt.Sprintf("unknown KPI: %s", e.Key)
}

// ErrDataUnavailable indicates the KPI's backing CSV could not be read
type ErrDataUnavailable struct {
	Key   string
	Cause error
}

func (e *ErrDataUnavailable) Error() string {
	return fmt.Sprintf("data unavailable for KPI %s: %v", e.Key, e.Cause)
}

func (e *ErrDataUnavailable) Unwrap() error {
	return e.Cause
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrAuthNotConfigured:
		return http.StatusServiceUnavailable
	case *ErrUnknownKPI:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
