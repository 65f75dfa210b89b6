// Package types provides type definitions for structured data used throughout the kpi-dashboard system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// LoginRequest is the request to exchange the dashboard password for an API token.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// EntryRequest is the request to append one entry to a KPI data file.
// Fields are raw column values keyed by the KPI's CSV column names.
type EntryRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the EntryRequest using the validator.
func (r *EntryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
