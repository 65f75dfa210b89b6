package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	req := &LoginRequest{Password: "hunter2-but-longer"}
	assert.NoError(t, req.Validate())

	empty := &LoginRequest{}
	assert.Error(t, empty.Validate())
}

func TestEntryRequest_Validate(t *testing.T) {
	req := &EntryRequest{Fields: map[string]string{"date": "2024-01-05"}}
	assert.NoError(t, req.Validate())

	assert.Error(t, (&EntryRequest{}).Validate())
	assert.Error(t, (&EntryRequest{Fields: map[string]string{}}).Validate())
}
