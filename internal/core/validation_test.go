// AngelaMos | 2026
// validation_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane@x.com"))
	assert.True(t, IsValidEmail(" jane.doe+quotes@mail.example.in "))
	assert.False(t, IsValidEmail("jane@x"))
	assert.False(t, IsValidEmail("jane x@y.com"))
	assert.False(t, IsValidEmail(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@x.com", NormalizeEmail("  Jane@X.COM "))
}

func TestValidatorReportsJSONNames(t *testing.T) {
	type form struct {
		FullName string `json:"full_name" validate:"required"`
		Email    string `json:"email"     validate:"required,contact_email"`
		Role     string `json:"role"      validate:"omitempty,oneof=admin agent client"`
	}

	err := NewValidator().Struct(form{Email: "nope", Role: "owner"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "full_name is required")
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "role must be one of: admin agent client")
}

func TestFormatValidationErrorFallback(t *testing.T) {
	assert.Equal(t, "invalid request", FormatValidationError(ErrInvalidInput))
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleAgent, RoleClient} {
		assert.True(t, IsValidRole(role))
	}
	assert.False(t, IsValidRole("superuser"))
}

func TestActor(t *testing.T) {
	assert.True(t, Actor{UserID: "u", Role: RoleAdmin}.IsAdmin())
	assert.False(t, Actor{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Actor{UserID: "u", Role: RoleAgent}.IsAdmin())
	assert.True(t, Actor{}.IsZero())
}
