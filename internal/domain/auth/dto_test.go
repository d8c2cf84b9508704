package auth

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	req := &LoginRequest{Email: "  ada@example.com ", Password: "secret"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "ada@example.com", req.Email)

	err := (&LoginRequest{Email: "ada"}).Validate()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, map[string]string{
		"email":    "Please enter a valid email",
		"password": "Password is required",
	}, errs.ToMap())
}
