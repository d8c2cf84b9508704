package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
	Note     string `json:"note,omitempty" validate:"omitempty,max=5"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(&credentials{Email: "a@b.cd", Password: "x"}))

	err := Struct(credentials{Email: "nope", Note: "too long"})
	require.Error(t, err)

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	m := errs.ToMap()
	assert.Equal(t, "email must be a valid email", m["email"])
	assert.Equal(t, "Password is required", m["password"])
	assert.Equal(t, "note must not exceed 5 characters", m["note"])
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("reason", "Reason is too short")
	assert.EqualError(t, errs.Err(), "reason: Reason is too short")
}
