package auth

import (
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please enter a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validator.Struct(r)
}

// TokenPair is the backend's login response.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
