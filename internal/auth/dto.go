package auth

import (
	"github.com/lucasrivera/shopstead-backend/internal/users"
)

// RegisterRequest captures the signup payload.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// LoginRequest captures the user credentials sent to the token endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token being exchanged.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenPairResponse contains an access/refresh pair.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterResponse contains the created user plus their first token pair.
type RegisterResponse struct {
	User    *users.UserDTO `json:"user"`
	Access  string         `json:"access"`
	Refresh string         `json:"refresh"`
}
