package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTypeAccess marks short-lived credentials accepted by the API.
	TokenTypeAccess = "access"
	// TokenTypeRefresh marks long-lived credentials accepted only by the
	// refresh endpoint.
	TokenTypeRefresh = "refresh"
)

// AccessTokenPayload captures the data available when minting a JWT pair.
type AccessTokenPayload struct {
	UserID   uint
	Username string
	JTI      string
}

// Claims represents the typed JWT issued to clients. TokenType separates the
// access credential from the refresh credential sharing the same signer.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
