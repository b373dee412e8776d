package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims is the identity a token proves: who the user is and how long
// the proof holds. Validity is determined purely from the token itself,
// there is no server-side session state.
type TokenClaims struct {
	UserID    string    `json:"user_id"` // UUID stored as string in token
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenService defines the interface for token creation and validation.
// Implementations include PasetoService (PASETO v4.local) and JWTService (HS256).
type TokenService interface {
	CreateToken(userID uuid.UUID, username string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// NewTokenService constructs the token backend selected by configuration.
func NewTokenService(backend string, key []byte) (TokenService, error) {
	switch backend {
	case "paseto":
		return NewPasetoService(key)
	case "jwt":
		return NewJWTService(key)
	default:
		return nil, fmt.Errorf("unknown token backend %q", backend)
	}
}
