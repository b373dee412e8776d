package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redmonkez12/movie-api/internal/user"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// UserStore defines the credential lookup the login flow consumes.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(password, encodedHash string) (bool, error)
}

// Service handles authentication business logic
type Service struct {
	userStore     UserStore
	verifier      PasswordVerifier
	tokenService  TokenService
	tokenDuration time.Duration
}

func NewService(userStore UserStore, verifier PasswordVerifier, tokenService TokenService, tokenDuration time.Duration) *Service {
	return &Service{
		userStore:     userStore,
		verifier:      verifier,
		tokenService:  tokenService,
		tokenDuration: tokenDuration,
	}
}

// Login verifies credentials and mints an identity token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*user.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	existing, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := s.verifier.Verify(password, existing.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(existing.ID, existing.Username, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return existing, token, nil
}
