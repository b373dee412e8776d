package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"time"
)

var (
	ErrUsernameTooShort        = errors.New("username must be at least 5 characters")
	ErrUsernameNotAlphanumeric = errors.New("username may only contain letters and digits")
	ErrPasswordRequired        = errors.New("password is required")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Store defines the persistence operations the service consumes.
type Store interface {
	Create(ctx context.Context, username, passwordHash, email string, birthday *time.Time) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) (*User, error)
	AddFavorite(ctx context.Context, username, movieID string) (*User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*User, error)
	Delete(ctx context.Context, username string) error
}

// PasswordHasher defines the interface for one-way password hashing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// Service handles user account business logic: registration, profile and
// password updates, favorites mutations, and deletion.
type Service struct {
	store  Store
	hasher PasswordHasher
}

func NewService(store Store, hasher PasswordHasher) *Service {
	return &Service{store: store, hasher: hasher}
}

// Register creates a new user account. The availability check ahead of the
// insert is a fast path only; the database unique constraint is what
// actually guarantees uniqueness under concurrent registration.
func (s *Service) Register(ctx context.Context, username, password, email string, birthday *time.Time) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.Create(ctx, username, passwordHash, email, birthday)
}

// Get retrieves a single user by username
func (s *Service) Get(ctx context.Context, username string) (*User, error) {
	return s.store.GetByUsername(ctx, username)
}

// List retrieves all users
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}

// UpdateProfile applies a partial profile update, re-validating only the
// fields that change.
func (s *Service) UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*User, error) {
	if update.Username != nil {
		if err := validateUsername(*update.Username); err != nil {
			return nil, err
		}
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
	}

	return s.store.UpdateProfile(ctx, username, update)
}

// UpdatePassword replaces the user's password. The plaintext is hashed here
// and discarded; only the hash reaches the store.
func (s *Service) UpdatePassword(ctx context.Context, username, newPassword string) (*User, error) {
	if newPassword == "" {
		return nil, ErrPasswordRequired
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.UpdatePassword(ctx, username, passwordHash)
}

// AddFavorite adds a movie id to the user's favorites set. Adding an id
// that is already present is not an error. The movie id is treated as an
// opaque reference; catalog existence is not checked.
func (s *Service) AddFavorite(ctx context.Context, username, movieID string) (*User, error) {
	return s.store.AddFavorite(ctx, username, movieID)
}

// RemoveFavorite removes a movie id from the user's favorites set.
// Removing an absent id returns the unchanged record.
func (s *Service) RemoveFavorite(ctx context.Context, username, movieID string) (*User, error) {
	return s.store.RemoveFavorite(ctx, username, movieID)
}

// Delete removes the user account
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.store.Delete(ctx, username)
}

func validateUsername(username string) error {
	if len(username) < 5 {
		return ErrUsernameTooShort
	}
	if !usernamePattern.MatchString(username) {
		return ErrUsernameNotAlphanumeric
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > 254 {
		return ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmailFormat
	}
	return nil
}
