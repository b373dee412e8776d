package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/movie-api/internal/database"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Repository handles user data persistence. Every mutation resolves to a
// single statement against one row, so concurrent requests for the same
// user interleave safely.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. The unique constraint on username is the
// authoritative uniqueness check; a violation maps to ErrDuplicateUsername.
func (r *Repository) Create(ctx context.Context, username, passwordHash, email string, birthday *time.Time) (*User, error) {
	now := time.Now()
	dbUser := &database.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Birthday:     birthday,
		Favorites:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByUsername retrieves a user by username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("username = ?", username).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List retrieves all users
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	var dbUsers []*database.User
	err := r.db.NewSelect().
		Model(&dbUsers).
		Order("username ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(dbUsers))
	for _, dbUser := range dbUsers {
		users = append(users, mapDBUserToModel(dbUser))
	}

	return users, nil
}

// UpdateProfile applies a partial profile update and returns the updated
// record. The password hash is never touched here.
func (r *Repository) UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*User, error) {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("username = ?", username)

	finalUsername := username
	if update.Username != nil {
		q = q.Set("username = ?", *update.Username)
		finalUsername = *update.Username
	}
	if update.Email != nil {
		q = q.Set("email = ?", *update.Email)
	}
	if update.Birthday != nil {
		q = q.Set("birthday = ?", *update.Birthday)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := requireRowsAffected(result); err != nil {
		return nil, err
	}

	return r.GetByUsername(ctx, finalUsername)
}

// UpdatePassword replaces the stored password hash
func (r *Repository) UpdatePassword(ctx context.Context, username, passwordHash string) (*User, error) {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", time.Now()).
		Where("username = ?", username).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	if err := requireRowsAffected(result); err != nil {
		return nil, err
	}

	return r.GetByUsername(ctx, username)
}

// AddFavorite adds a movie id to the user's favorites set. The CASE guard
// makes the operation idempotent and keeps it a single atomic statement.
func (r *Repository) AddFavorite(ctx context.Context, username, movieID string) (*User, error) {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("favorites = (CASE WHEN ? = ANY(favorites) THEN favorites ELSE array_append(favorites, ?) END)", movieID, movieID).
		Set("updated_at = ?", time.Now()).
		Where("username = ?", username).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	if err := requireRowsAffected(result); err != nil {
		return nil, err
	}

	return r.GetByUsername(ctx, username)
}

// RemoveFavorite removes a movie id from the user's favorites set.
// Removing an absent id is a no-op.
func (r *Repository) RemoveFavorite(ctx context.Context, username, movieID string) (*User, error) {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("favorites = array_remove(favorites, ?)", movieID).
		Set("updated_at = ?", time.Now()).
		Where("username = ?", username).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}

	if err := requireRowsAffected(result); err != nil {
		return nil, err
	}

	return r.GetByUsername(ctx, username)
}

// Delete removes a user record
func (r *Repository) Delete(ctx context.Context, username string) error {
	result, err := r.db.NewDelete().
		Model((*database.User)(nil)).
		Where("username = ?", username).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return requireRowsAffected(result)
}

func requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	favorites := dbu.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return &User{
		ID:           dbu.ID,
		Username:     dbu.Username,
		PasswordHash: dbu.PasswordHash,
		Email:        dbu.Email,
		Birthday:     dbu.Birthday,
		Favorites:    favorites,
		CreatedAt:    dbu.CreatedAt,
		UpdatedAt:    dbu.UpdatedAt,
	}
}
