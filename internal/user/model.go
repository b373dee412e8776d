package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never expose password hash in JSON
	Email        string     `json:"email"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Favorites    []string   `json:"favorites"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched; the password hash is never part of a profile update.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Birthday *time.Time
}
