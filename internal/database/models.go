package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persistence model for a user record. One row is one record;
// every update against it is applied atomically by Postgres.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	Username     string     `bun:"username,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"`
	Email        string     `bun:"email,notnull"`
	Birthday     *time.Time `bun:"birthday"`
	// Favorites holds movie ids with set semantics. The column is an array
	// but every mutation goes through array_append/array_remove guarded
	// against duplicates, so duplicates cannot appear.
	Favorites []string  `bun:"favorites,array,notnull,default:'{}'"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Movie is the persistence model for a catalog entry. Genre and director
// are embedded documents stored as jsonb.
type Movie struct {
	bun.BaseModel `bun:"table:movies,alias:m"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	Title       string    `bun:"title,notnull,unique"`
	Description string    `bun:"description,notnull"`
	Genre       Genre     `bun:"genre,type:jsonb"`
	Director    Director  `bun:"director,type:jsonb"`
	Actors      []string  `bun:"actors,array"`
	ImagePath   string    `bun:"image_path"`
	Featured    bool      `bun:"featured"`
}

type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}
