package movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/movie-api/internal/database"
)

var ErrNotFound = errors.New("movie not found")

// Repository handles read access to the movie catalog. The catalog is
// consumed read-only by the API; entries are seeded out of band.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List retrieves all movies
func (r *Repository) List(ctx context.Context) ([]*Movie, error) {
	var dbMovies []*database.Movie
	err := r.db.NewSelect().
		Model(&dbMovies).
		Order("title ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	movies := make([]*Movie, 0, len(dbMovies))
	for _, dbMovie := range dbMovies {
		movies = append(movies, mapDBMovieToModel(dbMovie))
	}

	return movies, nil
}

// GetByTitle retrieves a single movie by its title
func (r *Repository) GetByTitle(ctx context.Context, title string) (*Movie, error) {
	dbMovie := new(database.Movie)
	err := r.db.NewSelect().
		Model(dbMovie).
		Where("title = ?", title).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie by title: %w", err)
	}

	return mapDBMovieToModel(dbMovie), nil
}

// GetGenre retrieves a genre description by genre name from any movie
// carrying it.
func (r *Repository) GetGenre(ctx context.Context, name string) (*Genre, error) {
	dbMovie := new(database.Movie)
	err := r.db.NewSelect().
		Model(dbMovie).
		Where("genre->>'name' = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	return &Genre{
		Name:        dbMovie.Genre.Name,
		Description: dbMovie.Genre.Description,
	}, nil
}

// GetDirector retrieves a director bio by name from any movie directed by
// them.
func (r *Repository) GetDirector(ctx context.Context, name string) (*Director, error) {
	dbMovie := new(database.Movie)
	err := r.db.NewSelect().
		Model(dbMovie).
		Where("director->>'name' = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get director: %w", err)
	}

	return &Director{
		Name: dbMovie.Director.Name,
		Bio:  dbMovie.Director.Bio,
	}, nil
}

// mapDBMovieToModel converts database model to domain model
func mapDBMovieToModel(dbm *database.Movie) *Movie {
	actors := dbm.Actors
	if actors == nil {
		actors = []string{}
	}
	return &Movie{
		ID:          dbm.ID,
		Title:       dbm.Title,
		Description: dbm.Description,
		Genre: Genre{
			Name:        dbm.Genre.Name,
			Description: dbm.Genre.Description,
		},
		Director: Director{
			Name: dbm.Director.Name,
			Bio:  dbm.Director.Bio,
		},
		Actors:    actors,
		ImagePath: dbm.ImagePath,
		Featured:  dbm.Featured,
	}
}
