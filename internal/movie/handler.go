package movie

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/movie-api/internal/httputil"
	"github.com/redmonkez12/movie-api/internal/logging"
)

// Handler contains HTTP handlers for catalog endpoints. The cache is
// optional; a nil cache means every list request hits the database.
type Handler struct {
	repo  *Repository
	cache *Cache
}

func NewHandler(repo *Repository, cache *Cache) *Handler {
	return &Handler{repo: repo, cache: cache}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// List handles listing the movie catalog
// @Summary      List all movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Movie
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /movies [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.cache != nil {
		if movies, err := h.cache.GetList(r.Context()); err == nil {
			httputil.RespondJSON(w, movies, http.StatusOK)
			return
		} else if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("catalog cache read failed", "error", err.Error())
		}
	}

	movies, err := h.repo.List(r.Context())
	if err != nil {
		logger.Error("failed to list movies", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list movies", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetList(r.Context(), movies); err != nil {
			logger.Warn("catalog cache write failed", "error", err.Error())
		}
	}

	httputil.RespondJSON(w, movies, http.StatusOK)
}

// GetByTitle handles fetching a single movie
// @Summary      Get a movie by title
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        title path string true "Movie title"
// @Success      200 {object} Movie
// @Failure      404 {object} ErrorResponse "Movie not found"
// @Router       /movies/{title} [get]
func (h *Handler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	title := chi.URLParam(r, "title")

	m, err := h.repo.GetByTitle(r.Context(), title)
	if err != nil {
		respondMovieError(w, logger, err, "failed to get movie")
		return
	}

	httputil.RespondJSON(w, m, http.StatusOK)
}

// GetGenre handles fetching a genre description
// @Summary      Get a genre by name
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        name path string true "Genre name"
// @Success      200 {object} Genre
// @Failure      404 {object} ErrorResponse "Genre not found"
// @Router       /genres/{name} [get]
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	name := chi.URLParam(r, "name")

	genre, err := h.repo.GetGenre(r.Context(), name)
	if err != nil {
		respondMovieError(w, logger, err, "failed to get genre")
		return
	}

	httputil.RespondJSON(w, genre, http.StatusOK)
}

// GetDirector handles fetching a director bio
// @Summary      Get a director by name
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        name path string true "Director name"
// @Success      200 {object} Director
// @Failure      404 {object} ErrorResponse "Director not found"
// @Router       /directors/{name} [get]
func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	name := chi.URLParam(r, "name")

	director, err := h.repo.GetDirector(r.Context(), name)
	if err != nil {
		respondMovieError(w, logger, err, "failed to get director")
		return
	}

	httputil.RespondJSON(w, director, http.StatusOK)
}

func respondMovieError(w http.ResponseWriter, logger *logging.Logger, err error, action string) {
	if errors.Is(err, ErrNotFound) {
		logger.Warn(action, "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeNotFound, http.StatusNotFound)
		return
	}
	logger.Error(action, "error", err.Error())
	httputil.RespondErrorWithCode(w, action, httputil.CodeInternalError, http.StatusInternalServerError)
}
