package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/movie-api/internal/httputil"
	"github.com/redmonkez12/movie-api/internal/logging"
)

// Handler contains HTTP handlers for user endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Username *string    `json:"username,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// UpdatePasswordRequest represents a password change request
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new user account with username, password, and email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} User
// @Failure      400 {object} ErrorResponse "Username already exists"
// @Failure      422 {object} ErrorResponse "Validation error"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /users [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"username": req.Username})

	newUser, err := h.service.Register(r.Context(), req.Username, req.Password, req.Email, req.Birthday)
	if err != nil {
		respondUserError(w, logger, err, "registration failed")
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	httputil.RespondJSON(w, newUser, http.StatusCreated)
}

// List handles listing all users
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} User
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	users, err := h.service.List(r.Context())
	if err != nil {
		logger.Error("failed to list users", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list users", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, users, http.StatusOK)
}

// Get handles fetching a single user
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Success      200 {object} User
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /users/{username} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	username := chi.URLParam(r, "username")

	u, err := h.service.Get(r.Context(), username)
	if err != nil {
		respondUserError(w, logger, err, "failed to get user")
		return
	}

	httputil.RespondJSON(w, u, http.StatusOK)
}

// UpdateProfile handles partial profile updates
// @Summary      Update a user's profile
// @Description  Partially update email, birthday, or username. The password is not touched.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Param        request body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} User
// @Failure      400 {object} ErrorResponse "Username already exists"
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      422 {object} ErrorResponse "Validation error"
// @Router       /users/{username} [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	username := chi.URLParam(r, "username")

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), username, ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Birthday: req.Birthday,
	})
	if err != nil {
		respondUserError(w, logger, err, "profile update failed")
		return
	}

	logger.Info("profile updated", "username", updated.Username)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// UpdatePassword handles password changes
// @Summary      Update a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Param        request body UpdatePasswordRequest true "New password"
// @Success      200 {object} User
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      422 {object} ErrorResponse "Validation error"
// @Router       /users/{username}/password [put]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	username := chi.URLParam(r, "username")

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid password update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdatePassword(r.Context(), username, req.NewPassword)
	if err != nil {
		respondUserError(w, logger, err, "password update failed")
		return
	}

	logger.Info("password updated", "username", username)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// AddFavorite handles adding a movie to the user's favorites
// @Summary      Add a movie to favorites
// @Description  Adds a movie id to the user's favorites set. Adding an already-present id is a no-op.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Param        movieID path string true "Movie ID"
// @Success      200 {object} User
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /users/{username}/movies/{movieID} [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	updated, err := h.service.AddFavorite(r.Context(), username, movieID)
	if err != nil {
		respondUserError(w, logger, err, "failed to add favorite")
		return
	}

	logger.Info("favorite added", "username", username, "movie_id", movieID)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// RemoveFavorite handles removing a movie from the user's favorites
// @Summary      Remove a movie from favorites
// @Description  Removes a movie id from the user's favorites set. Removing an absent id is a no-op.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Param        movieID path string true "Movie ID"
// @Success      200 {object} User
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /users/{username}/movies/{movieID} [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	updated, err := h.service.RemoveFavorite(r.Context(), username, movieID)
	if err != nil {
		respondUserError(w, logger, err, "failed to remove favorite")
		return
	}

	logger.Info("favorite removed", "username", username, "movie_id", movieID)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles account deletion
// @Summary      Deregister a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Success      200 {object} map[string]string
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /users/{username} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	username := chi.URLParam(r, "username")

	if err := h.service.Delete(r.Context(), username); err != nil {
		respondUserError(w, logger, err, "failed to delete user")
		return
	}

	logger.Info("user deleted", "username", username)

	httputil.RespondJSON(w, map[string]string{
		"message": fmt.Sprintf("%s was deleted", username),
	}, http.StatusOK)
}

// respondUserError maps service errors to HTTP responses. Store failures
// surface as a generic 500; details are only logged.
func respondUserError(w http.ResponseWriter, logger *logging.Logger, err error, action string) {
	switch {
	case errors.Is(err, ErrUsernameTooShort),
		errors.Is(err, ErrUsernameNotAlphanumeric),
		errors.Is(err, ErrInvalidEmailFormat),
		errors.Is(err, ErrPasswordRequired):
		logger.Warn(action, "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusUnprocessableEntity)
	case errors.Is(err, ErrDuplicateUsername):
		logger.Warn(action, "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeUsernameTaken, http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		logger.Warn(action, "error", err.Error())
		httputil.RespondErrorWithCode(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
	default:
		logger.Error(action, "error", err.Error())
		httputil.RespondErrorWithCode(w, action, httputil.CodeInternalError, http.StatusInternalServerError)
	}
}
