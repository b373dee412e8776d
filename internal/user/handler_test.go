package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/movie-api/internal/user"
)

func newTestRouter() chi.Router {
	handler := user.NewHandler(newTestService())

	r := chi.NewRouter()
	r.Post("/users", handler.Register)
	r.Get("/users/{username}", handler.Get)
	r.Delete("/users/{username}", handler.Delete)
	r.Post("/users/{username}/movies/{movieID}", handler.AddFavorite)
	return r
}

func TestRegisterHandler_Created(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	body := `{"username": "moviefan1", "password": "s3cret", "email": "fan@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "moviefan1", resp["username"])
	assert.Equal(t, "fan@example.com", resp["email"])
	assert.NotEmpty(t, resp["id"])

	// The hash must never leave the server.
	assert.NotContains(t, resp, "password_hash")
	assert.NotContains(t, rec.Body.String(), "s3cret")
}

func TestRegisterHandler_ValidationFailed(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	body := `{"username": "ab", "password": "s3cret", "email": "fan@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp["code"])
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	body := `{"username": "moviefan1", "password": "s3cret", "email": "fan@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "username_taken", resp["code"])
}

func TestRegisterHandler_InvalidBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_request_body", resp["code"])
}

func TestGetHandler_NotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/users/ghostuser", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp["code"])
}

func TestAddFavoriteHandler(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	body := `{"username": "moviefan1", "password": "s3cret", "email": "fan@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/users/moviefan1/movies/m42", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Favorites []string `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"m42"}, resp.Favorites)
}

func TestDeleteHandler(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	body := `{"username": "moviefan1", "password": "s3cret", "email": "fan@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/users/moviefan1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "moviefan1 was deleted", resp["message"])

	req = httptest.NewRequest(http.MethodGet, "/users/moviefan1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
