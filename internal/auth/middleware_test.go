package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) (*Middleware, TokenService) {
	t.Helper()
	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)
	return NewMiddleware(svc), svc
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	m, _ := newTestMiddleware(t)
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_auth")
}

func TestRequireAuth_BadHeaderFormat(t *testing.T) {
	t.Parallel()

	m, _ := newTestMiddleware(t)
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_auth_header")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	m, _ := newTestMiddleware(t)
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	m, svc := newTestMiddleware(t)
	token, err := svc.CreateToken(uuid.New(), "moviefan1", -time.Hour)
	require.NoError(t, err)

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token_expired")
}

func TestRequireAuth_ValidTokenAttachesIdentity(t *testing.T) {
	t.Parallel()

	m, svc := newTestMiddleware(t)
	userID := uuid.New()
	token, err := svc.CreateToken(userID, "moviefan1", time.Hour)
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotUsername string
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		gotID, ok = GetUserIDFromContext(r.Context())
		require.True(t, ok)
		gotUsername, ok = GetUsernameFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "moviefan1", gotUsername)
}

func TestRequireSelf(t *testing.T) {
	t.Parallel()

	m, svc := newTestMiddleware(t)
	token, err := svc.CreateToken(uuid.New(), "moviefan1", time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(m.RequireAuth)
		r.Use(m.RequireSelf("username"))
		r.Delete("/users/{username}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	// Acting on one's own account passes through.
	req := httptest.NewRequest(http.MethodDelete, "/users/moviefan1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Acting on somebody else's account is forbidden.
	req = httptest.NewRequest(http.MethodDelete, "/users/otheruser", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}
