package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/movie-api/internal/user"
)

type fakeUserStore struct {
	user *user.User
	err  error
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func newLoginService(t *testing.T, store UserStore) (*Service, TokenService) {
	t.Helper()
	tokenSvc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)
	return NewService(store, NewArgon2Hasher(), tokenSvc, 7*24*time.Hour), tokenSvc
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()
	hash, err := hasher.Hash("sw0rdfish")
	require.NoError(t, err)

	stored := &user.User{
		ID:           uuid.New(),
		Username:     "moviefan1",
		PasswordHash: hash,
		Email:        "fan@example.com",
	}

	svc, tokenSvc := newLoginService(t, &fakeUserStore{user: stored})

	loggedIn, token, err := svc.Login(context.Background(), "moviefan1", "sw0rdfish")
	require.NoError(t, err)
	assert.Equal(t, stored, loggedIn)

	claims, err := tokenSvc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.String(), claims.UserID)
	assert.Equal(t, "moviefan1", claims.Username)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newLoginService(t, &fakeUserStore{err: user.ErrNotFound})

	_, _, err := svc.Login(context.Background(), "nosuchuser", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	hasher := NewArgon2Hasher()
	hash, err := hasher.Hash("rightpassword")
	require.NoError(t, err)

	svc, _ := newLoginService(t, &fakeUserStore{user: &user.User{
		ID:           uuid.New(),
		Username:     "moviefan1",
		PasswordHash: hash,
	}})

	_, _, err = svc.Login(context.Background(), "moviefan1", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newLoginService(t, &fakeUserStore{err: user.ErrNotFound})

	_, _, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StoreFailure(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	svc, _ := newLoginService(t, &fakeUserStore{err: storeErr})

	_, _, err := svc.Login(context.Background(), "moviefan1", "sw0rdfish")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, storeErr)
}
