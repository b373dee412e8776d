package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenServices(t *testing.T) map[string]TokenService {
	t.Helper()

	pasetoSvc, err := NewPasetoService([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	jwtSvc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)

	return map[string]TokenService{
		"paseto": pasetoSvc,
		"jwt":    jwtSvc,
	}
}

func TestTokenService_CreateAndVerify(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	for name, svc := range testTokenServices(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			token, err := svc.CreateToken(userID, "moviefan1", 7*24*time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := svc.VerifyToken(token)
			require.NoError(t, err)
			assert.Equal(t, userID.String(), claims.UserID)
			assert.Equal(t, "moviefan1", claims.Username)
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt, time.Minute)
		})
	}
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	for name, svc := range testTokenServices(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			token, err := svc.CreateToken(uuid.New(), "moviefan1", -time.Hour)
			require.NoError(t, err)

			_, err = svc.VerifyToken(token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_ExpiredTokenError(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "moviefan1", -time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_WrongKeyRejected(t *testing.T) {
	t.Parallel()

	t.Run("paseto", func(t *testing.T) {
		t.Parallel()

		right, err := NewPasetoService([]byte("0123456789abcdef0123456789abcdef"))
		require.NoError(t, err)
		wrong, err := NewPasetoService([]byte("fedcba9876543210fedcba9876543210"))
		require.NoError(t, err)

		token, err := right.CreateToken(uuid.New(), "moviefan1", time.Hour)
		require.NoError(t, err)

		_, err = wrong.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("jwt", func(t *testing.T) {
		t.Parallel()

		right, err := NewJWTService([]byte("right-secret"))
		require.NoError(t, err)
		wrong, err := NewJWTService([]byte("wrong-secret"))
		require.NoError(t, err)

		token, err := right.CreateToken(uuid.New(), "moviefan1", time.Hour)
		require.NoError(t, err)

		_, err = wrong.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_MalformedTokenRejected(t *testing.T) {
	t.Parallel()

	for name, svc := range testTokenServices(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.VerifyToken("not.a.token")
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("paseto", []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	assert.IsType(t, &PasetoService{}, svc)

	svc, err = NewTokenService("jwt", []byte("secret"))
	require.NoError(t, err)
	assert.IsType(t, &JWTService{}, svc)

	_, err = NewTokenService("sessions", []byte("secret"))
	assert.Error(t, err)

	_, err = NewTokenService("paseto", []byte("too short"))
	assert.Error(t, err)
}
