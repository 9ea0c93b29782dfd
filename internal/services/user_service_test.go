package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	jwtutil "github.com/Dias221467/goai-backend/pkg/jwt"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, models.UserCreate{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret", user.HashedPassword)

	authed, err := env.users.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	for _, tc := range []struct{ username, password string }{
		{"alice", "wrong"},
		{"nobody", "s3cret"},
	} {
		_, err := env.users.Authenticate(ctx, tc.username, tc.password)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Equal(t, "Incorrect username or password", err.Error())
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, models.UserCreate{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = env.users.Register(ctx, models.UserCreate{Username: "alice", Email: "new@example.com", Password: "pw"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Username already registered", err.Error())

	_, err = env.users.Register(ctx, models.UserCreate{Username: "bob", Email: "alice@example.com", Password: "pw"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestRegisterValidation(t *testing.T) {
	env := setupEnv(t)
	_, err := env.users.Register(context.Background(), models.UserCreate{Username: "alice", Email: "not-an-email", Password: "pw"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "email must be a valid email address", err.Error())
}

func TestGetUserAndEnsureUser(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seeded, err := env.users.EnsureUser(ctx, "testuser", "test@example.com")
	require.NoError(t, err)
	again, err := env.users.EnsureUser(ctx, "testuser", "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, again.ID)

	got, err := env.users.GetUser(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "testuser", got.Username)

	_, err = env.users.GetUser(ctx, 999)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "User not found", err.Error())
}

func TestLoginIssuesToken(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	auth := NewAuthService(env.users, "secret", time.Minute)

	user, err := env.users.Register(ctx, models.UserCreate{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	token, err := auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	claims, err := jwtutil.ValidateToken(token.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	_, err = auth.Login(ctx, "alice", "nope")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
