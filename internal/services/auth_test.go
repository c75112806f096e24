package services

import (
	"context"
	"errors"
	"testing"

	"girasol/config"
	. "girasol/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo, testAuthConfig())

	user := taskUser("worker", TaskCleaning)
	user.Role = RoleAdmin

	token, err := service.GenerateToken(&user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, RoleAdmin, role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService(newFakeUserRepo(), testAuthConfig())
	verifier := NewAuthService(newFakeUserRepo(), config.Config{
		JWTSecret:      "different-secret",
		JWTExpiryHours: 1,
	})

	user := taskUser("worker", TaskCleaning)
	token, err := issuer.GenerateToken(&user)
	require.NoError(t, err)

	_, _, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), testAuthConfig())

	_, _, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewAuthService(repo, testAuthConfig())

		user, err := service.Register(ctx, RegisterRequest{
			Name:     "Carla",
			Email:    "Carla@Example.com",
			Password: "supersecret",
			Tasks:    []TaskType{TaskCleaning},
		})

		require.NoError(t, err)
		assert.Equal(t, "carla@example.com", user.Email)
		assert.Equal(t, RolePersonnel, user.Role)
		assert.NotEqual(t, "supersecret", user.PasswordHash)
		assert.True(t, user.CheckPassword("supersecret"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		service := NewAuthService(newFakeUserRepo(), testAuthConfig())

		_, err := service.Register(ctx, RegisterRequest{
			Name:     "Carla",
			Email:    "carla@example.com",
			Password: "short",
		})

		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewAuthService(repo, testAuthConfig())

		_, err := service.Register(ctx, RegisterRequest{
			Name:     "Carla",
			Email:    "carla@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)

		_, err = service.Register(ctx, RegisterRequest{
			Name:     "Impostor",
			Email:    "carla@example.com",
			Password: "supersecret",
		})
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("rejects unknown task types", func(t *testing.T) {
		service := NewAuthService(newFakeUserRepo(), testAuthConfig())

		_, err := service.Register(ctx, RegisterRequest{
			Name:     "Carla",
			Email:    "carla@example.com",
			Password: "supersecret",
			Tasks:    []TaskType{TaskType("gardening")},
		})

		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewAuthService(repo, testAuthConfig())

	_, err := service.Register(ctx, RegisterRequest{
		Name:     "Carla",
		Email:    "carla@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		user, token, err := service.Login(ctx, LoginRequest{
			Email:    "carla@example.com",
			Password: "supersecret",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)

		userID, _, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := service.Login(ctx, LoginRequest{
			Email:    "carla@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		_, _, err := service.Login(ctx, LoginRequest{
			Email:    "nobody@example.com",
			Password: "supersecret",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
