package authController

import (
	"context"

	. "girasol/internal/models"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type AuthController struct {
	auth *services.AuthService
	log  logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*User, error)
}

func New(services services.Service) AuthControllerInterface {
	return &AuthController{
		auth: services.Auth,
		log:  logger.New("authController"),
	}
}

func (ac *AuthController) Register(
	ctx context.Context,
	req RegisterRequest,
) (*User, string, error) {
	user, err := ac.auth.Register(ctx, req)
	if err != nil {
		return nil, "", err
	}

	token, err := ac.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (ac *AuthController) Login(
	ctx context.Context,
	req LoginRequest,
) (*User, string, error) {
	return ac.auth.Login(ctx, req)
}

func (ac *AuthController) GetCurrentUser(
	ctx context.Context,
	userID uuid.UUID,
) (*User, error) {
	return ac.auth.GetUser(ctx, userID)
}
