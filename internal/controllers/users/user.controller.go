package userController

import (
	"context"

	. "girasol/internal/models"
	"girasol/internal/repositories"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type UserController struct {
	userRepo  repositories.UserRepository
	personnel *services.PersonnelService
	log       logger.Logger
}

type UserControllerInterface interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUsers(ctx context.Context) ([]User, error)
	GetEligibleUsers(ctx context.Context, task TaskType) ([]User, error)
	EditUser(ctx context.Context, id uuid.UUID, edit UserEdit) (*User, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
) UserControllerInterface {
	return &UserController{
		userRepo:  repos.User,
		personnel: services.Personnel,
		log:       logger.New("userController"),
	}
}

func (uc *UserController) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserController) GetUsers(ctx context.Context) ([]User, error) {
	return uc.userRepo.GetAll(ctx)
}

func (uc *UserController) GetEligibleUsers(
	ctx context.Context,
	task TaskType,
) ([]User, error) {
	return uc.personnel.ListEligibleUsers(ctx, task)
}

func (uc *UserController) EditUser(
	ctx context.Context,
	id uuid.UUID,
	edit UserEdit,
) (*User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.ApplyEdit(edit)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
