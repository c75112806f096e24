package apartmentController

import (
	"context"
	"fmt"

	. "girasol/internal/models"
	"girasol/internal/repositories"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ApartmentController struct {
	apartmentRepo repositories.ApartmentRepository
	personnel     *services.PersonnelService
	log           logger.Logger
}

type ApartmentControllerInterface interface {
	GetApartment(ctx context.Context, id uuid.UUID) (*Apartment, error)
	GetApartments(ctx context.Context) ([]Apartment, error)
	CreateApartment(ctx context.Context, req NewApartmentRequest) (*Apartment, error)
	EditApartment(ctx context.Context, id uuid.UUID, edit ApartmentEdit) (*Apartment, error)
	DeleteApartment(ctx context.Context, id uuid.UUID) error
	AssignPersonnel(ctx context.Context, id uuid.UUID, task TaskType, userID string) (*Apartment, error)
}

// NewApartmentRequest is the payload for registering an apartment.
type NewApartmentRequest struct {
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Description string          `json:"description"`
	Personnel   PersonnelMap    `json:"personnel"`
	Checklist   []ChecklistItem `json:"checklist"`
}

func New(
	repos repositories.Repository,
	services services.Service,
) ApartmentControllerInterface {
	return &ApartmentController{
		apartmentRepo: repos.Apartment,
		personnel:     services.Personnel,
		log:           logger.New("apartmentController"),
	}
}

func (ac *ApartmentController) GetApartment(
	ctx context.Context,
	id uuid.UUID,
) (*Apartment, error) {
	return ac.apartmentRepo.GetByID(ctx, id)
}

func (ac *ApartmentController) GetApartments(ctx context.Context) ([]Apartment, error) {
	return ac.apartmentRepo.GetAll(ctx)
}

func (ac *ApartmentController) CreateApartment(
	ctx context.Context,
	req NewApartmentRequest,
) (*Apartment, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	personnel := req.Personnel.Clone()
	apartment := &Apartment{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Personnel:   personnel,
		Status:      CleaningToBeCleaned,
		Checklist:   datatypes.NewJSONSlice(req.Checklist),
	}

	if err := ac.apartmentRepo.Create(ctx, apartment); err != nil {
		return nil, err
	}

	return apartment, nil
}

func (ac *ApartmentController) EditApartment(
	ctx context.Context,
	id uuid.UUID,
	edit ApartmentEdit,
) (*Apartment, error) {
	apartment, err := ac.apartmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apartment.ApplyEdit(edit)

	if err := ac.apartmentRepo.Update(ctx, apartment); err != nil {
		return nil, err
	}

	return apartment, nil
}

func (ac *ApartmentController) DeleteApartment(ctx context.Context, id uuid.UUID) error {
	return ac.apartmentRepo.Delete(ctx, id)
}

func (ac *ApartmentController) AssignPersonnel(
	ctx context.Context,
	id uuid.UUID,
	task TaskType,
	userID string,
) (*Apartment, error) {
	return ac.personnel.AssignApartment(ctx, id, task, userID)
}
