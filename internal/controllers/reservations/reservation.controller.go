package reservationController

import (
	"context"
	"time"

	. "girasol/internal/models"
	"girasol/internal/repositories"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type ReservationController struct {
	reservationRepo repositories.ReservationRepository
	lifecycle       *services.LifecycleService
	archival        *services.ArchivalService
	personnel       *services.PersonnelService
	log             logger.Logger
}

type ReservationControllerInterface interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetActiveReservations(ctx context.Context) ([]Reservation, error)
	GetArchivedReservations(ctx context.Context) ([]Reservation, error)
	CreateReservation(ctx context.Context, req NewReservationRequest) (*Reservation, error)
	EditReservation(ctx context.Context, id uuid.UUID, edit ReservationEdit) (*Reservation, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	MarkCleaningDone(ctx context.Context, id uuid.UUID) (*Reservation, error)
	MarkLaundryDone(ctx context.Context, id uuid.UUID) (*Reservation, error)
	AddRemark(ctx context.Context, id uuid.UUID, text string) (*Reservation, error)
	AssignPersonnel(ctx context.Context, id uuid.UUID, task TaskType, userID string) (*Reservation, error)
	PurgeArchived(ctx context.Context, cutoff time.Time) (int64, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
) ReservationControllerInterface {
	return &ReservationController{
		reservationRepo: repos.Reservation,
		lifecycle:       services.Lifecycle,
		archival:        services.Archival,
		personnel:       services.Personnel,
		log:             logger.New("reservationController"),
	}
}

func (rc *ReservationController) GetReservation(
	ctx context.Context,
	id uuid.UUID,
) (*Reservation, error) {
	return rc.reservationRepo.GetByID(ctx, id)
}

func (rc *ReservationController) GetActiveReservations(ctx context.Context) ([]Reservation, error) {
	return rc.reservationRepo.GetActive(ctx)
}

func (rc *ReservationController) GetArchivedReservations(ctx context.Context) ([]Reservation, error) {
	return rc.reservationRepo.GetArchived(ctx)
}

func (rc *ReservationController) CreateReservation(
	ctx context.Context,
	req NewReservationRequest,
) (*Reservation, error) {
	return rc.lifecycle.CreateReservation(ctx, req)
}

func (rc *ReservationController) EditReservation(
	ctx context.Context,
	id uuid.UUID,
	edit ReservationEdit,
) (*Reservation, error) {
	return rc.lifecycle.ApplyEvent(ctx, id, services.DetailsEdited{Edit: edit})
}

func (rc *ReservationController) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	return rc.reservationRepo.Delete(ctx, id)
}

func (rc *ReservationController) MarkCleaningDone(
	ctx context.Context,
	id uuid.UUID,
) (*Reservation, error) {
	return rc.lifecycle.ApplyEvent(ctx, id, services.CleaningDone{})
}

func (rc *ReservationController) MarkLaundryDone(
	ctx context.Context,
	id uuid.UUID,
) (*Reservation, error) {
	return rc.lifecycle.ApplyEvent(ctx, id, services.LaundryDone{})
}

func (rc *ReservationController) AddRemark(
	ctx context.Context,
	id uuid.UUID,
	text string,
) (*Reservation, error) {
	return rc.lifecycle.ApplyEvent(ctx, id, services.RemarkAdded{Text: text})
}

func (rc *ReservationController) AssignPersonnel(
	ctx context.Context,
	id uuid.UUID,
	task TaskType,
	userID string,
) (*Reservation, error) {
	return rc.personnel.AssignReservation(ctx, id, task, userID)
}

func (rc *ReservationController) PurgeArchived(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	return rc.archival.PurgeArchivedBefore(ctx, cutoff)
}
