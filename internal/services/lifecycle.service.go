package services

import (
	"context"
	"fmt"

	. "girasol/internal/models"
	"girasol/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// ReservationEvent is a workflow action applied to a single reservation.
// Events mutate in memory first and only persist when something actually
// changed, so re-sent events are harmless.
type ReservationEvent interface {
	apply(r *Reservation) (changed bool, err error)
	name() string
}

// CleaningDone marks the cleaning task complete.
type CleaningDone struct{}

func (CleaningDone) apply(r *Reservation) (bool, error) { return r.MarkCleaningDone(), nil }
func (CleaningDone) name() string                       { return "cleaningDone" }

// LaundryDone marks the laundry task complete.
type LaundryDone struct{}

func (LaundryDone) apply(r *Reservation) (bool, error) { return r.MarkLaundryDone(), nil }
func (LaundryDone) name() string                       { return "laundryDone" }

// RemarkAdded appends a note to the reservation's remarks log.
type RemarkAdded struct {
	Text string
}

func (e RemarkAdded) apply(r *Reservation) (bool, error) { return r.AppendRemark(e.Text), nil }
func (RemarkAdded) name() string                         { return "remarkAdded" }

// DetailsEdited merges a partial update of the bookable fields.
type DetailsEdited struct {
	Edit ReservationEdit
}

func (e DetailsEdited) apply(r *Reservation) (bool, error) {
	if err := r.ApplyEdit(e.Edit); err != nil {
		return false, err
	}
	return true, nil
}
func (DetailsEdited) name() string { return "detailsEdited" }

// LifecycleService drives reservations through the turnover workflow.
type LifecycleService struct {
	reservationRepo repositories.ReservationRepository
	apartmentRepo   repositories.ApartmentRepository
	log             logger.Logger
}

func NewLifecycleService(
	reservationRepo repositories.ReservationRepository,
	apartmentRepo repositories.ApartmentRepository,
) *LifecycleService {
	return &LifecycleService{
		reservationRepo: reservationRepo,
		apartmentRepo:   apartmentRepo,
		log:             logger.New("LifecycleService"),
	}
}

// ApplyEvent loads the reservation, applies the event, and persists the
// result. No-op events (already-set flags, blank remarks) skip the write
// entirely. Unknown reservations surface ErrNotFound from the repository.
func (s *LifecycleService) ApplyEvent(
	ctx context.Context,
	reservationID uuid.UUID,
	event ReservationEvent,
) (*Reservation, error) {
	log := s.log.Function("ApplyEvent")

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	changed, err := event.apply(reservation)
	if err != nil {
		return nil, fmt.Errorf("event %s rejected: %w", event.name(), err)
	}

	if !changed {
		log.Debug("event was a no-op", "event", event.name(), "reservationId", reservationID)
		return reservation, nil
	}

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, log.Err("failed to persist event", err, "event", event.name(), "reservationId", reservationID)
	}

	return reservation, nil
}

// CreateReservation opens a new stay. The record always enters the cleaning
// workflow with both task flags clear, and when the caller supplies no crew
// the apartment's default personnel is inherited.
func (s *LifecycleService) CreateReservation(
	ctx context.Context,
	req NewReservationRequest,
) (*Reservation, error) {
	personnel := req.Personnel.Clone()
	if len(personnel) == 0 {
		apartment, err := s.apartmentRepo.GetByID(ctx, req.ApartmentID)
		if err != nil {
			return nil, err
		}
		personnel = apartment.Personnel.Clone()
	}

	reservation := &Reservation{
		ApartmentID:       req.ApartmentID,
		TenantName:        req.TenantName,
		GuestCount:        req.GuestCount,
		Arrival:           req.Arrival,
		Departure:         req.Departure,
		Personnel:         personnel,
		Remarks:           req.Remarks,
		Status:            ReservationCleaning,
		CleaningCompleted: false,
		LaundryCompleted:  false,
	}

	if err := reservation.Validate(); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}
