package services

import (
	"context"
	"fmt"

	. "girasol/internal/models"
	"girasol/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// PersonnelService resolves who can work a task and records assignments on
// reservations and apartment crew templates.
type PersonnelService struct {
	userRepo        repositories.UserRepository
	reservationRepo repositories.ReservationRepository
	apartmentRepo   repositories.ApartmentRepository
	log             logger.Logger
}

func NewPersonnelService(
	userRepo repositories.UserRepository,
	reservationRepo repositories.ReservationRepository,
	apartmentRepo repositories.ApartmentRepository,
) *PersonnelService {
	return &PersonnelService{
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		apartmentRepo:   apartmentRepo,
		log:             logger.New("PersonnelService"),
	}
}

// EligibleUsers filters users to those declaring the task in their skill
// set. Pure helper shared with tests.
func EligibleUsers(users []User, task TaskType) []User {
	eligible := make([]User, 0)
	for _, u := range users {
		if u.HasTask(task) {
			eligible = append(eligible, u)
		}
	}
	return eligible
}

// ListEligibleUsers returns every user who can be assigned the given task.
func (s *PersonnelService) ListEligibleUsers(ctx context.Context, task TaskType) ([]User, error) {
	if !task.IsValid() {
		return nil, fmt.Errorf("%w: unknown task type %q", ErrValidation, task)
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return EligibleUsers(users, task), nil
}

// AssignReservation sets or clears the crew member for one task on a
// reservation. An empty userID clears the assignment; a non-empty userID
// must belong to an existing user.
func (s *PersonnelService) AssignReservation(
	ctx context.Context,
	reservationID uuid.UUID,
	task TaskType,
	userID string,
) (*Reservation, error) {
	log := s.log.Function("AssignReservation")

	if !task.IsValid() {
		return nil, fmt.Errorf("%w: unknown task type %q", ErrValidation, task)
	}

	if err := s.verifyUser(ctx, userID); err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Personnel == nil {
		reservation.Personnel = PersonnelMap{}
	}
	reservation.Personnel.Assign(task, userID)

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, log.Err("failed to save assignment", err, "reservationId", reservationID, "task", task)
	}

	return reservation, nil
}

// AssignApartment updates the apartment's default crew template, used to
// seed the personnel of future reservations.
func (s *PersonnelService) AssignApartment(
	ctx context.Context,
	apartmentID uuid.UUID,
	task TaskType,
	userID string,
) (*Apartment, error) {
	log := s.log.Function("AssignApartment")

	if !task.IsValid() {
		return nil, fmt.Errorf("%w: unknown task type %q", ErrValidation, task)
	}

	if err := s.verifyUser(ctx, userID); err != nil {
		return nil, err
	}

	apartment, err := s.apartmentRepo.GetByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	if apartment.Personnel == nil {
		apartment.Personnel = PersonnelMap{}
	}
	apartment.Personnel.Assign(task, userID)

	if err := s.apartmentRepo.Update(ctx, apartment); err != nil {
		return nil, log.Err("failed to save assignment", err, "apartmentId", apartmentID, "task", task)
	}

	return apartment, nil
}

// verifyUser confirms a non-empty userID refers to a real user. Clearing
// an assignment (empty userID) needs no lookup.
func (s *PersonnelService) verifyUser(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id %q", ErrValidation, userID)
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return nil
}
