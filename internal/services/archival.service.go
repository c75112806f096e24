package services

import (
	"context"
	"time"

	. "girasol/internal/models"
	"girasol/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// ArchivalService sweeps finished reservations off the operational board.
// A reservation is archived once both task flags are set and the departure
// has passed; nothing else changes status automatically.
type ArchivalService struct {
	reservationRepo    repositories.ReservationRepository
	transactionService *TransactionService
	log                logger.Logger
}

func NewArchivalService(
	reservationRepo repositories.ReservationRepository,
	transactionService *TransactionService,
) *ArchivalService {
	return &ArchivalService{
		reservationRepo:    reservationRepo,
		transactionService: transactionService,
		log:                logger.New("ArchivalService"),
	}
}

// EligibleForArchival filters active reservations down to those ready to
// archive at the given instant. Pure, shared by Tick and tests.
func EligibleForArchival(reservations []Reservation, now time.Time) []Reservation {
	eligible := make([]Reservation, 0)
	for _, r := range reservations {
		if r.IsEligibleForArchival(now) {
			eligible = append(eligible, r)
		}
	}
	return eligible
}

// Tick runs one archival sweep. Each eligible reservation is archived
// independently: a write failure on one is logged and skipped so the rest
// of the batch still lands. Only a failed listing aborts the tick.
func (s *ArchivalService) Tick(ctx context.Context, now time.Time) error {
	log := s.log.Function("Tick")

	active, err := s.reservationRepo.GetActive(ctx)
	if err != nil {
		return log.Err("failed to list active reservations", err)
	}

	eligible := EligibleForArchival(active, now)
	if len(eligible) == 0 {
		return nil
	}

	archived := 0
	for i := range eligible {
		reservation := eligible[i]
		reservation.Status = ReservationArchived
		if err := s.reservationRepo.Update(ctx, &reservation); err != nil {
			_ = log.Err("failed to archive reservation", err, "reservationId", reservation.ID)
			continue
		}
		archived++
	}

	log.Info("archival sweep complete", "eligible", len(eligible), "archived", archived)
	return nil
}

// PurgeArchivedBefore permanently deletes archived reservations whose
// departure predates the cutoff. The whole batch commits or rolls back as
// one unit.
func (s *ArchivalService) PurgeArchivedBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	log := s.log.Function("PurgeArchivedBefore")

	var purged int64
	err := s.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		count, err := s.reservationRepo.DeleteArchivedBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		purged = count
		return nil
	})
	if err != nil {
		return 0, log.Err("purge failed", err, "cutoff", cutoff)
	}

	log.Info("purged archived reservations", "count", purged, "cutoff", cutoff)
	return purged, nil
}
