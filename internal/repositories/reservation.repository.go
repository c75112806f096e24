package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"girasol/internal/database"
	"girasol/internal/events"
	. "girasol/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetAll(ctx context.Context) ([]Reservation, error)
	GetActive(ctx context.Context) ([]Reservation, error)
	GetArchived(ctx context.Context) ([]Reservation, error)
	Create(ctx context.Context, reservation *Reservation) error
	Update(ctx context.Context, reservation *Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteArchivedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type reservationRepository struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func NewReservationRepository(db database.DB, eventBus *events.EventBus) ReservationRepository {
	return &reservationRepository{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("reservationRepository"),
	}
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	log := r.log.Function("GetByID")

	var reservation Reservation
	if err := r.db.SQLWithContext(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
		}
		return nil, log.Err("failed to get reservation", storeErr(err), "id", id)
	}

	return &reservation, nil
}

func (r *reservationRepository) GetAll(ctx context.Context) ([]Reservation, error) {
	log := r.log.Function("GetAll")

	var reservations []Reservation
	if err := r.db.SQLWithContext(ctx).Find(&reservations).Error; err != nil {
		return nil, log.Err("failed to list reservations", storeErr(err))
	}

	return reservations, nil
}

// GetActive returns every reservation still on the board, departure
// ascending so the next turnover is first.
func (r *reservationRepository) GetActive(ctx context.Context) ([]Reservation, error) {
	log := r.log.Function("GetActive")

	var reservations []Reservation
	if err := r.db.SQLWithContext(ctx).
		Where("status <> ?", ReservationArchived).
		Order("departure ASC").
		Find(&reservations).Error; err != nil {
		return nil, log.Err("failed to list active reservations", storeErr(err))
	}

	return reservations, nil
}

func (r *reservationRepository) GetArchived(ctx context.Context) ([]Reservation, error) {
	log := r.log.Function("GetArchived")

	var reservations []Reservation
	if err := r.db.SQLWithContext(ctx).
		Where("status = ?", ReservationArchived).
		Order("departure DESC").
		Find(&reservations).Error; err != nil {
		return nil, log.Err("failed to list archived reservations", storeErr(err))
	}

	return reservations, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *Reservation) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(reservation).Error; err != nil {
		return log.Err("failed to create reservation", storeErr(err))
	}

	r.notifyChanged()
	return nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *Reservation) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(reservation).Error; err != nil {
		return log.Err("failed to update reservation", storeErr(err), "id", reservation.ID)
	}

	r.notifyChanged()
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).Delete(&Reservation{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete reservation", storeErr(result.Error), "id", id)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}

	r.notifyChanged()
	return nil
}

// DeleteArchivedBefore removes archived reservations whose departure is
// before the cutoff. Runs on the supplied transaction so the purge is
// all-or-nothing from the caller's perspective.
func (r *reservationRepository) DeleteArchivedBefore(
	ctx context.Context,
	tx *gorm.DB,
	cutoff time.Time,
) (int64, error) {
	log := r.log.Function("DeleteArchivedBefore")

	result := tx.WithContext(ctx).
		Where("status = ? AND departure < ?", ReservationArchived, cutoff).
		Delete(&Reservation{})
	if result.Error != nil {
		return 0, log.Err("failed to purge archived reservations", storeErr(result.Error), "cutoff", cutoff)
	}

	log.Info("Purged archived reservations", "count", result.RowsAffected, "cutoff", cutoff)
	r.notifyChanged()
	return result.RowsAffected, nil
}

func (r *reservationRepository) notifyChanged() {
	if r.eventBus == nil {
		return
	}
	if err := r.eventBus.PublishCollectionChanged(events.RESERVATIONS_CHANNEL, "reservations"); err != nil {
		r.log.Function("notifyChanged").Warn("failed to publish collection change", "error", err)
	}
}

// storeErr classifies an unexpected gorm error as a transient store failure.
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
