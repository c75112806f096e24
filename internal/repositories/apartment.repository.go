package repositories

import (
	"context"
	"errors"
	"fmt"

	"girasol/internal/database"
	"girasol/internal/events"
	. "girasol/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApartmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Apartment, error)
	GetAll(ctx context.Context) ([]Apartment, error)
	Create(ctx context.Context, apartment *Apartment) error
	Update(ctx context.Context, apartment *Apartment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type apartmentRepository struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func NewApartmentRepository(db database.DB, eventBus *events.EventBus) ApartmentRepository {
	return &apartmentRepository{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("apartmentRepository"),
	}
}

func (r *apartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Apartment, error) {
	log := r.log.Function("GetByID")

	var apartment Apartment
	if err := r.db.SQLWithContext(ctx).First(&apartment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: apartment %s", ErrNotFound, id)
		}
		return nil, log.Err("failed to get apartment", storeErr(err), "id", id)
	}

	return &apartment, nil
}

func (r *apartmentRepository) GetAll(ctx context.Context) ([]Apartment, error) {
	log := r.log.Function("GetAll")

	var apartments []Apartment
	if err := r.db.SQLWithContext(ctx).Order("name ASC").Find(&apartments).Error; err != nil {
		return nil, log.Err("failed to list apartments", storeErr(err))
	}

	return apartments, nil
}

func (r *apartmentRepository) Create(ctx context.Context, apartment *Apartment) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(apartment).Error; err != nil {
		return log.Err("failed to create apartment", storeErr(err))
	}

	r.notifyChanged()
	return nil
}

func (r *apartmentRepository) Update(ctx context.Context, apartment *Apartment) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(apartment).Error; err != nil {
		return log.Err("failed to update apartment", storeErr(err), "id", apartment.ID)
	}

	r.notifyChanged()
	return nil
}

func (r *apartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).Delete(&Apartment{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete apartment", storeErr(result.Error), "id", id)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: apartment %s", ErrNotFound, id)
	}

	r.notifyChanged()
	return nil
}

func (r *apartmentRepository) notifyChanged() {
	if r.eventBus == nil {
		return
	}
	if err := r.eventBus.PublishCollectionChanged(events.APARTMENTS_CHANNEL, "apartments"); err != nil {
		r.log.Function("notifyChanged").Warn("failed to publish collection change", "error", err)
	}
}
