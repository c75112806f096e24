package repositories

import (
	"girasol/internal/database"
	"girasol/internal/events"
)

type Repository struct {
	Reservation ReservationRepository
	Apartment   ApartmentRepository
	User        UserRepository
}

func New(db database.DB, eventBus *events.EventBus) Repository {
	return Repository{
		Reservation: NewReservationRepository(db, eventBus),
		Apartment:   NewApartmentRepository(db, eventBus),
		User:        NewUserRepository(db, eventBus),
	}
}
