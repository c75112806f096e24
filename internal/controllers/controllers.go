package controllers

import (
	"girasol/config"
	"girasol/internal/database"
	"girasol/internal/events"
	"girasol/internal/repositories"
	"girasol/internal/services"

	apartmentController "girasol/internal/controllers/apartments"
	authController "girasol/internal/controllers/auth"
	boardController "girasol/internal/controllers/board"
	reservationController "girasol/internal/controllers/reservations"
	userController "girasol/internal/controllers/users"
)

type Controllers struct {
	Auth        authController.AuthControllerInterface
	Reservation reservationController.ReservationControllerInterface
	Apartment   apartmentController.ApartmentControllerInterface
	User        userController.UserControllerInterface
	Board       boardController.BoardControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:        authController.New(services),
		Reservation: reservationController.New(repos, services),
		Apartment:   apartmentController.New(repos, services),
		User:        userController.New(repos, services),
		Board:       boardController.New(services),
	}
}
