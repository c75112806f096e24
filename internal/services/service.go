package services

import (
	"girasol/config"
	"girasol/internal/database"
	"girasol/internal/repositories"
)

type Service struct {
	Auth        *AuthService
	Lifecycle   *LifecycleService
	Archival    *ArchivalService
	Board       *BoardService
	Personnel   *PersonnelService
	Transaction *TransactionService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config, repos repositories.Repository) (Service, error) {
	transactionService := NewTransactionService(db)
	schedulerService := NewSchedulerService(config.ArchiveIntervalSeconds)

	authService := NewAuthService(repos.User, config)
	lifecycleService := NewLifecycleService(repos.Reservation, repos.Apartment)
	archivalService := NewArchivalService(repos.Reservation, transactionService)
	boardService := NewBoardService(repos.Reservation, repos.Apartment)
	personnelService := NewPersonnelService(repos.User, repos.Reservation, repos.Apartment)

	return Service{
		Auth:        authService,
		Lifecycle:   lifecycleService,
		Archival:    archivalService,
		Board:       boardService,
		Personnel:   personnelService,
		Transaction: transactionService,
		Scheduler:   schedulerService,
	}, nil
}
