package app

import (
	"context"

	"girasol/config"
	"girasol/internal/controllers"
	"girasol/internal/database"
	"girasol/internal/events"
	"girasol/internal/handlers/middleware"
	"girasol/internal/jobs"
	"girasol/internal/repositories"
	"girasol/internal/services"
	"girasol/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	repos := repositories.New(db, eventBus)

	svcs, err := services.New(db, config, repos)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	websocket, err := websockets.New(repos, svcs.Auth, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	mw := middleware.New(db, eventBus, config, repos)
	ctrls := controllers.New(svcs, repos, eventBus, config, db)

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(svcs.Scheduler, config, svcs, repos); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
	}

	app := &App{
		Database:    db,
		Middleware:  mw,
		Websocket:   websocket,
		EventBus:    eventBus,
		Config:      config,
		Services:    svcs,
		Repos:       repos,
		Controllers: ctrls,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Auth,
		a.Services.Lifecycle,
		a.Services.Archival,
		a.Services.Board,
		a.Services.Personnel,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Repos.Reservation,
		a.Repos.Apartment,
		a.Repos.User,
		a.Controllers.Auth,
		a.Controllers.Reservation,
		a.Controllers.Apartment,
		a.Controllers.User,
		a.Controllers.Board,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
