package jobs

import (
	"girasol/config"
	"girasol/internal/repositories"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// Import schedule constants
const (
	Interval = services.Interval
	Hourly   = services.Hourly
	Daily    = services.Daily
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
	repos repositories.Repository,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	archivalJob := NewArchivalJob(
		services.Archival,
		Interval,
	)
	if err := schedulerService.AddJob(archivalJob); err != nil {
		return log.Err("failed to register archival job", err)
	}
	log.Info("Registered archival job", "intervalSeconds", config.ArchiveIntervalSeconds)

	return nil
}
