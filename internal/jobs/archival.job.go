package jobs

import (
	"context"
	"time"

	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// ArchivalJob runs the periodic sweep that moves finished reservations to
// the archive. It carries no state of its own, each tick re-reads the
// active set.
type ArchivalJob struct {
	archival *services.ArchivalService
	log      logger.Logger
	schedule services.Schedule
}

func NewArchivalJob(
	archival *services.ArchivalService,
	schedule services.Schedule,
) *ArchivalJob {
	return &ArchivalJob{
		archival: archival,
		log:      logger.New("archivalJob"),
		schedule: schedule,
	}
}

func (j *ArchivalJob) Name() string {
	return "ReservationArchivalSweep"
}

func (j *ArchivalJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if err := j.archival.Tick(ctx, time.Now()); err != nil {
		return log.Err("archival sweep failed", err)
	}

	return nil
}

func (j *ArchivalJob) Schedule() services.Schedule {
	return j.schedule
}
