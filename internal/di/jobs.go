package di

import (
	"fmt"

	"github.com/brenofinance/dashboard/internal/clientdata"
	"github.com/brenofinance/dashboard/internal/config"
	"github.com/brenofinance/dashboard/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the scheduler and registers the background jobs.
// The scheduler is not started.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container.PriceResolver == nil {
		return nil, fmt.Errorf("services must be initialized before jobs")
	}

	container.Scheduler = scheduler.New(log)
	jobs := &JobInstances{
		// Bounded so that a stuck feed cannot overlap the next run
		PriceRefresh: scheduler.NewPriceRefreshJob(
			container.InvestmentRepo,
			container.PriceResolver,
			2*cfg.Pricing.FetchTimeout,
			log,
		),
		CacheCleanup:   clientdata.NewCleanupJob(container.ClientDataRepo, log),
		WALCheck:       scheduler.NewCheckWALCheckpointsJob(log, container.AppDB, container.ClientDataDB),
		IntegrityCheck: scheduler.NewCheckCoreDatabasesJob(log, container.AppDB, container.ClientDataDB),
	}

	registrations := []struct {
		schedule string
		job      scheduler.Job
	}{
		{cfg.Schedule.PriceRefresh, jobs.PriceRefresh},
		{cfg.Schedule.CacheCleanup, jobs.CacheCleanup},
		{cfg.Schedule.WALCheck, jobs.WALCheck},
		{cfg.Schedule.IntegrityCheck, jobs.IntegrityCheck},
	}
	for _, reg := range registrations {
		if reg.schedule == "" {
			log.Info().Str("job", reg.job.Name()).Msg("Job disabled, no schedule")
			continue
		}
		if err := container.Scheduler.AddJob(reg.schedule, reg.job); err != nil {
			return nil, err
		}
	}

	return jobs, nil
}
