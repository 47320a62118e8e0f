package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/brenofinance/dashboard/internal/database"
	"github.com/rs/zerolog"
)

const integrityCheckTimeout = time.Minute

// CheckCoreDatabasesJob runs SQLite's integrity check on each database
type CheckCoreDatabasesJob struct {
	databases []*database.DB
	log       zerolog.Logger
}

// NewCheckCoreDatabasesJob creates a new CheckCoreDatabasesJob. Nil
// databases are skipped.
func NewCheckCoreDatabasesJob(log zerolog.Logger, databases ...*database.DB) *CheckCoreDatabasesJob {
	return &CheckCoreDatabasesJob{
		databases: databases,
		log:       log.With().Str("job", "check_core_databases").Logger(),
	}
}

// Name returns the job name
func (j *CheckCoreDatabasesJob) Name() string {
	return "check_core_databases"
}

// Run stops at the first corrupted database
func (j *CheckCoreDatabasesJob) Run() error {
	for _, db := range j.databases {
		if db == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), integrityCheckTimeout)
		err := db.HealthCheck(ctx)
		cancel()
		if err != nil {
			// Corruption cannot be repaired automatically
			j.log.Error().
				Err(err).
				Str("database", db.Name()).
				Msg("Database integrity check failed")
			return fmt.Errorf("database %s failed integrity check: %w", db.Name(), err)
		}

		j.log.Debug().Str("database", db.Name()).Msg("Database integrity OK")
	}

	j.log.Info().Msg("All databases passed integrity check")
	return nil
}
