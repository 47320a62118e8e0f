package clientdata

import (
	"time"

	"github.com/rs/zerolog"
)

// CleanupJobName is the scheduler key of the quote cache cleanup.
const CleanupJobName = "client_data_cleanup"

// CleanupJob prunes persisted quotes. A quote past its TTL is not deleted
// right away: the pricing chain serves it as a stale fallback when every live
// source fails, so rows survive until grace has elapsed after expiry.
type CleanupJob struct {
	repo  *Repository
	grace time.Duration
	log   zerolog.Logger
}

// NewCleanupJob creates a cleanup job keeping expired quotes for StaleGrace.
func NewCleanupJob(repo *Repository, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo:  repo,
		grace: StaleGrace,
		log:   log.With().Str("job", CleanupJobName).Logger(),
	}
}

// Run deletes quotes that expired more than the grace period ago.
func (j *CleanupJob) Run() error {
	removed, err := j.repo.DeleteAllExpired(j.grace)
	if err != nil {
		j.log.Error().Err(err).Dur("grace", j.grace).Msg("Failed to prune expired quotes")
		return err
	}

	var total int64
	for table, count := range removed {
		if count == 0 {
			continue
		}
		total += count
		j.log.Debug().Str("table", table).Int64("deleted", count).Msg("Pruned expired quotes")
	}

	j.log.Info().
		Int64("deleted", total).
		Dur("grace", j.grace).
		Msg("Quote cache cleanup completed")
	return nil
}

// Name returns CleanupJobName.
func (j *CleanupJob) Name() string {
	return CleanupJobName
}
