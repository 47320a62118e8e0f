package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/pricing"
	"github.com/rs/zerolog"
)

// PriceRefreshJobName is the registered name of the price refresh job.
const PriceRefreshJobName = "price_refresh"

// SymbolLister is satisfied by *investments.Repository
type SymbolLister interface {
	DistinctSymbols() ([]domain.Investment, error)
}

// BatchResolver is satisfied by *pricing.Resolver
type BatchResolver interface {
	ResolveAll(ctx context.Context, reqs []pricing.Request) []domain.Quote
}

// PriceRefreshJob resolves every held symbol so that dashboard reads hit
// a warm cache.
type PriceRefreshJob struct {
	symbols  SymbolLister
	resolver BatchResolver
	timeout  time.Duration
	log      zerolog.Logger
}

// NewPriceRefreshJob creates a new PriceRefreshJob. timeout bounds one
// whole run.
func NewPriceRefreshJob(symbols SymbolLister, resolver BatchResolver, timeout time.Duration, log zerolog.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		symbols:  symbols,
		resolver: resolver,
		timeout:  timeout,
		log:      log.With().Str("job", PriceRefreshJobName).Logger(),
	}
}

// Name returns the job name
func (j *PriceRefreshJob) Name() string {
	return PriceRefreshJobName
}

// Run executes the price refresh
func (j *PriceRefreshJob) Run() error {
	held, err := j.symbols.DistinctSymbols()
	if err != nil {
		return fmt.Errorf("failed to list held symbols: %w", err)
	}
	if len(held) == 0 {
		j.log.Debug().Msg("No holdings to refresh")
		return nil
	}

	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	quotes := j.resolver.ResolveAll(ctx, pricing.RequestsFor(held))

	bySource := make(map[string]int)
	for _, q := range quotes {
		bySource[q.Source]++
	}

	event := j.log.Info().
		Int("symbols", len(held)).
		Dur("duration", time.Since(start))
	for source, n := range bySource {
		event = event.Int(source, n)
	}
	event.Msg("Price refresh completed")

	return nil
}
