package networth

import (
	"context"
	"fmt"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// AccountLister is satisfied by *accounts.Repository.
type AccountLister interface {
	ListByUser(userID string) ([]domain.Account, error)
}

// TransactionLister is satisfied by *transactions.Repository.
type TransactionLister interface {
	ListByUser(userID string) ([]domain.Transaction, error)
}

// InvestmentLister is satisfied by *investments.Repository.
type InvestmentLister interface {
	ListByUser(userID string) ([]domain.Investment, error)
}

// HoldingPricer is satisfied by *pricing.Resolver. It must not fail.
type HoldingPricer interface {
	PriceHoldings(ctx context.Context, investments []domain.Investment) []domain.PricedHolding
}

// Service loads a user's snapshot and reconstructs the net-worth series.
type Service struct {
	accounts     AccountLister
	transactions TransactionLister
	investments  InvestmentLister
	pricer       HoldingPricer
	clock        domain.Clock
	log          zerolog.Logger
}

// NewService creates a new net-worth service
func NewService(
	accounts AccountLister,
	transactions TransactionLister,
	investments InvestmentLister,
	pricer HoldingPricer,
	clock domain.Clock,
	log zerolog.Logger,
) *Service {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		investments:  investments,
		pricer:       pricer,
		clock:        clock,
		log:          log.With().Str("service", "networth").Logger(),
	}
}

// LoadSnapshot reads the user's records and prices their holdings.
// Only store errors are returned; pricing always yields a value.
func (s *Service) LoadSnapshot(ctx context.Context, userID string) (Snapshot, error) {
	accounts, err := s.accounts.ListByUser(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load accounts: %w", err)
	}
	txs, err := s.transactions.ListByUser(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	investments, err := s.investments.ListByUser(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load investments: %w", err)
	}

	return Snapshot{
		Accounts:     accounts,
		Transactions: txs,
		Holdings:     s.pricer.PriceHoldings(ctx, investments),
	}, nil
}

// History returns the daily series for the trailing window ending today.
// windowDays is clamped to [MinWindowDays, MaxWindowDays].
func (s *Service) History(ctx context.Context, userID string, windowDays int) (Series, error) {
	snap, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		return Series{}, err
	}

	series := Reconstruct(snap, windowDays, s.clock())

	s.log.Debug().
		Str("user_id", userID).
		Int("days", len(series.Points)).
		Int("holdings", len(snap.Holdings)).
		Msg("Reconstructed net worth")

	return series, nil
}

// ChangePercent is the percentage change over the default window.
func (s *Service) ChangePercent(ctx context.Context, userID string) (float64, error) {
	series, err := s.History(ctx, userID, DefaultWindowDays)
	if err != nil {
		return 0, err
	}
	return ChangePct(series), nil
}
