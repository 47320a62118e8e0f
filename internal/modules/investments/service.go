package investments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/brenofinance/dashboard/internal/database"
	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/pricing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds is returned when a BUY costs more than the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientHoldings is returned when a SELL exceeds the held quantity.
	ErrInsufficientHoldings = errors.New("not enough holdings to sell")
	// ErrCurrencyMismatch is returned when the trade and account currencies differ.
	ErrCurrencyMismatch = errors.New("account currency mismatch")
)

// PriceResolver is satisfied by *pricing.Resolver.
type PriceResolver interface {
	Resolve(ctx context.Context, req pricing.Request) domain.Quote
	ResolveAll(ctx context.Context, reqs []pricing.Request) []domain.Quote
}

// PricedInvestment is a stored holding with its resolved price and history.
type PricedInvestment struct {
	domain.Investment
	History []domain.PricePoint `json:"history"`
}

// MarketAsset is one entry of the market list.
type MarketAsset struct {
	Symbol       string           `json:"symbol"`
	Name         string           `json:"name"`
	Type         domain.AssetType `json:"type"`
	CurrentPrice float64          `json:"currentPrice"`
	Currency     domain.Currency  `json:"currency"`
}

// TradeResult describes an executed trade. Holding is nil when a SELL
// closed the position.
type TradeResult struct {
	OK       bool               `json:"ok"`
	Side     TradeSide          `json:"side"`
	Symbol   string             `json:"symbol"`
	Quantity float64            `json:"quantity"`
	Price    float64            `json:"price"`
	Cost     float64            `json:"cost"`
	Balance  float64            `json:"balance"`
	Holding  *domain.Investment `json:"holding"`
}

// Service values holdings and executes trades
type Service struct {
	db       *sql.DB
	repo     *Repository
	resolver PriceResolver
	clock    domain.Clock
	log      zerolog.Logger
}

// NewService creates a new investments service
func NewService(db *sql.DB, repo *Repository, resolver PriceResolver, clock domain.Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &Service{
		db:       db,
		repo:     repo,
		resolver: resolver,
		clock:    clock,
		log:      log.With().Str("service", "investments").Logger(),
	}
}

// ListPriced returns the user's holdings with resolved prices, in storage order.
func (s *Service) ListPriced(ctx context.Context, userID string) ([]PricedInvestment, error) {
	list, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	quotes := s.resolver.ResolveAll(ctx, pricing.RequestsFor(list))

	priced := make([]PricedInvestment, len(list))
	for i, inv := range list {
		inv.CurrentPrice = quotes[i].CurrentPrice
		priced[i] = PricedInvestment{Investment: inv, History: quotes[i].History}
	}
	return priced, nil
}

// Create stores a new holding for the user.
func (s *Service) Create(userID string, req CreateRequest) (*domain.Investment, error) {
	inv := req.ToInvestment(uuid.NewString(), userID)
	if err := s.repo.Create(&inv); err != nil {
		return nil, err
	}
	s.log.Info().Str("symbol", inv.Symbol).Str("user_id", userID).Msg("Investment created")
	return &inv, nil
}

// MarketAssets prices the catalog in the given currency.
func (s *Service) MarketAssets(ctx context.Context, currency domain.Currency) []MarketAsset {
	catalog := pricing.Catalog()

	reqs := make([]pricing.Request, len(catalog))
	for i, a := range catalog {
		reqs[i] = pricing.Request{Symbol: a.Symbol, Type: a.Type, Currency: currency}
	}
	quotes := s.resolver.ResolveAll(ctx, reqs)

	assets := make([]MarketAsset, len(catalog))
	for i, a := range catalog {
		assets[i] = MarketAsset{
			Symbol:       a.Symbol,
			Name:         a.Name,
			Type:         a.Type,
			CurrentPrice: quotes[i].CurrentPrice,
			Currency:     currency,
		}
	}
	return assets
}

// Trade executes a BUY or SELL at the resolved price, moving cash between
// the account and the holding in one database transaction.
func (s *Service) Trade(ctx context.Context, userID string, req TradeRequest) (*TradeResult, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	var storedPrice float64
	if existing, err := s.repo.GetBySymbol(userID, symbol); err == nil {
		storedPrice = existing.CurrentPrice
	} else if !errors.Is(err, ErrInvestmentNotFound) {
		return nil, err
	}

	quote := s.resolver.Resolve(ctx, pricing.Request{
		Symbol:      symbol,
		Type:        req.Type,
		Currency:    req.Currency,
		StoredPrice: storedPrice,
	})
	price := quote.CurrentPrice
	qty := decimal.NewFromFloat(req.Quantity)
	cost := decimal.NewFromFloat(price).Mul(qty).Round(2)
	today := domain.FormatDate(s.clock())

	result := &TradeResult{
		OK:       true,
		Side:     req.Side,
		Symbol:   symbol,
		Quantity: req.Quantity,
		Price:    price,
		Cost:     cost.InexactFloat64(),
	}

	err := database.WithTransaction(s.db, func(tx *sql.Tx) error {
		account, err := accounts.GetForUser(tx, userID, req.AccountID)
		if err != nil {
			return err
		}
		if account.Currency != req.Currency {
			return ErrCurrencyMismatch
		}

		existing, err := getBySymbol(tx, userID, symbol)
		if err != nil && !errors.Is(err, ErrInvestmentNotFound) {
			return err
		}

		switch req.Side {
		case SideBuy:
			if decimal.NewFromFloat(account.Balance).LessThan(cost) {
				return ErrInsufficientFunds
			}
			if err := accounts.AdjustBalance(tx, account.ID, cost.Neg().InexactFloat64(), today); err != nil {
				return err
			}
			if existing != nil {
				existing.Quantity = decimal.NewFromFloat(existing.Quantity).Add(qty).InexactFloat64()
				existing.CurrentPrice = price
				result.Holding = existing
				return updateHolding(tx, existing.ID, existing.Quantity, price)
			}
			holding := &domain.Investment{
				ID:           uuid.NewString(),
				UserID:       userID,
				Symbol:       symbol,
				Name:         req.Name,
				Type:         req.Type,
				Quantity:     req.Quantity,
				CurrentPrice: price,
				Currency:     req.Currency,
			}
			result.Holding = holding
			return insertInvestment(tx, holding)

		case SideSell:
			if existing == nil || decimal.NewFromFloat(existing.Quantity).LessThan(qty) {
				return ErrInsufficientHoldings
			}
			if err := accounts.AdjustBalance(tx, account.ID, cost.InexactFloat64(), today); err != nil {
				return err
			}
			remaining := decimal.NewFromFloat(existing.Quantity).Sub(qty)
			if remaining.IsZero() {
				return deleteInvestment(tx, existing.ID)
			}
			existing.Quantity = remaining.InexactFloat64()
			existing.CurrentPrice = price
			result.Holding = existing
			return updateHolding(tx, existing.ID, existing.Quantity, price)
		}
		return fmt.Errorf("unknown trade side %q", req.Side)
	})
	if err != nil {
		return nil, err
	}

	if account, err := accounts.GetForUser(s.db, userID, req.AccountID); err == nil {
		result.Balance = account.Balance
	}

	s.log.Info().
		Str("side", string(req.Side)).
		Str("symbol", symbol).
		Float64("quantity", req.Quantity).
		Float64("price", price).
		Str("price_source", quote.Source).
		Msg("Trade executed")

	return result, nil
}
