// Package pricing resolves current prices and short histories for holdings
// through an ordered chain of strategies.
package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// Resolver runs a strategy chain per request. Resolve never fails: when every
// strategy declines, DefaultPrice is used.
type Resolver struct {
	strategies []Strategy
	now        domain.Clock
	log        zerolog.Logger
}

// NewResolver creates a resolver over the given chain.
func NewResolver(strategies []Strategy, now domain.Clock, log zerolog.Logger) *Resolver {
	if now == nil {
		now = domain.SystemClock
	}
	return &Resolver{
		strategies: strategies,
		now:        now,
		log:        log.With().Str("service", "pricing").Logger(),
	}
}

// Resolve returns a usable quote for req.
func (r *Resolver) Resolve(ctx context.Context, req Request) domain.Quote {
	req = req.normalized()

	for _, s := range r.strategies {
		quote, ok := s.Resolve(ctx, req)
		if ok && quote.Usable() {
			r.log.Debug().
				Str("symbol", req.Symbol).
				Str("currency", string(req.Currency)).
				Str("strategy", s.Name()).
				Float64("price", quote.CurrentPrice).
				Msg("Resolved price")
			return quote
		}
	}

	r.log.Warn().Str("symbol", req.Symbol).Msg("No strategy could price symbol, using default")
	return syntheticQuote(DefaultPrice, "default", r.now())
}

// ResolveAll resolves every request concurrently. Results keep input order
// and a panic while pricing one request only degrades that request.
func (r *Resolver) ResolveAll(ctx context.Context, reqs []Request) []domain.Quote {
	quotes := make([]domain.Quote, len(reqs))

	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					r.log.Error().
						Str("symbol", reqs[i].Symbol).
						Str("panic", fmt.Sprint(rec)).
						Msg("Panic while resolving price")
					quotes[i] = syntheticQuote(DefaultPrice, "default", r.now())
				}
			}()
			quotes[i] = r.Resolve(ctx, reqs[i])
		}(i)
	}
	wg.Wait()

	return quotes
}

// PriceHoldings prices each investment and returns holdings in input order.
func (r *Resolver) PriceHoldings(ctx context.Context, investments []domain.Investment) []domain.PricedHolding {
	quotes := r.ResolveAll(ctx, RequestsFor(investments))

	holdings := make([]domain.PricedHolding, len(investments))
	for i, inv := range investments {
		holdings[i] = domain.PricedHolding{
			Symbol:       inv.Symbol,
			Quantity:     inv.Quantity,
			Currency:     inv.Currency,
			CurrentPrice: quotes[i].CurrentPrice,
			History:      quotes[i].History,
		}
	}
	return holdings
}

// RequestsFor builds one request per investment.
func RequestsFor(investments []domain.Investment) []Request {
	reqs := make([]Request, len(investments))
	for i, inv := range investments {
		reqs[i] = Request{
			Symbol:      inv.Symbol,
			Type:        inv.Type,
			Currency:    inv.Currency,
			StoredPrice: inv.CurrentPrice,
		}
	}
	return reqs
}
