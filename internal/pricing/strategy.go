package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// Request identifies what to price. StoredPrice is the holding's last
// persisted price, 0 when there is none.
type Request struct {
	Symbol      string
	Type        domain.AssetType
	Currency    domain.Currency
	StoredPrice float64
}

func (r Request) normalized() Request {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	r.Currency = domain.Currency(strings.ToUpper(string(r.Currency)))
	if r.Currency == "" {
		r.Currency = domain.DefaultCurrency
	}
	return r
}

// Strategy is one step of a resolution chain. ok=false hands the request to
// the next strategy; a returned quote with ok=true must be Usable.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, req Request) (domain.Quote, bool)
}

// CryptoFetcher is satisfied by *coingecko.Client.
type CryptoFetcher interface {
	MarketChart(ctx context.Context, coinID string, currency domain.Currency) (domain.Quote, error)
}

// StockFetcher is satisfied by *stooq.Client.
type StockFetcher interface {
	Quote(ctx context.Context, symbol string) (domain.Quote, error)
}

// Source is a live price feed for some subset of requests.
type Source interface {
	Name() string
	Supports(req Request) bool
	Fetch(ctx context.Context, req Request) (domain.Quote, error)
}

type coinGeckoSource struct {
	client CryptoFetcher
}

// NewCoinGeckoSource prices crypto symbols that have a known coin id.
func NewCoinGeckoSource(client CryptoFetcher) Source {
	return &coinGeckoSource{client: client}
}

func (s *coinGeckoSource) Name() string { return "coingecko" }

func (s *coinGeckoSource) Supports(req Request) bool {
	if req.Type != domain.AssetTypeCrypto {
		return false
	}
	_, ok := CoinID(req.Symbol)
	return ok
}

func (s *coinGeckoSource) Fetch(ctx context.Context, req Request) (domain.Quote, error) {
	id, _ := CoinID(req.Symbol)
	return s.client.MarketChart(ctx, id, req.Currency)
}

type stooqSource struct {
	client StockFetcher
}

// NewStooqSource prices stocks and ETFs. Stooq quotes US listings in USD
// whatever currency the holding is recorded in.
func NewStooqSource(client StockFetcher) Source {
	return &stooqSource{client: client}
}

func (s *stooqSource) Name() string { return "stooq" }

func (s *stooqSource) Supports(req Request) bool {
	return req.Type == domain.AssetTypeStock || req.Type == domain.AssetTypeETF
}

func (s *stooqSource) Fetch(ctx context.Context, req Request) (domain.Quote, error) {
	return s.client.Quote(ctx, req.Symbol)
}

// liveStrategy asks the first source that supports the request and records
// successful quotes in the cache.
type liveStrategy struct {
	sources []Source
	cache   *PriceCache
	timeout time.Duration
	now     domain.Clock
	log     zerolog.Logger
}

// Live returns a strategy backed by live sources. timeout bounds each fetch;
// zero leaves the caller's deadline in charge.
func Live(sources []Source, cache *PriceCache, timeout time.Duration, now domain.Clock, log zerolog.Logger) Strategy {
	if now == nil {
		now = domain.SystemClock
	}
	return &liveStrategy{
		sources: sources,
		cache:   cache,
		timeout: timeout,
		now:     now,
		log:     log.With().Str("strategy", "live").Logger(),
	}
}

func (s *liveStrategy) Name() string { return "live" }

func (s *liveStrategy) Resolve(ctx context.Context, req Request) (domain.Quote, bool) {
	for _, src := range s.sources {
		if !src.Supports(req) {
			continue
		}

		fetchCtx := ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		quote, err := src.Fetch(fetchCtx, req)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", req.Symbol).Str("source", src.Name()).Msg("Live price fetch failed")
			return domain.Quote{}, false
		}
		if !quote.Usable() {
			s.log.Warn().Str("symbol", req.Symbol).Str("source", src.Name()).Float64("price", quote.CurrentPrice).Msg("Live price not usable")
			return domain.Quote{}, false
		}
		if quote.Source == "" {
			quote.Source = src.Name()
		}
		if quote.AsOf.IsZero() {
			quote.AsOf = s.now().UTC()
		}
		if s.cache != nil {
			s.cache.Put(req.Symbol, req.Currency, quote)
		}
		return quote, true
	}
	return domain.Quote{}, false
}

type cacheStrategy struct {
	cache      *PriceCache
	allowStale bool
}

// FreshCache serves quotes still within the cache TTL.
func FreshCache(cache *PriceCache) Strategy {
	return &cacheStrategy{cache: cache}
}

// StaleCache serves any cached quote, expired or not.
func StaleCache(cache *PriceCache) Strategy {
	return &cacheStrategy{cache: cache, allowStale: true}
}

func (s *cacheStrategy) Name() string {
	if s.allowStale {
		return "stale_cache"
	}
	return "fresh_cache"
}

func (s *cacheStrategy) Resolve(_ context.Context, req Request) (domain.Quote, bool) {
	if s.cache == nil {
		return domain.Quote{}, false
	}
	quote, fresh, found := s.cache.Lookup(req.Symbol, req.Currency)
	if !found || !quote.Usable() || (!fresh && !s.allowStale) {
		return domain.Quote{}, false
	}
	return quote, true
}

type staticTableStrategy struct {
	now domain.Clock
}

// StaticTable prices well-known symbols from a built-in table.
func StaticTable(now domain.Clock) Strategy {
	if now == nil {
		now = domain.SystemClock
	}
	return &staticTableStrategy{now: now}
}

func (s *staticTableStrategy) Name() string { return "static" }

func (s *staticTableStrategy) Resolve(_ context.Context, req Request) (domain.Quote, bool) {
	price, ok := StaticPrice(req.Symbol)
	if !ok {
		return domain.Quote{}, false
	}
	return syntheticQuote(price, "static", s.now()), true
}

type storedPriceStrategy struct {
	now domain.Clock
}

// StoredPrice falls back to the holding's persisted price.
func StoredPrice(now domain.Clock) Strategy {
	if now == nil {
		now = domain.SystemClock
	}
	return &storedPriceStrategy{now: now}
}

func (s *storedPriceStrategy) Name() string { return "stored" }

func (s *storedPriceStrategy) Resolve(_ context.Context, req Request) (domain.Quote, bool) {
	if !domain.IsFinite(req.StoredPrice) || req.StoredPrice <= 0 {
		return domain.Quote{}, false
	}
	return syntheticQuote(req.StoredPrice, "stored", s.now()), true
}

func syntheticQuote(price float64, source string, now time.Time) domain.Quote {
	return domain.Quote{
		CurrentPrice: price,
		History:      domain.SyntheticHistory(price, now),
		Source:       source,
		AsOf:         now.UTC(),
	}
}

// DefaultChain is fresh cache, live sources, stale cache, static table,
// then the stored price.
func DefaultChain(cache *PriceCache, sources []Source, timeout time.Duration, now domain.Clock, log zerolog.Logger) []Strategy {
	return []Strategy{
		FreshCache(cache),
		Live(sources, cache, timeout, now, log),
		StaleCache(cache),
		StaticTable(now),
		StoredPrice(now),
	}
}
