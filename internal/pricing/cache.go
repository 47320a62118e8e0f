package pricing

import (
	"strings"
	"sync"
	"time"

	"github.com/brenofinance/dashboard/internal/clientdata"
	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// Persister is the durable tier behind PriceCache.
// *clientdata.Repository satisfies it.
type Persister interface {
	Store(table, key string, data interface{}, ttl time.Duration) error
	Get(table, key string, out interface{}) (time.Time, bool, error)
}

type cacheEntry struct {
	quote     domain.Quote
	expiresAt time.Time
}

// PriceCache holds resolved quotes keyed by SYMBOL-CURRENCY. Entries past
// their TTL are still returned, flagged as stale, so callers can prefer a
// stale quote over a static fallback. Safe for concurrent use.
type PriceCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     domain.Clock
	store   Persister
	log     zerolog.Logger
}

// NewPriceCache creates a cache. store may be nil for a memory-only cache.
func NewPriceCache(ttl time.Duration, store Persister, now domain.Clock, log zerolog.Logger) *PriceCache {
	if now == nil {
		now = domain.SystemClock
	}
	return &PriceCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
		store:   store,
		log:     log.With().Str("component", "price_cache").Logger(),
	}
}

// CacheKey builds the upper-cased SYMBOL-CURRENCY key.
func CacheKey(symbol string, currency domain.Currency) string {
	return strings.ToUpper(symbol) + "-" + strings.ToUpper(string(currency))
}

// Put records a quote and writes it through to the persister.
func (c *PriceCache) Put(symbol string, currency domain.Currency, quote domain.Quote) {
	key := CacheKey(symbol, currency)

	c.mu.Lock()
	c.entries[key] = cacheEntry{quote: quote, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Store(clientdata.TableCurrentPrices, key, quote, c.ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("Failed to persist quote")
		}
	}
}

// Lookup returns the cached quote and whether it is still within its TTL.
// A memory miss falls through to the persister and warms memory on a hit.
func (c *PriceCache) Lookup(symbol string, currency domain.Currency) (quote domain.Quote, fresh bool, found bool) {
	key := CacheKey(symbol, currency)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		entry, ok = c.loadPersisted(key)
		if !ok {
			return domain.Quote{}, false, false
		}
	}

	return entry.quote, c.now().Before(entry.expiresAt), true
}

func (c *PriceCache) loadPersisted(key string) (cacheEntry, bool) {
	if c.store == nil {
		return cacheEntry{}, false
	}

	var quote domain.Quote
	expiresAt, found, err := c.store.Get(clientdata.TableCurrentPrices, key, &quote)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Failed to read persisted quote")
		return cacheEntry{}, false
	}
	if !found || !quote.Usable() {
		return cacheEntry{}, false
	}

	entry := cacheEntry{quote: quote, expiresAt: expiresAt}
	c.mu.Lock()
	if _, exists := c.entries[key]; !exists {
		c.entries[key] = entry
	}
	c.mu.Unlock()

	return entry, true
}

// Len returns the number of quotes held in memory.
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
