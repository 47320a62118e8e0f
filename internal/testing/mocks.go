package testing

import (
	"context"
	"sync"

	"github.com/brenofinance/dashboard/internal/domain"
)

// MockCryptoFetcher is a mock crypto price feed for testing.
// Quotes are keyed by coin id.
type MockCryptoFetcher struct {
	mu     sync.Mutex
	quotes map[string]domain.Quote
	err    error
	calls  int
}

// NewMockCryptoFetcher creates a new mock crypto fetcher
func NewMockCryptoFetcher() *MockCryptoFetcher {
	return &MockCryptoFetcher{quotes: make(map[string]domain.Quote)}
}

// SetQuote sets the quote returned for a coin id
func (m *MockCryptoFetcher) SetQuote(coinID string, quote domain.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[coinID] = quote
}

// SetError sets the error to return from MarketChart
func (m *MockCryptoFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times MarketChart was invoked
func (m *MockCryptoFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MarketChart returns the configured quote
func (m *MockCryptoFetcher) MarketChart(_ context.Context, coinID string, _ domain.Currency) (domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.Quote{}, m.err
	}
	q, ok := m.quotes[coinID]
	if !ok {
		return domain.Quote{}, context.DeadlineExceeded
	}
	return q, nil
}

// MockStockFetcher is a mock stock quote feed for testing.
type MockStockFetcher struct {
	mu     sync.Mutex
	quotes map[string]domain.Quote
	errs   map[string]error
	calls  int
}

// NewMockStockFetcher creates a new mock stock fetcher
func NewMockStockFetcher() *MockStockFetcher {
	return &MockStockFetcher{
		quotes: make(map[string]domain.Quote),
		errs:   make(map[string]error),
	}
}

// SetQuote sets the quote returned for a symbol
func (m *MockStockFetcher) SetQuote(symbol string, quote domain.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[symbol] = quote
}

// SetError makes Quote fail for a symbol
func (m *MockStockFetcher) SetError(symbol string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[symbol] = err
}

// Calls returns how many times Quote was invoked
func (m *MockStockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Quote returns the configured quote
func (m *MockStockFetcher) Quote(_ context.Context, symbol string) (domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err, ok := m.errs[symbol]; ok {
		return domain.Quote{}, err
	}
	q, ok := m.quotes[symbol]
	if !ok {
		return domain.Quote{}, context.DeadlineExceeded
	}
	return q, nil
}
