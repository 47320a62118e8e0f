package investments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/pricing"
	testingpkg "github.com/brenofinance/dashboard/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedResolver prices symbols from a map and falls back to the stored price.
type fixedResolver struct {
	mu     sync.Mutex
	prices map[string]float64
	seen   []pricing.Request
}

func (f *fixedResolver) Resolve(_ context.Context, req pricing.Request) domain.Quote {
	f.mu.Lock()
	f.seen = append(f.seen, req)
	f.mu.Unlock()

	price, ok := f.prices[req.Symbol]
	if !ok {
		price = req.StoredPrice
	}
	if price <= 0 {
		price = pricing.DefaultPrice
	}
	return domain.Quote{
		CurrentPrice: price,
		History:      []domain.PricePoint{{Date: "2025-01-01", Value: price}},
		Source:       "fixed",
	}
}

func (f *fixedResolver) ResolveAll(ctx context.Context, reqs []pricing.Request) []domain.Quote {
	out := make([]domain.Quote, len(reqs))
	for i, r := range reqs {
		out[i] = f.Resolve(ctx, r)
	}
	return out
}

type serviceFixture struct {
	service  *Service
	repo     *Repository
	accounts *accounts.Repository
}

func newServiceFixture(t *testing.T, prices map[string]float64) *serviceFixture {
	t.Helper()
	db, _ := testingpkg.NewTestDB(t, "app")
	testingpkg.SeedFixtures(t, db.Conn())

	repo := NewRepository(db.Conn(), zerolog.Nop())
	clock := func() time.Time { return time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC) }
	return &serviceFixture{
		service:  NewService(db.Conn(), repo, &fixedResolver{prices: prices}, clock, zerolog.Nop()),
		repo:     repo,
		accounts: accounts.NewRepository(db.Conn(), zerolog.Nop()),
	}
}

func (f *serviceFixture) balance(t *testing.T, accountID string) float64 {
	t.Helper()
	a, err := f.accounts.GetForUser(testingpkg.TestUserID, accountID)
	require.NoError(t, err)
	return a.Balance
}

func TestListPriced(t *testing.T) {
	f := newServiceFixture(t, map[string]float64{"AAPL": 150})

	list, err := f.service.ListPriced(context.Background(), testingpkg.TestUserID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AAPL", list[0].Symbol)
	assert.Equal(t, 150.0, list[0].CurrentPrice)
	assert.Len(t, list[0].History, 1)
	assert.Equal(t, 40000.0, list[1].CurrentPrice, "stored price used when no live quote")
}

func TestTrade_BuyNewHolding(t *testing.T) {
	f := newServiceFixture(t, map[string]float64{"MSFT": 300})

	result, err := f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "msft", Name: "Microsoft", Type: domain.AssetTypeStock, Quantity: 2,
		Side: SideBuy, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 600.0, result.Cost)
	assert.Equal(t, 400.0, result.Balance)
	require.NotNil(t, result.Holding)
	assert.Equal(t, "MSFT", result.Holding.Symbol)

	assert.Equal(t, 400.0, f.balance(t, "acc-a"))
	inv, err := f.repo.GetBySymbol(testingpkg.TestUserID, "MSFT")
	require.NoError(t, err)
	assert.Equal(t, 2.0, inv.Quantity)
	assert.Equal(t, 300.0, inv.CurrentPrice)
}

func TestTrade_BuyAddsToExisting(t *testing.T) {
	f := newServiceFixture(t, map[string]float64{"AAPL": 110})

	_, err := f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 1.5,
		Side: SideBuy, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	require.NoError(t, err)

	inv, err := f.repo.GetBySymbol(testingpkg.TestUserID, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 3.5, inv.Quantity)
	assert.Equal(t, 110.0, inv.CurrentPrice)
	assert.Equal(t, 835.0, f.balance(t, "acc-a"))
}

func TestTrade_InsufficientFunds(t *testing.T) {
	f := newServiceFixture(t, map[string]float64{"NVDA": 900})

	_, err := f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "NVDA", Name: "NVIDIA", Type: domain.AssetTypeStock, Quantity: 2,
		Side: SideBuy, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 1000.0, f.balance(t, "acc-a"))

	_, err = f.repo.GetBySymbol(testingpkg.TestUserID, "NVDA")
	assert.ErrorIs(t, err, ErrInvestmentNotFound)
}

func TestTrade_SellPartialAndFull(t *testing.T) {
	f := newServiceFixture(t, map[string]float64{"AAPL": 120})

	result, err := f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 0.5,
		Side: SideSell, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Holding)
	assert.Equal(t, 1.5, result.Holding.Quantity)
	assert.Equal(t, 1060.0, f.balance(t, "acc-a"))

	result, err = f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 1.5,
		Side: SideSell, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Holding)
	assert.Equal(t, 1240.0, f.balance(t, "acc-a"))

	_, err = f.repo.GetBySymbol(testingpkg.TestUserID, "AAPL")
	assert.ErrorIs(t, err, ErrInvestmentNotFound)
}

func TestTrade_SellErrors(t *testing.T) {
	f := newServiceFixture(t, nil)

	_, err := f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 5,
		Side: SideSell, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	assert.ErrorIs(t, err, ErrInsufficientHoldings)

	_, err = f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "TSLA", Name: "Tesla", Type: domain.AssetTypeStock, Quantity: 1,
		Side: SideSell, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	assert.ErrorIs(t, err, ErrInsufficientHoldings)
	assert.Equal(t, 1000.0, f.balance(t, "acc-a"))
}

func TestTrade_AccountChecks(t *testing.T) {
	f := newServiceFixture(t, nil)

	_, err := f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 1,
		Side: SideBuy, AccountID: "missing", Currency: domain.CurrencyUSD,
	})
	assert.ErrorIs(t, err, accounts.ErrAccountNotFound)

	_, err = f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 1,
		Side: SideBuy, AccountID: "acc-a", Currency: domain.CurrencyCAD,
	})
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestTrade_UsesStoredPriceAsHint(t *testing.T) {
	f := newServiceFixture(t, nil)
	resolver := f.service.resolver.(*fixedResolver)

	result, err := f.service.Trade(context.Background(), testingpkg.TestUserID, TradeRequest{
		Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 1,
		Side: SideSell, AccountID: "acc-a", Currency: domain.CurrencyUSD,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Price)
	require.NotEmpty(t, resolver.seen)
	assert.Equal(t, 100.0, resolver.seen[len(resolver.seen)-1].StoredPrice)
}

func TestMarketAssets(t *testing.T) {
	f := newServiceFixture(t, map[string]float64{"BTC": 61000})

	assets := f.service.MarketAssets(context.Background(), domain.CurrencyCAD)
	require.Len(t, assets, len(pricing.Catalog()))
	assert.Equal(t, "BTC", assets[0].Symbol)
	assert.Equal(t, "Bitcoin", assets[0].Name)
	assert.Equal(t, 61000.0, assets[0].CurrentPrice)
	assert.Equal(t, domain.CurrencyCAD, assets[0].Currency)
	for _, a := range assets {
		assert.Greater(t, a.CurrentPrice, 0.0)
	}
}

func TestRepository_DistinctSymbols(t *testing.T) {
	f := newServiceFixture(t, nil)

	_, err := f.service.Create("user-test", CreateRequest{Symbol: "aapl", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 1, CurrentPrice: 130, Currency: domain.CurrencyUSD})
	require.NoError(t, err)

	symbols, err := f.repo.DistinctSymbols()
	require.NoError(t, err)
	require.Len(t, symbols, 2)
	assert.Equal(t, "AAPL", symbols[0].Symbol)
	assert.Equal(t, 130.0, symbols[0].CurrentPrice)
	assert.Equal(t, "BTC", symbols[1].Symbol)
}

func TestRequests_Validate(t *testing.T) {
	assert.NoError(t, CreateRequest{Symbol: "VTI", Name: "Vanguard", Type: domain.AssetTypeETF, Quantity: 1, CurrentPrice: 2, Currency: domain.CurrencyUSD}.Validate())
	assert.Error(t, CreateRequest{Symbol: "VTI", Name: "Vanguard", Type: domain.AssetTypeETF, Quantity: 0, CurrentPrice: 2, Currency: domain.CurrencyUSD}.Validate())
	assert.Error(t, CreateRequest{Symbol: "VTI", Name: "Vanguard", Type: "CASH", Quantity: 1, CurrentPrice: 2, Currency: domain.CurrencyUSD}.Validate())

	trade := TradeRequest{Symbol: "BTC", Name: "Bitcoin", Type: domain.AssetTypeCrypto, Quantity: 0.1, Side: SideBuy, AccountID: "acc-a", Currency: domain.CurrencyUSD}
	assert.NoError(t, trade.Validate())
	trade.Side = "HOLD"
	assert.Error(t, trade.Validate())
}
