package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/investments"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/brenofinance/dashboard/internal/pricing"
	testingpkg "github.com/brenofinance/dashboard/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db, _ := testingpkg.NewTestDB(t, "app")
	testingpkg.SeedFixtures(t, db.Conn())

	logger := zerolog.New(nil).Level(zerolog.Disabled)
	clock := func() time.Time { return time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC) }

	stocks := testingpkg.NewMockStockFetcher()
	stocks.SetQuote("AAPL", domain.Quote{CurrentPrice: 200, History: domain.SyntheticHistory(200, clock())})
	crypto := testingpkg.NewMockCryptoFetcher()

	cache := pricing.NewPriceCache(time.Minute, nil, clock, logger)
	sources := []pricing.Source{pricing.NewCoinGeckoSource(crypto), pricing.NewStooqSource(stocks)}
	resolver := pricing.NewResolver(pricing.DefaultChain(cache, sources, time.Second, clock, logger), clock, logger)

	repo := investments.NewRepository(db.Conn(), logger)
	service := investments.NewService(db.Conn(), repo, resolver, clock, logger)
	handler := NewHandler(service, logger)

	r := chi.NewRouter()
	r.Use(users.Identify(testingpkg.TestUserID))
	handler.RegisterRoutes(r)
	return r
}

func TestHandleList(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/investments", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "AAPL", list[0]["symbol"])
	assert.Equal(t, 200.0, list[0]["currentPrice"])
	assert.Len(t, list[0]["history"], 3)
	// BTC has no live quote, so the static table applies
	assert.Equal(t, 60000.0, list[1]["currentPrice"])
}

func TestHandleCreate(t *testing.T) {
	router := setupRouter(t)

	body := `{"symbol":"vti","name":"Vanguard Total","type":"ETF","quantity":3,"currentPrice":245,"currency":"USD"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/investments", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var inv domain.Investment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, "VTI", inv.Symbol)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/investments", bytes.NewBufferString(`{"symbol":"VTI"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTrade(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "buy",
			body:           `{"symbol":"AAPL","name":"Apple","type":"STOCK","quantity":1,"side":"BUY","accountId":"acc-a","currency":"USD"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "insufficient funds",
			body:           `{"symbol":"AAPL","name":"Apple","type":"STOCK","quantity":100,"side":"BUY","accountId":"acc-a","currency":"USD"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Insufficient funds"}`,
		},
		{
			name:           "oversell",
			body:           `{"symbol":"AAPL","name":"Apple","type":"STOCK","quantity":100,"side":"SELL","accountId":"acc-a","currency":"USD"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Not enough holdings to sell"}`,
		},
		{
			name:           "currency mismatch",
			body:           `{"symbol":"AAPL","name":"Apple","type":"STOCK","quantity":1,"side":"BUY","accountId":"acc-a","currency":"CAD"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Account currency mismatch"}`,
		},
		{
			name:           "unknown account",
			body:           `{"symbol":"AAPL","name":"Apple","type":"STOCK","quantity":1,"side":"BUY","accountId":"nope","currency":"USD"}`,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Account not found"}`,
		},
		{
			name:           "invalid side",
			body:           `{"symbol":"AAPL","name":"Apple","type":"STOCK","quantity":1,"side":"SHORT","accountId":"acc-a","currency":"USD"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid trade payload"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("POST", "/investments/trade", bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHandleMarketAssets(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/market/assets", nil).WithContext(context.Background())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var assets []investments.MarketAsset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assets))
	require.Len(t, assets, 9)
	assert.Equal(t, domain.CurrencyUSD, assets[0].Currency)
	assert.Equal(t, 60000.0, assets[0].CurrentPrice)
	assert.Equal(t, "AAPL", assets[3].Symbol)
	assert.Equal(t, 200.0, assets[3].CurrentPrice)
}
