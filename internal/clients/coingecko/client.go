// Package coingecko fetches crypto prices and short price histories from the
// CoinGecko public API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public CoinGecko v3 API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// chartDays is the lookback requested from market_chart.
const chartDays = 7

// maxHistoryPoints caps the down-sampled history length.
const maxHistoryPoints = 10

// Client for the CoinGecko market_chart endpoint
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new CoinGecko client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "coingecko").Logger(),
	}
}

type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// MarketChart returns the latest price for coinID and a history of at most
// ten points sampled from the last seven days. Prices are clamped to
// [domain.MinQuotePrice, domain.MaxQuotePrice].
func (c *Client) MarketChart(ctx context.Context, coinID string, currency domain.Currency) (domain.Quote, error) {
	vs := "usd"
	if currency == domain.CurrencyCAD {
		vs = "cad"
	}

	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.baseURL, url.PathEscape(coinID), vs, chartDays)
	c.log.Debug().Str("url", endpoint).Msg("Fetching market chart")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result marketChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to parse response: %w", err)
	}

	quote, err := buildQuote(result.Prices)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("coin %s: %w", coinID, err)
	}

	c.log.Debug().
		Str("coin", coinID).
		Str("currency", string(currency)).
		Float64("price", quote.CurrentPrice).
		Int("history_points", len(quote.History)).
		Msg("Fetched market chart")

	return quote, nil
}

// buildQuote turns [timestamp_ms, price] samples into a quote.
func buildQuote(prices [][]float64) (domain.Quote, error) {
	if len(prices) == 0 {
		return domain.Quote{}, fmt.Errorf("no prices in response")
	}

	last := prices[len(prices)-1]
	if len(last) < 2 || !validPrice(last[1]) {
		return domain.Quote{}, fmt.Errorf("latest price is not usable")
	}
	current := domain.ClampPrice(last[1])

	step := int(math.Ceil(float64(len(prices)) / maxHistoryPoints))
	history := make([]domain.PricePoint, 0, maxHistoryPoints)
	for i := 0; i < len(prices); i += step {
		sample := prices[i]
		if len(sample) < 2 {
			continue
		}
		value := current
		if validPrice(sample[1]) {
			value = domain.ClampPrice(sample[1])
		}
		history = append(history, domain.PricePoint{
			Date:  domain.FormatDate(time.UnixMilli(int64(sample[0]))),
			Value: value,
		})
	}

	// The newest sample is always the latest price so today values at CurrentPrice.
	latest := domain.PricePoint{Date: domain.FormatDate(time.UnixMilli(int64(last[0]))), Value: current}
	if n := len(history); n > 0 && (n == maxHistoryPoints || history[n-1].Date == latest.Date) {
		history[n-1] = latest
	} else {
		history = append(history, latest)
	}

	return domain.Quote{
		CurrentPrice: current,
		History:      history,
		Source:       "coingecko",
		AsOf:         time.UnixMilli(int64(last[0])).UTC(),
	}, nil
}

func validPrice(v float64) bool {
	return domain.IsFinite(v) && v > 0
}
