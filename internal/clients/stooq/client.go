// Package stooq fetches end-of-day US stock quotes from stooq's CSV endpoint.
package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public stooq host.
const DefaultBaseURL = "https://stooq.pl"

// Client for stooq light quotes (/q/l/)
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
	now     func() time.Time
}

// NewClient creates a new stooq client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "stooq").Logger(),
		now:     time.Now,
	}
}

// Quote returns the latest close for a US-listed symbol together with a
// synthetic three-point monthly history anchored on the quote date.
func (c *Client) Quote(ctx context.Context, symbol string) (domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/q/l/?s=%s.us&f=sd2t2ohlcv&h&e=csv",
		c.baseURL, strings.ToLower(symbol))
	c.log.Debug().Str("url", endpoint).Msg("Fetching quote")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	row, err := readQuoteRow(resp.Body)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("symbol %s: %w", symbol, err)
	}

	closePrice, err := strconv.ParseFloat(strings.TrimSpace(row["close"]), 64)
	if err != nil || !domain.IsFinite(closePrice) || closePrice <= 0 {
		return domain.Quote{}, fmt.Errorf("symbol %s: no usable close price (%q)", symbol, row["close"])
	}
	price := domain.ClampPrice(closePrice)

	asOf := c.now().UTC()
	if d, err := domain.ParseDate(strings.TrimSpace(row["date"])); err == nil {
		asOf = d
	}

	c.log.Debug().
		Str("symbol", symbol).
		Float64("close", price).
		Str("date", domain.FormatDate(asOf)).
		Msg("Fetched quote")

	return domain.Quote{
		CurrentPrice: price,
		History:      domain.SyntheticHistory(price, asOf),
		Source:       "stooq",
		AsOf:         asOf,
	}, nil
}

// readQuoteRow parses the header and first data row into a map keyed by
// lower-cased column name.
func readQuoteRow(body io.Reader) (map[string]string, error) {
	r := csv.NewReader(body)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	record, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no data rows")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv row: %w", err)
	}

	row := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			row[strings.ToLower(strings.TrimSpace(name))] = record[i]
		}
	}
	if _, ok := row["close"]; !ok {
		return nil, fmt.Errorf("close column missing")
	}
	return row, nil
}
