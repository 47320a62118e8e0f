// Package networth rebuilds a daily net-worth history from a present-day
// snapshot of balances, the transaction ledger and priced holdings.
package networth

import (
	"sort"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
)

// Window bounds in days. Requests outside the range are clamped, never rejected.
const (
	MinWindowDays     = 7
	MaxWindowDays     = 365
	DefaultWindowDays = 90
)

// Point is one day of the reconstructed series.
type Point struct {
	Date        string  `json:"date"`
	Accounts    float64 `json:"accounts"`
	Investments float64 `json:"investments"`
	Total       float64 `json:"total"`
}

// Series is the reconstructed history, oldest point first.
type Series struct {
	Currency domain.Currency `json:"currency"`
	Points   []Point         `json:"points"`
}

// Snapshot is the point-in-time input of a reconstruction.
type Snapshot struct {
	Accounts     []domain.Account
	Transactions []domain.Transaction
	Holdings     []domain.PricedHolding
}

// ClampWindow forces days into [MinWindowDays, MaxWindowDays].
func ClampWindow(days int) int {
	if days < MinWindowDays {
		return MinWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}

// Reconstruct walks the ledger from the earliest recorded state up to today
// and values holdings with the last known price on each day.
//
// The account baseline is the current balance minus every transaction booked
// against those accounts; transactions dated before the window are then added
// back so the first point reflects the balance at the window start. The last
// point therefore equals current balances plus quantity × current price.
//
// Reconstruct performs no I/O, keeps no state and never fails.
func Reconstruct(snap Snapshot, windowDays int, today time.Time) Series {
	days := ClampWindow(windowDays)
	end := domain.DayAnchor(today)
	start := end.AddDate(0, 0, -(days - 1))
	startDate := domain.FormatDate(start)

	dates := make([]string, 0, days)
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		dates = append(dates, domain.FormatDate(cursor))
	}

	txSumByAccount := make(map[string]float64, len(snap.Accounts))
	dailyTx := make(map[string]float64)
	preRangeTx := 0.0
	for _, tx := range snap.Transactions {
		txSumByAccount[tx.AccountID] += tx.Amount
		dailyTx[tx.Date] += tx.Amount
		if tx.Date < startDate {
			preRangeTx += tx.Amount
		}
	}

	initialAccountValue := 0.0
	for _, acc := range snap.Accounts {
		initialAccountValue += acc.Balance - txSumByAccount[acc.ID]
	}

	holdings := make([]domain.PricedHolding, len(snap.Holdings))
	for i, h := range snap.Holdings {
		holdings[i] = withSortedHistory(h)
	}

	running := initialAccountValue + preRangeTx
	points := make([]Point, 0, len(dates))
	for _, date := range dates {
		running += dailyTx[date]

		investmentsValue := 0.0
		for _, h := range holdings {
			investmentsValue += h.Quantity * priceForSortedDate(h, date)
		}

		points = append(points, Point{
			Date:        date,
			Accounts:    domain.Round2(running),
			Investments: domain.Round2(investmentsValue),
			Total:       domain.Round2(running + investmentsValue),
		})
	}

	return Series{
		Currency: seriesCurrency(snap),
		Points:   points,
	}
}

// PriceForDate returns the price of h on date: the latest history sample
// dated on or before date, else the earliest sample. With no history it is
// the current price. A non-finite result falls back to the current price,
// then to 0. Prices are not interpolated between samples.
func PriceForDate(h domain.PricedHolding, date string) float64 {
	return priceForSortedDate(withSortedHistory(h), date)
}

func priceForSortedDate(h domain.PricedHolding, date string) float64 {
	if len(h.History) == 0 {
		return finiteOr(h.CurrentPrice, 0)
	}

	last := h.History[0].Value
	for _, p := range h.History {
		if p.Date > date {
			break
		}
		last = p.Value
	}

	if domain.IsFinite(last) {
		return last
	}
	return finiteOr(h.CurrentPrice, 0)
}

// withSortedHistory returns h with a copy of its history sorted by date.
// ISO dates sort correctly as strings.
func withSortedHistory(h domain.PricedHolding) domain.PricedHolding {
	if len(h.History) < 2 {
		return h
	}
	history := make([]domain.PricePoint, len(h.History))
	copy(history, h.History)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})
	h.History = history
	return h
}

func seriesCurrency(snap Snapshot) domain.Currency {
	if len(snap.Accounts) > 0 && snap.Accounts[0].Currency != "" {
		return snap.Accounts[0].Currency
	}
	if len(snap.Holdings) > 0 && snap.Holdings[0].Currency != "" {
		return snap.Holdings[0].Currency
	}
	return domain.DefaultCurrency
}

func finiteOr(v, fallback float64) float64 {
	if domain.IsFinite(v) {
		return v
	}
	return fallback
}

// ChangePct is the relative change between the first and last totals, in
// percent of |first|. It is 0 for an empty series or a zero first total.
func ChangePct(s Series) float64 {
	if len(s.Points) == 0 {
		return 0
	}
	first := s.Points[0].Total
	last := s.Points[len(s.Points)-1].Total
	if first == 0 {
		return 0
	}
	abs := first
	if abs < 0 {
		abs = -abs
	}
	return (last - first) / abs * 100
}
