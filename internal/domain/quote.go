package domain

import "time"

// Price bounds applied to live quotes. Values outside are treated as feed noise.
const (
	MinQuotePrice = 0.01
	MaxQuotePrice = 200000.0
)

// Quote is a resolved price for one symbol in one currency.
type Quote struct {
	CurrentPrice float64      `json:"currentPrice" msgpack:"current_price"`
	History      []PricePoint `json:"history" msgpack:"history"`
	Source       string       `json:"source" msgpack:"source"`
	AsOf         time.Time    `json:"asOf" msgpack:"as_of"`
}

// Usable reports whether the quote carries a positive, finite price.
func (q Quote) Usable() bool {
	return IsFinite(q.CurrentPrice) && q.CurrentPrice > 0
}

// ClampPrice limits v to [MinQuotePrice, MaxQuotePrice].
func ClampPrice(v float64) float64 {
	if v < MinQuotePrice {
		return MinQuotePrice
	}
	if v > MaxQuotePrice {
		return MaxQuotePrice
	}
	return v
}

// SyntheticHistory builds a three-point monthly history ending on the first
// of anchor's month at price, with the two prior months at 92% and 96%.
// Used when a source has a current price but no usable series. Samples are
// left unrounded so the newest one equals price exactly.
func SyntheticHistory(price float64, anchor time.Time) []PricePoint {
	u := anchor.UTC()
	first := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	factors := []float64{0.92, 0.96, 1.00}
	history := make([]PricePoint, len(factors))
	for i, f := range factors {
		month := first.AddDate(0, i-(len(factors)-1), 0)
		history[i] = PricePoint{Date: FormatDate(month), Value: price * f}
	}
	return history
}
