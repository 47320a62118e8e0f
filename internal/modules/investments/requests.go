package investments

import (
	"fmt"
	"strings"

	"github.com/brenofinance/dashboard/internal/domain"
)

// TradeSide is BUY or SELL.
type TradeSide string

const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// CreateRequest is the body of POST /investments.
type CreateRequest struct {
	Symbol       string           `json:"symbol"`
	Name         string           `json:"name"`
	Type         domain.AssetType `json:"type"`
	Quantity     float64          `json:"quantity"`
	CurrentPrice float64          `json:"currentPrice"`
	Currency     domain.Currency  `json:"currency"`
}

// Validate checks required fields and enums.
func (req CreateRequest) Validate() error {
	if strings.TrimSpace(req.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("unknown asset type %q", req.Type)
	}
	if !domain.IsFinite(req.Quantity) || req.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if !domain.IsFinite(req.CurrentPrice) || req.CurrentPrice <= 0 {
		return fmt.Errorf("currentPrice must be positive")
	}
	if !req.Currency.IsSupported() {
		return fmt.Errorf("unsupported currency %q", req.Currency)
	}
	return nil
}

// ToInvestment builds the holding to insert.
func (req CreateRequest) ToInvestment(id, userID string) domain.Investment {
	return domain.Investment{
		ID:           id,
		UserID:       userID,
		Symbol:       strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:         req.Name,
		Type:         req.Type,
		Quantity:     req.Quantity,
		CurrentPrice: req.CurrentPrice,
		Currency:     req.Currency,
	}
}

// TradeRequest is the body of POST /investments/trade.
type TradeRequest struct {
	Symbol    string           `json:"symbol"`
	Name      string           `json:"name"`
	Type      domain.AssetType `json:"type"`
	Quantity  float64          `json:"quantity"`
	Side      TradeSide        `json:"side"`
	AccountID string           `json:"accountId"`
	Currency  domain.Currency  `json:"currency"`
}

// Validate checks required fields and enums.
func (req TradeRequest) Validate() error {
	if strings.TrimSpace(req.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("unknown asset type %q", req.Type)
	}
	if !domain.IsFinite(req.Quantity) || req.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if req.Side != SideBuy && req.Side != SideSell {
		return fmt.Errorf("side must be BUY or SELL")
	}
	if strings.TrimSpace(req.AccountID) == "" {
		return fmt.Errorf("accountId is required")
	}
	if !req.Currency.IsSupported() {
		return fmt.Errorf("unsupported currency %q", req.Currency)
	}
	return nil
}
