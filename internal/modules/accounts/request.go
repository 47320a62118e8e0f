package accounts

import (
	"fmt"
	"strings"

	"github.com/brenofinance/dashboard/internal/domain"
)

// CreateRequest is the body of POST /accounts.
type CreateRequest struct {
	Name        string             `json:"name"`
	Institution *string            `json:"institution,omitempty"`
	Type        domain.AccountType `json:"type"`
	Currency    domain.Currency    `json:"currency"`
	Balance     *float64           `json:"balance"`
}

// Validate checks required fields and enums.
func (req CreateRequest) Validate() error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("unknown account type %q", req.Type)
	}
	if !req.Currency.IsSupported() {
		return fmt.Errorf("unsupported currency %q", req.Currency)
	}
	if req.Balance == nil {
		return fmt.Errorf("balance is required")
	}
	if !domain.IsFinite(*req.Balance) {
		return fmt.Errorf("balance must be a finite number")
	}
	return nil
}

// ToAccount builds the account to insert.
func (req CreateRequest) ToAccount(id, userID, today string) domain.Account {
	return domain.Account{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Institution: req.Institution,
		Type:        req.Type,
		Currency:    req.Currency,
		Balance:     domain.Round2(*req.Balance),
		LastUpdated: today,
	}
}
