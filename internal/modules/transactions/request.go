package transactions

import (
	"fmt"
	"math"
	"strings"

	"github.com/brenofinance/dashboard/internal/domain"
)

// CreateRequest is the body of POST /transactions. The amount's sign is
// taken from Type; the currency always comes from the account.
type CreateRequest struct {
	AccountID   string                 `json:"accountId"`
	CategoryID  string                 `json:"categoryId"`
	Description string                 `json:"description"`
	Type        domain.TransactionType `json:"type"`
	Amount      *float64               `json:"amount"`
	Date        string                 `json:"date"`
}

// Validate checks required fields and formats.
func (req CreateRequest) Validate() error {
	if strings.TrimSpace(req.AccountID) == "" {
		return fmt.Errorf("accountId is required")
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		return fmt.Errorf("categoryId is required")
	}
	if len(strings.TrimSpace(req.Description)) < 2 {
		return fmt.Errorf("description must be at least 2 characters")
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("unknown transaction type %q", req.Type)
	}
	if req.Amount == nil || !domain.IsFinite(*req.Amount) {
		return fmt.Errorf("amount must be a finite number")
	}
	if _, err := domain.ParseDate(req.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return nil
}

// ToTransaction builds the ledger entry with the signed amount.
func (req CreateRequest) ToTransaction(id, userID string) domain.Transaction {
	amount := math.Abs(*req.Amount)
	if req.Type == domain.TransactionTypeExpense {
		amount = -amount
	}
	return domain.Transaction{
		ID:          id,
		UserID:      userID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Type:        req.Type,
		Amount:      domain.Round2(amount),
		Date:        req.Date,
	}
}
