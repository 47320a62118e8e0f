// Package accounts provides account storage and balance adjustments.
package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrAccountNotFound is returned when the account does not exist or belongs
// to another user.
var ErrAccountNotFound = errors.New("account not found")

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Repository handles account persistence in app.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new account repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "accounts").Logger(),
	}
}

const accountColumns = "id, user_id, name, institution, type, currency, balance, last_updated"

// ListByUser returns the user's accounts in insertion order.
func (r *Repository) ListByUser(userID string) ([]domain.Account, error) {
	rows, err := r.db.Query("SELECT "+accountColumns+" FROM accounts WHERE user_id = ? ORDER BY rowid", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// GetForUser returns the account if it belongs to userID.
func (r *Repository) GetForUser(userID, accountID string) (*domain.Account, error) {
	return GetForUser(r.db, userID, accountID)
}

// GetForUser loads an account through q, so callers can read inside a transaction.
func GetForUser(q Querier, userID, accountID string) (*domain.Account, error) {
	row := q.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE id = ? AND user_id = ?", accountID, userID)

	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return a, nil
}

// Create inserts an account.
func (r *Repository) Create(a *domain.Account) error {
	_, err := r.db.Exec(
		"INSERT INTO accounts ("+accountColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.UserID, a.Name, a.Institution, string(a.Type), string(a.Currency), domain.Round2(a.Balance), a.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	r.log.Debug().Str("account_id", a.ID).Str("user_id", a.UserID).Msg("Created account")
	return nil
}

// AdjustBalance adds delta to the account balance and stamps lastUpdated.
func (r *Repository) AdjustBalance(accountID string, delta float64, lastUpdated string) error {
	return AdjustBalance(r.db, accountID, delta, lastUpdated)
}

// AdjustBalance adds delta to the balance through q. The sum is computed in
// decimal and stored rounded to cents.
func AdjustBalance(q Querier, accountID string, delta float64, lastUpdated string) error {
	var balance float64
	err := q.QueryRow("SELECT balance FROM accounts WHERE id = ?", accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read balance for %s: %w", accountID, err)
	}

	next := decimal.NewFromFloat(balance).Add(decimal.NewFromFloat(delta)).Round(2).InexactFloat64()

	if _, err := q.Exec(
		"UPDATE accounts SET balance = ?, last_updated = ? WHERE id = ?",
		next, lastUpdated, accountID,
	); err != nil {
		return fmt.Errorf("failed to update balance for %s: %w", accountID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	var institution sql.NullString
	var accType, currency string
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &institution, &accType, &currency, &a.Balance, &a.LastUpdated); err != nil {
		return nil, err
	}
	if institution.Valid {
		a.Institution = &institution.String
	}
	a.Type = domain.AccountType(accType)
	a.Currency = domain.Currency(currency)
	return &a, nil
}
