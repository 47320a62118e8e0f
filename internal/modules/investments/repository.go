// Package investments provides holdings storage, live valuation, trading
// against cash accounts and the market asset list.
package investments

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/rs/zerolog"
)

// ErrInvestmentNotFound is returned when the user holds no such symbol.
var ErrInvestmentNotFound = errors.New("investment not found")

// Repository handles investment persistence in app.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new investment repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "investments").Logger(),
	}
}

const investmentColumns = "id, user_id, symbol, name, type, quantity, current_price, currency"

// ListByUser returns the user's holdings in insertion order.
func (r *Repository) ListByUser(userID string) ([]domain.Investment, error) {
	rows, err := r.db.Query("SELECT "+investmentColumns+" FROM investments WHERE user_id = ? ORDER BY rowid", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	list := make([]domain.Investment, 0)
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		list = append(list, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investments: %w", err)
	}

	return list, nil
}

// GetBySymbol returns the user's holding of symbol or ErrInvestmentNotFound.
func (r *Repository) GetBySymbol(userID, symbol string) (*domain.Investment, error) {
	return getBySymbol(r.db, userID, symbol)
}

func getBySymbol(q accounts.Querier, userID, symbol string) (*domain.Investment, error) {
	row := q.QueryRow(
		"SELECT "+investmentColumns+" FROM investments WHERE user_id = ? AND symbol = ? ORDER BY rowid LIMIT 1",
		userID, symbol,
	)
	inv, err := scanInvestment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvestmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investment %s: %w", symbol, err)
	}
	return inv, nil
}

// Create inserts a holding.
func (r *Repository) Create(inv *domain.Investment) error {
	return insertInvestment(r.db, inv)
}

func insertInvestment(q accounts.Querier, inv *domain.Investment) error {
	_, err := q.Exec(
		"INSERT INTO investments ("+investmentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		inv.ID, inv.UserID, inv.Symbol, inv.Name, string(inv.Type), inv.Quantity, inv.CurrentPrice, string(inv.Currency),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment %s: %w", inv.Symbol, err)
	}
	return nil
}

// UpdateHolding sets quantity and last price of a holding.
func (r *Repository) UpdateHolding(id string, quantity, price float64) error {
	return updateHolding(r.db, id, quantity, price)
}

func updateHolding(q accounts.Querier, id string, quantity, price float64) error {
	if _, err := q.Exec(
		"UPDATE investments SET quantity = ?, current_price = ? WHERE id = ?",
		quantity, price, id,
	); err != nil {
		return fmt.Errorf("failed to update investment %s: %w", id, err)
	}
	return nil
}

// Delete removes a holding.
func (r *Repository) Delete(id string) error {
	return deleteInvestment(r.db, id)
}

func deleteInvestment(q accounts.Querier, id string) error {
	if _, err := q.Exec("DELETE FROM investments WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete investment %s: %w", id, err)
	}
	return nil
}

// DistinctSymbols returns one entry per held (symbol, type, currency) across
// all users, carrying the highest stored price. Used to warm the price cache.
func (r *Repository) DistinctSymbols() ([]domain.Investment, error) {
	rows, err := r.db.Query(`
		SELECT symbol, type, currency, MAX(current_price)
		FROM investments
		GROUP BY symbol, type, currency
		ORDER BY symbol, currency
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct symbols: %w", err)
	}
	defer rows.Close()

	list := make([]domain.Investment, 0)
	for rows.Next() {
		var inv domain.Investment
		var invType, currency string
		if err := rows.Scan(&inv.Symbol, &invType, &currency, &inv.CurrentPrice); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		inv.Type = domain.AssetType(invType)
		inv.Currency = domain.Currency(currency)
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return list, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvestment(row rowScanner) (*domain.Investment, error) {
	var inv domain.Investment
	var invType, currency string
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.Symbol, &inv.Name, &invType,
		&inv.Quantity, &inv.CurrentPrice, &currency); err != nil {
		return nil, err
	}
	inv.Type = domain.AssetType(invType)
	inv.Currency = domain.Currency(currency)
	return &inv, nil
}
