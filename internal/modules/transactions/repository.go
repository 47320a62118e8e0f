// Package transactions provides the transaction ledger: filtered listing and
// creation with the matching account balance update.
package transactions

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/brenofinance/dashboard/internal/database"
	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/rs/zerolog"
)

// Repository handles transaction persistence in app.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "transactions").Logger(),
	}
}

const transactionColumns = "id, user_id, account_id, category_id, description, type, amount, currency, date"

// ListByUser returns every transaction of the user, oldest first.
func (r *Repository) ListByUser(userID string) ([]domain.Transaction, error) {
	return r.query(
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = ? ORDER BY date ASC, rowid ASC",
		userID,
	)
}

// List returns one page of the user's transactions matching f, newest first.
func (r *Repository) List(userID string, f Filter) (Page, error) {
	f = f.normalized()
	where, args := f.where(userID)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions WHERE "+where, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := "SELECT " + transactionColumns + " FROM transactions WHERE " + where +
		" ORDER BY date DESC, rowid DESC LIMIT ? OFFSET ?"
	items, err := r.query(query, append(args, f.PageSize, (f.Page-1)*f.PageSize)...)
	if err != nil {
		return Page{}, err
	}

	return newPage(items, f, total), nil
}

// Create inserts tx and applies its amount to the account balance in one
// database transaction. The account must belong to tx.UserID; its currency
// overrides tx.Currency.
func (r *Repository) Create(tx *domain.Transaction) error {
	err := database.WithTransaction(r.db, func(sqlTx *sql.Tx) error {
		account, err := accounts.GetForUser(sqlTx, tx.UserID, tx.AccountID)
		if err != nil {
			return err
		}
		tx.Currency = account.Currency

		if _, err := sqlTx.Exec(
			"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			tx.ID, tx.UserID, tx.AccountID, tx.CategoryID, tx.Description, string(tx.Type),
			tx.Amount, string(tx.Currency), tx.Date,
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		return accounts.AdjustBalance(sqlTx, tx.AccountID, tx.Amount, tx.Date)
	})
	if err != nil {
		return err
	}

	r.log.Debug().
		Str("transaction_id", tx.ID).
		Str("account_id", tx.AccountID).
		Float64("amount", tx.Amount).
		Msg("Recorded transaction")
	return nil
}

func (r *Repository) query(query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var txType, currency string
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &tx.CategoryID, &tx.Description,
			&txType, &tx.Amount, &currency, &tx.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Type = domain.TransactionType(txType)
		tx.Currency = domain.Currency(currency)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
