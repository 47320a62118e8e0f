// Package seed populates an empty application database with a demo user
// and a small, consistent set of financial records.
package seed

import (
	"database/sql"
	"fmt"

	"github.com/brenofinance/dashboard/internal/database"
	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// DemoUserID is the id of the seeded user.
const DemoUserID = "user-1"

// DemoPassword is the plain-text password of the seeded user.
const DemoPassword = "demo123"

const demoDate = "2025-01-01"

// Seeder writes the demo data set
type Seeder struct {
	db  *sql.DB
	log zerolog.Logger
}

// New creates a seeder over the application database
func New(db *sql.DB, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:  db,
		log: log.With().Str("component", "seed").Logger(),
	}
}

// Run inserts the demo records when the users table is empty. It reports
// whether anything was written. Account balances already reflect the
// seeded transactions.
func (s *Seeder) Run() (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.log.Debug().Int("users", count).Msg("Database already populated, skipping demo seed")
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash demo password: %w", err)
	}
	user := DemoUser()
	user.PasswordHash = string(hash)

	err = database.WithTransaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`INSERT INTO users (id, email, password_hash, name, currency, locale, tier, avatar_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			user.ID, user.Email, user.PasswordHash, user.Name, string(user.Currency), user.Locale, user.Tier, user.AvatarURL,
		); err != nil {
			return fmt.Errorf("failed to insert demo user: %w", err)
		}

		for _, a := range DemoAccounts() {
			if _, err := tx.Exec(
				`INSERT INTO accounts (id, user_id, name, institution, type, currency, balance, last_updated)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				a.ID, a.UserID, a.Name, a.Institution, string(a.Type), string(a.Currency), a.Balance, a.LastUpdated,
			); err != nil {
				return fmt.Errorf("failed to insert account %s: %w", a.ID, err)
			}
		}

		for _, t := range DemoTransactions() {
			if _, err := tx.Exec(
				`INSERT INTO transactions (id, user_id, account_id, category_id, description, type, amount, currency, date)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.UserID, t.AccountID, t.CategoryID, t.Description, string(t.Type), t.Amount, string(t.Currency), t.Date,
			); err != nil {
				return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
			}
		}

		for _, inv := range DemoInvestments() {
			if _, err := tx.Exec(
				`INSERT INTO investments (id, user_id, symbol, name, type, quantity, current_price, currency)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				inv.ID, inv.UserID, inv.Symbol, inv.Name, string(inv.Type), inv.Quantity, inv.CurrentPrice, string(inv.Currency),
			); err != nil {
				return fmt.Errorf("failed to insert investment %s: %w", inv.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("Seeded demo data")
	return true, nil
}

// DemoUser returns the demo user without a password hash.
func DemoUser() domain.User {
	return domain.User{
		ID:       DemoUserID,
		Email:    "demo@breno.finance",
		Name:     "Breno Demo",
		Currency: domain.CurrencyUSD,
		Locale:   "en-US",
		Tier:     "premium",
	}
}

// DemoAccounts returns the seeded accounts.
func DemoAccounts() []domain.Account {
	bank, invest, card := "Breno Bank", "Breno Invest", "Breno Card"
	return []domain.Account{
		{ID: "acc-1", UserID: DemoUserID, Name: "Checking", Institution: &bank, Type: domain.AccountTypeChecking, Currency: domain.CurrencyUSD, Balance: 8200, LastUpdated: demoDate},
		{ID: "acc-2", UserID: DemoUserID, Name: "High-Yield Savings", Institution: &bank, Type: domain.AccountTypeSavings, Currency: domain.CurrencyUSD, Balance: 18500, LastUpdated: demoDate},
		{ID: "acc-3", UserID: DemoUserID, Name: "Brokerage", Institution: &invest, Type: domain.AccountTypeBrokerage, Currency: domain.CurrencyUSD, Balance: 40250, LastUpdated: demoDate},
		{ID: "acc-4", UserID: DemoUserID, Name: "Credit Card", Institution: &card, Type: domain.AccountTypeCreditCard, Currency: domain.CurrencyUSD, Balance: -950, LastUpdated: demoDate},
	}
}

// DemoTransactions returns the seeded ledger.
func DemoTransactions() []domain.Transaction {
	tx := func(id, account, category, description string, amount float64, date string) domain.Transaction {
		t := domain.Transaction{
			ID: id, UserID: DemoUserID, AccountID: account, CategoryID: category,
			Description: description, Type: domain.TransactionTypeIncome,
			Amount: amount, Currency: domain.CurrencyUSD, Date: date,
		}
		if amount < 0 {
			t.Type = domain.TransactionTypeExpense
		}
		return t
	}
	return []domain.Transaction{
		tx("tx-1", "acc-1", "cat-1", "Salary - Breno Corp", 6200, "2025-01-02"),
		tx("tx-2", "acc-3", "cat-2", "ETF contribution", 850, "2025-01-03"),
		tx("tx-3", "acc-1", "cat-3", "Rent - January", -1800, "2025-01-04"),
		tx("tx-4", "acc-1", "cat-4", "Groceries", -240, "2025-01-05"),
		tx("tx-5", "acc-1", "cat-5", "Ride share", -32, "2025-01-06"),
		tx("tx-6", "acc-1", "cat-6", "Streaming services", -28, "2025-01-06"),
		tx("tx-7", "acc-1", "cat-7", "Electricity bill", -120, "2025-01-06"),
	}
}

// DemoInvestments returns the seeded holdings.
func DemoInvestments() []domain.Investment {
	return []domain.Investment{
		{ID: "inv-1", UserID: DemoUserID, Symbol: "AAPL", Name: "Apple Inc", Type: domain.AssetTypeStock, Quantity: 40, CurrentPrice: 190, Currency: domain.CurrencyUSD},
		{ID: "inv-2", UserID: DemoUserID, Symbol: "VTI", Name: "Vanguard Total Market", Type: domain.AssetTypeETF, Quantity: 25, CurrentPrice: 245, Currency: domain.CurrencyUSD},
		{ID: "inv-3", UserID: DemoUserID, Symbol: "BTC", Name: "Bitcoin", Type: domain.AssetTypeCrypto, Quantity: 0.8, CurrentPrice: 42000, Currency: domain.CurrencyUSD},
	}
}
