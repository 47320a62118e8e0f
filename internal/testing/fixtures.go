package testing

import (
	"database/sql"
	"testing"

	"github.com/brenofinance/dashboard/internal/domain"
)

// TestUserID owns every fixture record.
const TestUserID = "user-test"

// NewUserFixture returns the fixture user.
func NewUserFixture() domain.User {
	return domain.User{
		ID:           TestUserID,
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Currency:     domain.CurrencyUSD,
		Locale:       "en-US",
		Tier:         "free",
	}
}

// NewAccountFixtures returns a checking account and a credit card.
func NewAccountFixtures() []domain.Account {
	bank := "Test Bank"
	return []domain.Account{
		{ID: "acc-a", UserID: TestUserID, Name: "Checking", Institution: &bank, Type: domain.AccountTypeChecking, Currency: domain.CurrencyUSD, Balance: 1000, LastUpdated: "2025-01-01"},
		{ID: "acc-b", UserID: TestUserID, Name: "Card", Type: domain.AccountTypeCreditCard, Currency: domain.CurrencyUSD, Balance: -200, LastUpdated: "2025-01-01"},
	}
}

// NewTransactionFixtures returns income and expenses on acc-a.
func NewTransactionFixtures() []domain.Transaction {
	return []domain.Transaction{
		{ID: "tx-a", UserID: TestUserID, AccountID: "acc-a", CategoryID: "cat-1", Description: "Salary", Type: domain.TransactionTypeIncome, Amount: 500, Currency: domain.CurrencyUSD, Date: "2025-01-02"},
		{ID: "tx-b", UserID: TestUserID, AccountID: "acc-a", CategoryID: "cat-4", Description: "Groceries", Type: domain.TransactionTypeExpense, Amount: -80, Currency: domain.CurrencyUSD, Date: "2025-01-03"},
		{ID: "tx-c", UserID: TestUserID, AccountID: "acc-a", CategoryID: "cat-5", Description: "Train pass", Type: domain.TransactionTypeExpense, Amount: -20, Currency: domain.CurrencyUSD, Date: "2025-01-04"},
	}
}

// NewInvestmentFixtures returns one stock and one crypto holding.
func NewInvestmentFixtures() []domain.Investment {
	return []domain.Investment{
		{ID: "inv-a", UserID: TestUserID, Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock, Quantity: 2, CurrentPrice: 100, Currency: domain.CurrencyUSD},
		{ID: "inv-b", UserID: TestUserID, Symbol: "BTC", Name: "Bitcoin", Type: domain.AssetTypeCrypto, Quantity: 0.5, CurrentPrice: 40000, Currency: domain.CurrencyUSD},
	}
}

// InsertUser writes a user row.
func InsertUser(t *testing.T, db *sql.DB, u domain.User) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, email, password_hash, name, currency, locale, tier, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, string(u.Currency), u.Locale, u.Tier, u.AvatarURL)
	if err != nil {
		t.Fatalf("Failed to insert user %s: %v", u.ID, err)
	}
}

// InsertAccounts writes account rows.
func InsertAccounts(t *testing.T, db *sql.DB, accounts ...domain.Account) {
	t.Helper()
	for _, a := range accounts {
		_, err := db.Exec(`INSERT INTO accounts (id, user_id, name, institution, type, currency, balance, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.UserID, a.Name, a.Institution, string(a.Type), string(a.Currency), a.Balance, a.LastUpdated)
		if err != nil {
			t.Fatalf("Failed to insert account %s: %v", a.ID, err)
		}
	}
}

// InsertTransactions writes transaction rows without touching balances.
func InsertTransactions(t *testing.T, db *sql.DB, txs ...domain.Transaction) {
	t.Helper()
	for _, tx := range txs {
		_, err := db.Exec(`INSERT INTO transactions (id, user_id, account_id, category_id, description, type, amount, currency, date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, tx.UserID, tx.AccountID, tx.CategoryID, tx.Description, string(tx.Type), tx.Amount, string(tx.Currency), tx.Date)
		if err != nil {
			t.Fatalf("Failed to insert transaction %s: %v", tx.ID, err)
		}
	}
}

// InsertInvestments writes investment rows.
func InsertInvestments(t *testing.T, db *sql.DB, investments ...domain.Investment) {
	t.Helper()
	for _, inv := range investments {
		_, err := db.Exec(`INSERT INTO investments (id, user_id, symbol, name, type, quantity, current_price, currency)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			inv.ID, inv.UserID, inv.Symbol, inv.Name, string(inv.Type), inv.Quantity, inv.CurrentPrice, string(inv.Currency))
		if err != nil {
			t.Fatalf("Failed to insert investment %s: %v", inv.ID, err)
		}
	}
}

// SeedFixtures inserts the fixture user with all fixture records.
func SeedFixtures(t *testing.T, db *sql.DB) {
	t.Helper()
	InsertUser(t, db, NewUserFixture())
	InsertAccounts(t, db, NewAccountFixtures()...)
	InsertTransactions(t, db, NewTransactionFixtures()...)
	InsertInvestments(t, db, NewInvestmentFixtures()...)
}
