// Package domain provides core domain models and types.
package domain

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
)

// DefaultCurrency is reported when neither accounts nor holdings name one.
const DefaultCurrency = CurrencyUSD

// IsSupported reports whether the currency can be used for new records.
func (c Currency) IsSupported() bool {
	return c == CurrencyUSD || c == CurrencyCAD
}

// AccountType classifies an account
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeBrokerage  AccountType = "BROKERAGE"
	AccountTypeWallet     AccountType = "WALLET"
)

// IsValid reports whether the account type is known.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard, AccountTypeBrokerage, AccountTypeWallet:
		return true
	}
	return false
}

// TransactionType is INCOME or EXPENSE. The sign of Transaction.Amount follows it.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid reports whether the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// AssetType classifies an investment holding
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeETF    AssetType = "ETF"
	AssetTypeCrypto AssetType = "CRYPTO"
	AssetTypeFund   AssetType = "FUND"
	AssetTypeBond   AssetType = "BOND"
)

// IsValid reports whether the asset type is known.
func (t AssetType) IsValid() bool {
	switch t {
	case AssetTypeStock, AssetTypeETF, AssetTypeCrypto, AssetTypeFund, AssetTypeBond:
		return true
	}
	return false
}

// User is the owner of accounts, transactions and holdings.
// PasswordHash is never serialised.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Currency     Currency `json:"currency"`
	Locale       string   `json:"locale"`
	Tier         string   `json:"tier"`
	AvatarURL    *string  `json:"avatarUrl,omitempty"`
}

// Account holds the present-day balance. Past balances are not stored.
type Account struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Institution *string     `json:"institution,omitempty"`
	Type        AccountType `json:"type"`
	Currency    Currency    `json:"currency"`
	Balance     float64     `json:"balance"`
	LastUpdated string      `json:"lastUpdated"` // YYYY-MM-DD
}

// Transaction is an immutable ledger entry. Positive amounts are income.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	AccountID   string          `json:"accountId"`
	CategoryID  string          `json:"categoryId"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Currency    Currency        `json:"currency"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

// Investment is a stored holding. CurrentPrice is the last price written
// by a trade or by the user, not necessarily a live quote.
type Investment struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Type         AssetType `json:"type"`
	Quantity     float64   `json:"quantity"`
	CurrentPrice float64   `json:"currentPrice"`
	Currency     Currency  `json:"currency"`
}

// PricePoint is one sample of a price history.
type PricePoint struct {
	Date  string  `json:"date" msgpack:"date"` // YYYY-MM-DD
	Value float64 `json:"value" msgpack:"value"`
}

// PricedHolding is a holding with a resolved current price and a sparse,
// not necessarily sorted, price history.
type PricedHolding struct {
	Symbol       string       `json:"symbol"`
	Quantity     float64      `json:"quantity"`
	Currency     Currency     `json:"currency"`
	CurrentPrice float64      `json:"currentPrice"`
	History      []PricePoint `json:"history"`
}

// Category groups transactions for the expense breakdown.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Color string          `json:"color"`
}
