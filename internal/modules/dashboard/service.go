package dashboard

import (
	"context"
	"fmt"
	"math"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultCashflowDays is the cash-flow lookback when none is given.
const DefaultCashflowDays = 30

// AccountLister is satisfied by *accounts.Repository.
type AccountLister interface {
	ListByUser(userID string) ([]domain.Account, error)
}

// TransactionLister is satisfied by *transactions.Repository.
type TransactionLister interface {
	ListByUser(userID string) ([]domain.Transaction, error)
}

// InvestmentLister is satisfied by *investments.Repository.
type InvestmentLister interface {
	ListByUser(userID string) ([]domain.Investment, error)
}

// NetWorthTrend is satisfied by *networth.Service.
type NetWorthTrend interface {
	ChangePercent(ctx context.Context, userID string) (float64, error)
}

// KPIs are the headline dashboard figures.
type KPIs struct {
	TotalBalance      float64         `json:"totalBalance"`
	InvestedAmount    float64         `json:"investedAmount"`
	MonthlyExpenses   float64         `json:"monthlyExpenses"`
	NetWorthChangePct float64         `json:"netWorthChangePct"`
	Currency          domain.Currency `json:"currency"`
}

// Cashflow sums income and expenses over a trailing window.
type Cashflow struct {
	Income   float64         `json:"income"`
	Expense  float64         `json:"expense"`
	Net      float64         `json:"net"`
	Currency domain.Currency `json:"currency"`
	Days     int             `json:"days"`
}

// BreakdownEntry is the absolute expense total of one category.
type BreakdownEntry struct {
	CategoryID string  `json:"categoryId"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
}

// Service computes dashboard figures
type Service struct {
	accounts     AccountLister
	transactions TransactionLister
	investments  InvestmentLister
	trend        NetWorthTrend
	clock        domain.Clock
	log          zerolog.Logger
}

// NewService creates a new dashboard service
func NewService(
	accounts AccountLister,
	transactions TransactionLister,
	investments InvestmentLister,
	trend NetWorthTrend,
	clock domain.Clock,
	log zerolog.Logger,
) *Service {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		investments:  investments,
		trend:        trend,
		clock:        clock,
		log:          log.With().Str("service", "dashboard").Logger(),
	}
}

// KPIs computes balances, stored holding value, total expenses and the
// net-worth change over the default window.
func (s *Service) KPIs(ctx context.Context, userID string) (KPIs, error) {
	accounts, err := s.accounts.ListByUser(userID)
	if err != nil {
		return KPIs{}, fmt.Errorf("failed to load accounts: %w", err)
	}
	txs, err := s.transactions.ListByUser(userID)
	if err != nil {
		return KPIs{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	holdings, err := s.investments.ListByUser(userID)
	if err != nil {
		return KPIs{}, fmt.Errorf("failed to load investments: %w", err)
	}

	balance := decimal.Zero
	for _, a := range accounts {
		balance = balance.Add(decimal.NewFromFloat(a.Balance))
	}

	invested := decimal.Zero
	for _, inv := range holdings {
		invested = invested.Add(decimal.NewFromFloat(inv.Quantity).Mul(decimal.NewFromFloat(inv.CurrentPrice)))
	}

	expenses := decimal.Zero
	for _, tx := range txs {
		if tx.Amount < 0 {
			expenses = expenses.Add(decimal.NewFromFloat(tx.Amount))
		}
	}

	changePct, err := s.trend.ChangePercent(ctx, userID)
	if err != nil {
		return KPIs{}, fmt.Errorf("failed to compute net worth change: %w", err)
	}

	currency := domain.DefaultCurrency
	if len(accounts) > 0 {
		currency = accounts[0].Currency
	}

	return KPIs{
		TotalBalance:      balance.Round(2).InexactFloat64(),
		InvestedAmount:    invested.Round(2).InexactFloat64(),
		MonthlyExpenses:   expenses.Abs().Round(2).InexactFloat64(),
		NetWorthChangePct: domain.Round2(changePct),
		Currency:          currency,
	}, nil
}

// Cashflow sums transactions dated on or after today - days.
func (s *Service) Cashflow(userID string, days int) (Cashflow, error) {
	if days < 0 {
		days = DefaultCashflowDays
	}

	txs, err := s.transactions.ListByUser(userID)
	if err != nil {
		return Cashflow{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	since := domain.FormatDate(domain.DayAnchor(s.clock()).AddDate(0, 0, -days))

	income, expense := decimal.Zero, decimal.Zero
	var currency domain.Currency
	for _, tx := range txs {
		if tx.Date < since {
			continue
		}
		if currency == "" {
			currency = tx.Currency
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Amount > 0 {
			income = income.Add(amount)
		} else if tx.Amount < 0 {
			expense = expense.Add(amount.Abs())
		}
	}

	if currency == "" {
		currency, err = s.firstAccountCurrency(userID)
		if err != nil {
			return Cashflow{}, err
		}
	}

	return Cashflow{
		Income:   income.Round(2).InexactFloat64(),
		Expense:  expense.Round(2).InexactFloat64(),
		Net:      income.Sub(expense).Round(2).InexactFloat64(),
		Currency: currency,
		Days:     days,
	}, nil
}

// ExpenseBreakdown totals expenses per category, in order of first
// appearance. from and to apply only when both are set.
func (s *Service) ExpenseBreakdown(userID, from, to string) ([]BreakdownEntry, error) {
	txs, err := s.transactions.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	filterDates := from != "" && to != ""

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		if filterDates && (tx.Date < from || tx.Date > to) {
			continue
		}
		if _, seen := totals[tx.CategoryID]; !seen {
			order = append(order, tx.CategoryID)
		}
		totals[tx.CategoryID] = totals[tx.CategoryID].Add(decimal.NewFromFloat(math.Abs(tx.Amount)))
	}

	entries := make([]BreakdownEntry, 0, len(order))
	for _, id := range order {
		entry := BreakdownEntry{
			CategoryID: id,
			Label:      OtherLabel,
			Value:      totals[id].Round(2).InexactFloat64(),
			Color:      OtherColor,
		}
		if c, ok := categoryByID(id); ok {
			entry.Label = c.Name
			entry.Color = c.Color
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Service) firstAccountCurrency(userID string) (domain.Currency, error) {
	accounts, err := s.accounts.ListByUser(userID)
	if err != nil {
		return "", fmt.Errorf("failed to load accounts: %w", err)
	}
	if len(accounts) > 0 {
		return accounts[0].Currency, nil
	}
	return domain.DefaultCurrency, nil
}
