package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/investments"
	"github.com/brenofinance/dashboard/internal/modules/transactions"
	testingpkg "github.com/brenofinance/dashboard/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTrend struct {
	pct float64
	err error
}

func (f fixedTrend) ChangePercent(context.Context, string) (float64, error) {
	return f.pct, f.err
}

func fixedClock() time.Time {
	return time.Date(2025, time.January, 10, 8, 30, 0, 0, time.UTC)
}

func newTestService(t *testing.T, trend NetWorthTrend) (*Service, *transactions.Repository) {
	t.Helper()
	db, _ := testingpkg.NewTestDB(t, "app")
	testingpkg.SeedFixtures(t, db.Conn())
	log := zerolog.Nop()

	txRepo := transactions.NewRepository(db.Conn(), log)
	return NewService(
		accounts.NewRepository(db.Conn(), log),
		txRepo,
		investments.NewRepository(db.Conn(), log),
		trend,
		fixedClock,
		log,
	), txRepo
}

func TestService_KPIs(t *testing.T) {
	service, _ := newTestService(t, fixedTrend{pct: 12.5})

	kpis, err := service.KPIs(context.Background(), testingpkg.TestUserID)
	require.NoError(t, err)

	assert.Equal(t, 800.0, kpis.TotalBalance)
	assert.Equal(t, 20200.0, kpis.InvestedAmount)
	assert.Equal(t, 100.0, kpis.MonthlyExpenses)
	assert.Equal(t, 12.5, kpis.NetWorthChangePct)
	assert.Equal(t, domain.CurrencyUSD, kpis.Currency)
}

func TestService_KPIs_TrendError(t *testing.T) {
	service, _ := newTestService(t, fixedTrend{err: errors.New("boom")})

	_, err := service.KPIs(context.Background(), testingpkg.TestUserID)
	assert.Error(t, err)
}

func TestService_KPIs_UnknownUserDefaultsCurrency(t *testing.T) {
	service, _ := newTestService(t, fixedTrend{})

	kpis, err := service.KPIs(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCurrency, kpis.Currency)
	assert.Zero(t, kpis.TotalBalance)
	assert.Zero(t, kpis.MonthlyExpenses)
}

func TestService_Cashflow(t *testing.T) {
	service, _ := newTestService(t, fixedTrend{})

	t.Run("whole window", func(t *testing.T) {
		flow, err := service.Cashflow(testingpkg.TestUserID, 30)
		require.NoError(t, err)
		assert.Equal(t, 500.0, flow.Income)
		assert.Equal(t, 100.0, flow.Expense)
		assert.Equal(t, 400.0, flow.Net)
		assert.Equal(t, domain.CurrencyUSD, flow.Currency)
		assert.Equal(t, 30, flow.Days)
	})

	t.Run("since is inclusive", func(t *testing.T) {
		// since = 2025-01-03
		flow, err := service.Cashflow(testingpkg.TestUserID, 7)
		require.NoError(t, err)
		assert.Equal(t, 0.0, flow.Income)
		assert.Equal(t, 100.0, flow.Expense)
		assert.Equal(t, -100.0, flow.Net)
	})

	t.Run("empty window falls back to account currency", func(t *testing.T) {
		flow, err := service.Cashflow(testingpkg.TestUserID, 0)
		require.NoError(t, err)
		assert.Zero(t, flow.Income)
		assert.Zero(t, flow.Expense)
		assert.Equal(t, domain.CurrencyUSD, flow.Currency)
	})

	t.Run("negative days uses default", func(t *testing.T) {
		flow, err := service.Cashflow(testingpkg.TestUserID, -5)
		require.NoError(t, err)
		assert.Equal(t, DefaultCashflowDays, flow.Days)
	})
}

func TestService_ExpenseBreakdown(t *testing.T) {
	service, txRepo := newTestService(t, fixedTrend{})

	t.Run("all expenses in order of appearance", func(t *testing.T) {
		entries, err := service.ExpenseBreakdown(testingpkg.TestUserID, "", "")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, BreakdownEntry{CategoryID: "cat-4", Label: "Food", Value: 80, Color: "#f59e0b"}, entries[0])
		assert.Equal(t, BreakdownEntry{CategoryID: "cat-5", Label: "Transport", Value: 20, Color: "#6366f1"}, entries[1])
	})

	t.Run("range applies only when both bounds are set", func(t *testing.T) {
		entries, err := service.ExpenseBreakdown(testingpkg.TestUserID, "2025-01-04", "2025-01-31")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "cat-5", entries[0].CategoryID)

		entries, err = service.ExpenseBreakdown(testingpkg.TestUserID, "2025-01-04", "")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("unknown category is labelled other", func(t *testing.T) {
		err := txRepo.Create(&domain.Transaction{
			ID: "tx-x", UserID: testingpkg.TestUserID, AccountID: "acc-a", CategoryID: "cat-unknown",
			Description: "Mystery", Type: domain.TransactionTypeExpense, Amount: -15.5, Date: "2025-01-05",
		})
		require.NoError(t, err)

		entries, err := service.ExpenseBreakdown(testingpkg.TestUserID, "", "")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, BreakdownEntry{CategoryID: "cat-unknown", Label: OtherLabel, Value: 15.5, Color: OtherColor}, entries[2])
	})
}

func TestCategories(t *testing.T) {
	list := Categories()
	require.Len(t, list, 7)
	assert.Equal(t, "cat-1", list[0].ID)
	assert.Equal(t, domain.TransactionTypeIncome, list[0].Type)

	list[0].Name = "changed"
	assert.Equal(t, "Salary", Categories()[0].Name)
}
