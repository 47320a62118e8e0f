package di

import (
	"context"
	"testing"
	"time"

	"github.com/brenofinance/dashboard/internal/config"
	"github.com/brenofinance/dashboard/internal/pricing"
	"github.com/brenofinance/dashboard/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:       t.TempDir(),
		Port:          4000,
		DefaultUserID: "user-1",
		Pricing: &config.PricingConfig{
			CacheTTL:     time.Minute,
			FetchTimeout: time.Second,
			// Nothing listens here, so live lookups fail fast
			CoinGeckoBaseURL: "http://127.0.0.1:1",
			StooqBaseURL:     "http://127.0.0.1:1",
		},
		Schedule: &config.ScheduleConfig{
			PriceRefresh:   "0 */15 * * * *",
			CacheCleanup:   "0 0 3 * * *",
			WALCheck:       "0 0 * * * *",
			IntegrityCheck: "0 30 3 * * *",
		},
	}
}

func TestWire(t *testing.T) {
	container, jobs, err := Wire(testConfig(t), logger.Disabled())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	assert.NotNil(t, container.AppDB)
	assert.NotNil(t, container.ClientDataDB)
	assert.NotNil(t, container.UserRepo)
	assert.NotNil(t, container.InvestmentRepo)
	assert.NotNil(t, container.PriceResolver)
	assert.NotNil(t, container.NetWorthService)
	assert.NotNil(t, container.DashboardService)
	assert.NotNil(t, container.InvestmentService)
	assert.NotNil(t, container.Scheduler)

	require.NotNil(t, jobs)
	assert.NotNil(t, jobs.PriceRefresh)
	assert.NotNil(t, jobs.CacheCleanup)
	assert.NotNil(t, jobs.WALCheck)
	assert.NotNil(t, jobs.IntegrityCheck)

	// Empty database: refresh has nothing to do
	assert.NoError(t, container.Scheduler.RunPriceRefreshNow())
	assert.NoError(t, container.Scheduler.RunNow(jobs.CacheCleanup.Name()))
	assert.NoError(t, container.Scheduler.RunNow(jobs.WALCheck.Name()))
	assert.NoError(t, container.Scheduler.RunNow(jobs.IntegrityCheck.Name()))
}

func TestWire_ResolverFallsBackWhenFeedsAreDown(t *testing.T) {
	container, _, err := Wire(testConfig(t), logger.Disabled())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	quote := container.PriceResolver.Resolve(context.Background(), pricing.Request{
		Symbol: "AAPL", Type: "STOCK", Currency: "USD",
	})
	assert.Equal(t, "static", quote.Source)
	assert.Greater(t, quote.CurrentPrice, 0.0)
}

func TestWire_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedule.PriceRefresh = "every now and then"

	_, _, err := Wire(cfg, logger.Disabled())
	assert.Error(t, err)
}

func TestWire_DisabledJob(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedule.WALCheck = ""

	container, _, err := Wire(cfg, logger.Disabled())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	assert.Error(t, container.Scheduler.RunNow("check_wal_checkpoints"))
}
