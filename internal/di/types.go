/**
 * Package di provides dependency injection type definitions.
 *
 * The Container holds every long-lived dependency of the service and is
 * handed to the server, which builds its HTTP handlers from it.
 */
package di

import (
	"github.com/brenofinance/dashboard/internal/clientdata"
	"github.com/brenofinance/dashboard/internal/clients/coingecko"
	"github.com/brenofinance/dashboard/internal/clients/stooq"
	"github.com/brenofinance/dashboard/internal/database"
	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/dashboard"
	"github.com/brenofinance/dashboard/internal/modules/investments"
	"github.com/brenofinance/dashboard/internal/modules/networth"
	"github.com/brenofinance/dashboard/internal/modules/transactions"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/brenofinance/dashboard/internal/pricing"
	"github.com/brenofinance/dashboard/internal/scheduler"
)

// Container holds all dependencies for the application.
type Container struct {
	// Databases
	AppDB        *database.DB // users, accounts, transactions, investments
	ClientDataDB *database.DB // persisted quote cache

	Clock domain.Clock

	// Repositories
	UserRepo        *users.Repository
	AccountRepo     *accounts.Repository
	TransactionRepo *transactions.Repository
	InvestmentRepo  *investments.Repository
	ClientDataRepo  *clientdata.Repository

	// Price feeds
	CoinGeckoClient *coingecko.Client
	StooqClient     *stooq.Client
	PriceCache      *pricing.PriceCache
	PriceResolver   *pricing.Resolver

	// Services
	NetWorthService   *networth.Service
	DashboardService  *dashboard.Service
	InvestmentService *investments.Service

	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered background jobs so they can be run on
// demand.
type JobInstances struct {
	PriceRefresh   *scheduler.PriceRefreshJob
	CacheCleanup   *clientdata.CleanupJob
	WALCheck       *scheduler.CheckWALCheckpointsJob
	IntegrityCheck *scheduler.CheckCoreDatabasesJob
}

// Close releases both databases. Safe to call on a partially built
// container.
func (c *Container) Close() {
	if c.AppDB != nil {
		_ = c.AppDB.Close()
	}
	if c.ClientDataDB != nil {
		_ = c.ClientDataDB.Close()
	}
}
