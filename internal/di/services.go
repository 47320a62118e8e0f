package di

import (
	"fmt"

	"github.com/brenofinance/dashboard/internal/clients/coingecko"
	"github.com/brenofinance/dashboard/internal/clients/stooq"
	"github.com/brenofinance/dashboard/internal/config"
	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/dashboard"
	"github.com/brenofinance/dashboard/internal/modules/investments"
	"github.com/brenofinance/dashboard/internal/modules/networth"
	"github.com/brenofinance/dashboard/internal/pricing"
	"github.com/rs/zerolog"
)

// InitializeServices builds the price feeds, the resolver chain and the
// domain services
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container.AccountRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}
	if container.Clock == nil {
		container.Clock = domain.SystemClock
	}
	clock := container.Clock
	timeout := cfg.Pricing.FetchTimeout

	// Price feeds
	container.CoinGeckoClient = coingecko.NewClient(cfg.Pricing.CoinGeckoBaseURL, timeout, log)
	container.StooqClient = stooq.NewClient(cfg.Pricing.StooqBaseURL, timeout, log)

	container.PriceCache = pricing.NewPriceCache(cfg.Pricing.CacheTTL, container.ClientDataRepo, clock, log)
	sources := []pricing.Source{
		pricing.NewCoinGeckoSource(container.CoinGeckoClient),
		pricing.NewStooqSource(container.StooqClient),
	}
	container.PriceResolver = pricing.NewResolver(
		pricing.DefaultChain(container.PriceCache, sources, timeout, clock, log),
		clock,
		log,
	)

	// Domain services
	container.NetWorthService = networth.NewService(
		container.AccountRepo,
		container.TransactionRepo,
		container.InvestmentRepo,
		container.PriceResolver,
		clock,
		log,
	)
	container.DashboardService = dashboard.NewService(
		container.AccountRepo,
		container.TransactionRepo,
		container.InvestmentRepo,
		container.NetWorthService,
		clock,
		log,
	)
	container.InvestmentService = investments.NewService(
		container.AppDB.Conn(),
		container.InvestmentRepo,
		container.PriceResolver,
		clock,
		log,
	)

	log.Debug().Msg("Services initialized")
	return nil
}
