package di

import (
	"fmt"

	"github.com/brenofinance/dashboard/internal/clientdata"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/investments"
	"github.com/brenofinance/dashboard/internal/modules/transactions"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/rs/zerolog"
)

// InitializeRepositories builds every repository over the open databases
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.AppDB == nil || container.ClientDataDB == nil {
		return fmt.Errorf("databases must be initialized before repositories")
	}

	appConn := container.AppDB.Conn()
	container.UserRepo = users.NewRepository(appConn, log)
	container.AccountRepo = accounts.NewRepository(appConn, log)
	container.TransactionRepo = transactions.NewRepository(appConn, log)
	container.InvestmentRepo = investments.NewRepository(appConn, log)

	container.ClientDataRepo = clientdata.NewRepository(container.ClientDataDB.Conn())

	log.Debug().Msg("Repositories initialized")
	return nil
}
