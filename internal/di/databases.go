package di

import (
	"fmt"

	"github.com/brenofinance/dashboard/internal/config"
	"github.com/brenofinance/dashboard/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens both databases and applies their schemas
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// 1. app.db - users and their financial records
	appDB, err := database.New(database.Config{
		Path:    cfg.AppDBPath(),
		Profile: database.ProfileStandard,
		Name:    database.NameApp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app database: %w", err)
	}
	container.AppDB = appDB

	// 2. client_data.db - quote cache, safe to lose
	clientDataDB, err := database.New(database.Config{
		Path:    cfg.ClientDataDBPath(),
		Profile: database.ProfileCache,
		Name:    database.NameClientData,
	})
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to initialize client data database: %w", err)
	}
	container.ClientDataDB = clientDataDB

	for _, db := range []*database.DB{appDB, clientDataDB} {
		if err := db.Migrate(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to migrate %s database: %w", db.Name(), err)
		}
	}

	log.Info().
		Str("app", appDB.Path()).
		Str("client_data", clientDataDB.Path()).
		Msg("Databases initialized")

	return container, nil
}
