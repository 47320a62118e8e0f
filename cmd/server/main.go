// Package main is the entry point for the finance dashboard API.
//
// Startup order:
//  1. Load configuration and build the logger
//  2. Wire databases, repositories, price feeds and services
//  3. Seed demo data into an empty database (optional)
//  4. Start the HTTP server and the background scheduler
//  5. Wait for SIGINT/SIGTERM and shut down gracefully
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brenofinance/dashboard/internal/config"
	"github.com/brenofinance/dashboard/internal/di"
	"github.com/brenofinance/dashboard/internal/seed"
	"github.com/brenofinance/dashboard/internal/server"
	"github.com/brenofinance/dashboard/pkg/logger"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting dashboard API")

	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	if cfg.SeedDemoData {
		seeded, err := seed.New(container.AppDB.Conn(), log).Run()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		if seeded {
			log.Info().Str("user_id", seed.DemoUserID).Msg("Demo data seeded")
		}
	}

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Container: container,
		Version:   getEnv("VERSION", "dev"),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	container.Scheduler.Start()

	// Warm the price cache in the background so the first dashboard load
	// does not wait on the feeds
	go func() {
		if err := jobs.PriceRefresh.Run(); err != nil {
			log.Warn().Err(err).Msg("Initial price refresh failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	container.Scheduler.Stop()

	log.Info().Msg("Server stopped")
}
