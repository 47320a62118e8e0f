// Package server provides the HTTP server and routing for the dashboard API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/brenofinance/dashboard/internal/config"
	"github.com/brenofinance/dashboard/internal/database"
	"github.com/brenofinance/dashboard/internal/di"
	accountshandlers "github.com/brenofinance/dashboard/internal/modules/accounts/handlers"
	dashboardhandlers "github.com/brenofinance/dashboard/internal/modules/dashboard/handlers"
	investmentshandlers "github.com/brenofinance/dashboard/internal/modules/investments/handlers"
	networthhandlers "github.com/brenofinance/dashboard/internal/modules/networth/handlers"
	transactionshandlers "github.com/brenofinance/dashboard/internal/modules/transactions/handlers"
	"github.com/brenofinance/dashboard/internal/modules/users"
	usershandlers "github.com/brenofinance/dashboard/internal/modules/users/handlers"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Config    *config.Config
	Container *di.Container // DI container with all services
	Version   string
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	container      *di.Container
	version        string
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		container: cfg.Container,
		version:   version,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.Container.Scheduler,
			[]*database.DB{cfg.Container.AppDB, cfg.Container.ClientDataDB},
		),
	}

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Price lookups can take up to the fetch timeout per holding batch
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", users.UserIDHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	c := s.container
	log := s.log

	s.router.Group(func(r chi.Router) {
		r.Use(users.Identify(s.cfg.DefaultUserID))

		usershandlers.NewHandler(c.UserRepo, log).RegisterRoutes(r)
		accountshandlers.NewHandler(c.AccountRepo, c.Clock, log).RegisterRoutes(r)
		transactionshandlers.NewHandler(c.TransactionRepo, log).RegisterRoutes(r)
		investmentshandlers.NewHandler(c.InvestmentService, log).RegisterRoutes(r)
		dashboardhandlers.NewHandler(c.DashboardService, log).RegisterRoutes(r)
		networthhandlers.NewHandler(c.NetWorthService, log).RegisterRoutes(r)
	})

	s.router.Route("/system", func(r chi.Router) {
		r.Get("/status", s.systemHandlers.HandleSystemStatus)
		r.Post("/jobs/{name}", s.systemHandlers.HandleTriggerJob)
	})
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
