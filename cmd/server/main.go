package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/piensaperu/api/internal/config"
	"github.com/piensaperu/api/internal/logging"
	"github.com/piensaperu/api/internal/metrics"
	"github.com/piensaperu/api/internal/middleware"
	"github.com/piensaperu/api/internal/router"
	"github.com/piensaperu/api/internal/service"
	"github.com/piensaperu/api/internal/store"
	"github.com/piensaperu/api/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger, logCloser := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	// Initialize database connection
	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Database, logger)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = st.Close() }()

	slog.Info("connected to database", slog.String("driver", cfg.Database.Driver))

	// Token validation guards the admin routes
	var validator middleware.TokenValidator
	if cfg.Auth.Enabled {
		jwtService, err := jwt.NewService(jwt.Config{
			PublicKeyPath:  cfg.Auth.PublicKeyPath,
			Issuer:         cfg.Auth.Issuer,
			ExpirationMins: cfg.Auth.ExpirationMins,
		})
		if err != nil {
			slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
			os.Exit(1)
		}
		validator = jwtService
	} else {
		slog.Warn("auth disabled, admin routes are open")
	}

	m := metrics.New()

	// Initialize services
	calificationService := service.NewCalificationService(service.CalificationServiceConfig{
		Repo:       st.Califications,
		UnitOfWork: st.Scope,
		Logger:     logger,
		Metrics:    m,
	})
	militantService := service.NewMilitantService(service.MilitantServiceConfig{
		Repo:       st.Militants,
		UnitOfWork: st.Scope,
		Logger:     logger,
		Metrics:    m,
	})
	partyService := service.NewPoliticalPartyService(service.PoliticalPartyServiceConfig{
		Repo:       st.Parties,
		UnitOfWork: st.Scope,
		Logger:     logger,
		Metrics:    m,
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		PerMinute: cfg.Server.RateLimitPerMinute,
		Burst:     cfg.Server.RateLimitBurst,
	})
	defer rateLimiter.Stop()

	// Register routes and global middleware
	wrapped := router.New(router.Config{
		Califications:  calificationService,
		Militants:      militantService,
		Parties:        partyService,
		Ping:           st.Ping,
		Scope:          st.Scope,
		Metrics:        m,
		MetricsEnabled: cfg.Server.MetricsEnabled,
		Validator:      validator,
		RateLimiter:    rateLimiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
