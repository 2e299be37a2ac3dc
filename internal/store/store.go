// Package store bundles the repositories and unit of work scope of the
// configured persistence backend.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piensaperu/api/internal/config"
	"github.com/piensaperu/api/internal/database"
	pgdb "github.com/piensaperu/api/internal/database/postgres"
	"github.com/piensaperu/api/internal/model"
	"github.com/piensaperu/api/internal/repository"
	pgrepo "github.com/piensaperu/api/internal/repository/postgres"
	"github.com/piensaperu/api/internal/service"
)

// Scope starts and completes the unit of work of one request
type Scope interface {
	Begin(ctx context.Context) context.Context
	Complete(ctx context.Context) error
}

// Store is one backend's repositories sharing a unit of work scope
type Store struct {
	Califications service.CalificationRepository
	Militants     service.Repository[model.Militant]
	Parties       service.Repository[model.PoliticalParty]
	Scope         Scope
	Ping          func(ctx context.Context) error
	close         func() error
}

// Close releases the underlying connection
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the backend named by cfg.Driver and, when AutoMigrate is
// set, brings its schema up to date
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverSurrealDB:
		return openSurreal(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openSurreal(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Host,
		Port:      cfg.Port,
		User:      cfg.User,
		Password:  cfg.Password,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
	}, logger)
	if err := db.Connect(ctx); err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := database.ApplySchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
		logger.Info("schema applied", slog.String("driver", cfg.Driver))
	}

	s := NewSurreal(db, logger)
	s.close = db.Close
	return s, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	db, err := pgdb.Open(ctx, pgdb.Config{
		DSN:             cfg.PostgresDSN,
		MaxConns:        int32(cfg.MaxConns),
		MaxConnLifetime: cfg.MaxConnLifetime,
	})
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := pgdb.Migrate(db.DB); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.String("driver", cfg.Driver))
	}

	s := NewPostgres(db)
	s.close = db.Close
	return s, nil
}

// NewSurreal wraps an open SurrealDB connection. Closing the store leaves
// db open.
func NewSurreal(db *database.SurrealDB, logger *slog.Logger) *Store {
	return &Store{
		Califications: repository.NewCalificationRepository(db),
		Militants:     repository.NewMilitantRepository(db),
		Parties:       repository.NewPoliticalPartyRepository(db),
		Scope:         database.NewScope(db, logger),
		Ping:          db.Ping,
	}
}

// NewPostgres wraps an open PostgreSQL pool. Closing the store leaves db open.
func NewPostgres(db *pgdb.DB) *Store {
	return &Store{
		Califications: pgrepo.NewCalificationRepository(db.DB),
		Militants:     pgrepo.NewMilitantRepository(db.DB),
		Parties:       pgrepo.NewPoliticalPartyRepository(db.DB),
		Scope:         pgdb.NewScope(db.DB),
		Ping:          db.PingContext,
	}
}
