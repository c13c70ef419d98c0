// Package setup wires configuration, storage and the graph engine together
// for the binaries.
package setup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"trailhead/internal/adapters/postgres"
	"trailhead/internal/adapters/sqlite"
	"trailhead/internal/adapters/sqlstore"
	"trailhead/internal/config"
	"trailhead/internal/graph"
)

// App holds the opened store and the services built on it
type App struct {
	Store    *sqlstore.Store
	Contexts *sqlstore.ContextStore
	Graph    *graph.Engine
	Log      *zap.Logger
}

// Open opens the configured store, builds the engine and makes sure the
// category anchors exist.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	contexts := sqlstore.NewContextStore(store)
	engine := graph.New(store, contexts, graph.WithLogger(log.Named("graph")))

	if err := engine.EnsureAnchors(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create anchors: %w", err)
	}

	return &App{Store: store, Contexts: contexts, Graph: engine, Log: log}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sqlstore.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		log.Debug("opening sqlite store", zap.String("path", cfg.DBPath))
		return sqlite.Open(ctx, cfg.DBPath, log.Named("sqlite"))
	case config.DriverPostgres:
		log.Debug("opening postgres store")
		return postgres.Open(ctx, cfg.DatabaseURL, log.Named("postgres"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}
