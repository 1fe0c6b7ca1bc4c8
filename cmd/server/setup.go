package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/config"
	"github.com/warp/dimensional/customary"
	"github.com/warp/dimensional/factory"
	"github.com/warp/dimensional/store/sqlite"
)

// env is everything a command needs. Close releases the store.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *sqlite.Store
	registry *algebra.Registry
}

func (e *env) Close() error {
	return e.store.Close()
}

// setup loads config, opens the store and builds the sealed registry.
func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return nil, err
	}
	if portFlag != 0 {
		cfg.Server.Port = portFlag
	}
	if dbFlag != "" {
		cfg.SQLite = dbFlag
	}
	logger := cfg.Logging.NewLogger(os.Stderr)

	store, err := sqlite.New(cfg.SQLite)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	r, err := buildRegistry(ctx, cfg, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, store: store, registry: r}, nil
}

// buildRegistry declares the catalogs selected by cfg into a fresh registry
// and seals it.
func buildRegistry(ctx context.Context, cfg *config.Config, store algebra.CatalogStore, logger *slog.Logger) (*algebra.Registry, error) {
	r := algebra.NewRegistry()
	if err := declareCatalogs(ctx, r, cfg, store, logger, ""); err != nil {
		return nil, err
	}

	r.Seal()
	logger.Debug("registry sealed",
		"units", len(r.BaseUnits()),
		"systems", len(r.Systems()),
		"rules", len(r.Rules()),
	)
	return r, nil
}

// declareCatalogs applies built-in catalogs, catalog files and stored
// catalogs, in that order. A stored catalog named skip is left out.
func declareCatalogs(ctx context.Context, r *algebra.Registry, cfg *config.Config, store algebra.CatalogStore, logger *slog.Logger, skip string) error {
	if cfg.Catalogs.Builtin {
		if err := customary.Register(r); err != nil {
			return fmt.Errorf("built-in catalogs: %w", err)
		}
	}

	loader := factory.NewLoader(r, logger)
	for _, path := range cfg.Catalogs.Files {
		if _, err := loader.LoadFile(path); err != nil {
			return err
		}
	}
	if !cfg.Catalogs.Stored {
		return nil
	}

	if skip == "" {
		n, err := loader.LoadStore(ctx, store)
		if err != nil {
			return err
		}
		logger.Debug("stored catalogs applied", "count", n)
		return nil
	}
	recs, err := store.ListCatalogs(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if rec.Name == skip {
			continue
		}
		if _, err := loader.LoadRecord(rec); err != nil {
			return err
		}
	}
	return nil
}
