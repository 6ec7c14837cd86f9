// Package app wires configuration into the components shared by the server
// and the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/Ramax12/ArtiVana-nuxt-filter/config"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/database"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storage"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storefront"
)

// InitLogger builds the process logger from the logging config.
func InitLogger(cfg config.LoggingConfig, out io.Writer, service string) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if out == nil {
		out = os.Stdout
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor}
	}

	lc := zerolog.New(out).Level(level).With().Timestamp()
	if service != "" {
		lc = lc.Str("service", service)
	}
	logger := lc.Logger()
	return &logger
}

// StoreConfig maps the catalog section onto the store settings.
func StoreConfig(cfg config.CatalogConfig) catalog.StoreConfig {
	sc := catalog.DefaultStoreConfig()
	if cfg.LoadTimeout > 0 {
		sc.LoadTimeout = cfg.LoadTimeout
	}
	if cfg.LoadConcurrency > 0 {
		sc.LoadConcurrency = cfg.LoadConcurrency
	}
	if cfg.StaleAfter > 0 {
		sc.StaleAfter = cfg.StaleAfter
	}
	return sc
}

// ServiceConfig maps the catalog and facets sections onto the storefront settings.
func ServiceConfig(cfg *config.Config) storefront.Config {
	return storefront.Config{
		PageSize:     cfg.Catalog.PageSize,
		NumericSlugs: cfg.Facets.NumericSlugs,
	}
}

// OpenStorage opens the configured object storage.
func OpenStorage(cfg config.StorageConfig) (*storage.LocalStorage, error) {
	switch cfg.Type {
	case "", "local":
		return storage.NewLocalStorage(cfg.BasePath)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// OpenSource opens the configured catalog source. The returned close
// function releases its resources and is never nil.
func OpenSource(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (catalog.Source, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		if err := database.Connect(ctx, database.PoolConfig{
			URL:             cfg.Database.URL,
			MaxConnections:  cfg.Database.MaxConnections,
			MinConnections:  cfg.Database.MinConnections,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		}); err != nil {
			return nil, noop, fmt.Errorf("connect database: %w", err)
		}
		logger.Info().Msg("Database connected")
		return database.NewCatalogSource(database.Pool()), database.Close, nil

	case config.SourceFixture:
		store, err := OpenStorage(cfg.Storage)
		if err != nil {
			return nil, noop, err
		}
		logger.Info().
			Str("base_path", store.BasePath()).
			Str("fixture", cfg.Catalog.FixturePath).
			Msg("Serving catalog from fixture")
		return catalog.NewFixtureSource(store, cfg.Catalog.FixturePath), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}
