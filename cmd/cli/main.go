package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Ramax12/ArtiVana-nuxt-filter/config"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/app"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storage"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storefront"
)

var (
	cfgFile     string
	fixtureFile string
	cfg         *config.Config
	logger      *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog CLI - inspect, export and seed the storefront catalog",
	Long: `A CLI for the storefront catalog. It runs the same filter and facet
engine as the HTTP service against the configured catalog source (Postgres or
a YAML fixture), exports filtered listings to XLSX and seeds a database from a
fixture.`,
	SilenceUsage:      true,
	PersistentPreRunE: persistentPreRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&fixtureFile, "fixture", "", "read the catalog from this YAML fixture instead of the configured source")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Commands run with --fixture or --dsn do not need a valid config.
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// persistentPreRun runs before each command and initializes dependencies
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	logging := config.LoggingConfig{Level: "info"}
	if cfg != nil {
		logging = cfg.Logging
	}
	// Logs go to stderr so command output can be piped.
	logger = app.InitLogger(logging, os.Stderr, "")
	return nil
}

// openService loads the catalog and returns a storefront service over it.
func openService(ctx context.Context) (*storefront.Service, func(), error) {
	var (
		source   catalog.Source
		closeFn  = func() {}
		svcCfg   = storefront.Config{NumericSlugs: []string{"power"}}
		storeCfg = catalog.DefaultStoreConfig()
	)

	switch {
	case fixtureFile != "":
		store, err := storage.NewLocalStorage(filepath.Dir(fixtureFile))
		if err != nil {
			return nil, closeFn, err
		}
		source = catalog.NewFixtureSource(store, filepath.Base(fixtureFile))
		if cfg != nil {
			svcCfg = app.ServiceConfig(cfg)
		}
	case cfg != nil:
		var err error
		source, closeFn, err = app.OpenSource(ctx, cfg, logger)
		if err != nil {
			return nil, closeFn, err
		}
		svcCfg = app.ServiceConfig(cfg)
		storeCfg = app.StoreConfig(cfg.Catalog)
	default:
		return nil, closeFn, fmt.Errorf("no catalog source: pass --fixture or provide a valid config")
	}

	store := catalog.NewStore(source, storeCfg, logger)
	if err := store.Load(ctx); err != nil {
		if !store.IsReady() {
			return nil, closeFn, fmt.Errorf("load catalog: %w", err)
		}
		logger.Warn().Err(err).Msg("Catalog loaded partially")
	}
	logger.Debug().Uint64("version", store.Snapshot().Version()).Msg("Catalog loaded")

	return storefront.NewService(store, nil, svcCfg), closeFn, nil
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
