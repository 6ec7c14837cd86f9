package sweepers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
)

// Loader reloads the catalog.
type Loader interface {
	Load(ctx context.Context) error
}

// CatalogRefresher periodically reloads the catalog snapshot so that
// storefront reads pick up upstream changes without a restart.
type CatalogRefresher struct {
	loader   Loader
	logger   *zerolog.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewCatalogRefresher creates a refresher that calls loader.Load every interval.
func NewCatalogRefresher(loader Loader, logger *zerolog.Logger, interval time.Duration) *CatalogRefresher {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	l := logger.With().Str("component", "catalog_refresher").Logger()
	return &CatalogRefresher{
		loader:   loader,
		logger:   &l,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start runs the refresh loop until ctx is cancelled or Stop is called.
// A non-positive interval disables the loop.
func (r *CatalogRefresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info().Msg("Catalog refresher disabled")
		return
	}
	r.logger.Info().
		Dur("interval", r.interval).
		Msg("Starting catalog refresher")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Catalog refresher stopping (context cancelled)")
			return
		case <-r.stopChan:
			r.logger.Info().Msg("Catalog refresher stopping (stop signal)")
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Stop signals the refresher to stop. Safe to call more than once.
func (r *CatalogRefresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopChan) })
}

// Refresh performs one reload. Failures are logged; the store keeps serving
// the previous data for every entity that failed.
func (r *CatalogRefresher) Refresh(ctx context.Context) {
	r.logger.Debug().Msg("Running scheduled catalog refresh")

	err := r.loader.Load(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, catalog.ErrCircuitOpen):
		r.logger.Warn().Msg("Scheduled catalog refresh skipped, circuit open")
	default:
		var failed []string
		for _, e := range catalog.FailedEntities(err) {
			failed = append(failed, e.String())
		}
		r.logger.Error().
			Err(err).
			Strs("failed_entities", failed).
			Msg("Scheduled catalog refresh failed")
	}
}
