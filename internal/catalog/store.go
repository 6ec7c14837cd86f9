package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/pkg/requestid"
)

// Load outcomes reported in logs and metrics.
const (
	OutcomeOK       = "ok"
	OutcomePartial  = "partial"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// StoreConfig holds the Store configuration.
type StoreConfig struct {
	// LoadTimeout bounds a whole Load. Zero means no timeout.
	LoadTimeout time.Duration
	// LoadConcurrency bounds the number of concurrent entity fetches.
	LoadConcurrency int
	// StaleAfter marks the catalog stale when any entity is older. Zero disables.
	StaleAfter time.Duration
	// CircuitBreaker configures the breaker guarding the source.
	CircuitBreaker *CircuitBreakerConfig
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		LoadTimeout:     30 * time.Second,
		LoadConcurrency: int(entityCount),
		StaleAfter:      30 * time.Minute,
		CircuitBreaker:  DefaultCircuitBreakerConfig(),
	}
}

// Store holds the current catalog snapshot and refreshes it from a Source.
// Snapshot never blocks and never returns nil.
type Store struct {
	source  Source
	config  StoreConfig
	current atomic.Pointer[Snapshot]
	loads   singleflight.Group

	circuitBreaker *CircuitBreaker
	warmupGate     *WarmupGate
	metrics        *MetricsRecorder
	logger         *zerolog.Logger

	mu        sync.RWMutex
	lastError error
	lastLoad  time.Time
}

// NewStore creates a store serving an empty snapshot until the first Load.
func NewStore(source Source, config StoreConfig, logger *zerolog.Logger) *Store {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if config.LoadConcurrency <= 0 {
		config.LoadConcurrency = int(entityCount)
	}
	storeLogger := logger.With().Str("component", "catalog_store").Logger()
	metrics := NewMetricsRecorder()

	s := &Store{
		source:         source,
		config:         config,
		circuitBreaker: NewCircuitBreaker("catalog_source", config.CircuitBreaker, metrics, &storeLogger),
		warmupGate:     NewWarmupGate(&storeLogger),
		metrics:        metrics,
		logger:         &storeLogger,
	}
	s.current.Store(EmptySnapshot())
	return s
}

// Snapshot returns the published snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// fetched collects the per-entity results of one Load.
type fetched struct {
	products       []Product
	categories     []Category
	brands         []Brand
	generalDefs    []CharacteristicDef
	generalOptions []CharacteristicOption
	extraDefs      []CharacteristicDef
	extraOptions   []CharacteristicOption
	errs           [entityCount]error
}

// Load fetches every entity concurrently, waits for all of them, and
// publishes a snapshot combining the fresh entities with the previous
// values of any entity whose fetch failed. The returned error joins one
// *UpstreamFetchError per failed entity. Concurrent calls share one load.
func (s *Store) Load(ctx context.Context) error {
	_, err, _ := s.loads.Do("load", func() (any, error) {
		return nil, s.load(ctx)
	})
	return err
}

func (s *Store) load(ctx context.Context) error {
	start := time.Now()
	reqID := requestid.FromContext(ctx)

	if !s.circuitBreaker.Allow(ctx) {
		s.metrics.RecordLoad(OutcomeRejected, time.Since(start))
		s.setLastError(ErrCircuitOpen)
		s.logger.Warn().Str("request_id", reqID).Msg("Catalog load rejected, circuit breaker open")
		return ErrCircuitOpen
	}

	if s.config.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LoadTimeout)
		defer cancel()
	}

	res := s.fetchAll(ctx)

	var errs []error
	succeeded := 0
	for _, e := range Entities() {
		if res.errs[e] != nil {
			errs = append(errs, res.errs[e])
			continue
		}
		succeeded++
	}
	loadErr := errors.Join(errs...)

	if succeeded == 0 {
		s.circuitBreaker.RecordFailure(loadErr)
		s.metrics.RecordLoad(OutcomeFailed, time.Since(start))
		s.setLastError(loadErr)
		s.logger.Error().
			Err(loadErr).
			Str("request_id", reqID).
			Dur("duration", time.Since(start)).
			Msg("Catalog load failed, keeping previous snapshot")
		return loadErr
	}
	s.circuitBreaker.RecordSuccess()

	next := s.publish(res)

	outcome := OutcomeOK
	event := s.logger.Info()
	if loadErr != nil {
		outcome = OutcomePartial
		event = s.logger.Warn().Err(loadErr)
	}
	s.metrics.RecordLoad(outcome, time.Since(start))
	s.setLastError(loadErr)

	event.
		Str("request_id", reqID).
		Uint64("version", next.Version()).
		Str("generation", next.Generation()).
		Int("products", next.Len(EntityProducts)).
		Int("categories", next.Len(EntityCategories)).
		Int("brands", next.Len(EntityBrands)).
		Int("failed_entities", len(errs)).
		Dur("duration", time.Since(start)).
		Msg("Catalog snapshot published")

	if next.Complete() {
		s.warmupGate.Ready()
	}
	return loadErr
}

func (s *Store) fetchAll(ctx context.Context) *fetched {
	res := &fetched{}
	g := new(errgroup.Group)
	g.SetLimit(s.config.LoadConcurrency)

	run := func(e Entity, fetch func(context.Context) error) {
		g.Go(func() error {
			start := time.Now()
			err := fetch(ctx)
			s.metrics.RecordFetch(e, time.Since(start), err)
			if err != nil {
				res.errs[e] = &UpstreamFetchError{Entity: e, Err: err}
			}
			// Fetch failures are collected per entity so one failure never
			// cancels its siblings.
			return nil
		})
	}

	run(EntityProducts, func(ctx context.Context) error {
		raw, err := s.source.FetchProducts(ctx)
		if err != nil {
			return err
		}
		res.products = NormalizeAll(raw)
		return nil
	})
	run(EntityCategories, func(ctx context.Context) (err error) {
		res.categories, err = s.source.FetchCategories(ctx)
		return err
	})
	run(EntityBrands, func(ctx context.Context) (err error) {
		res.brands, err = s.source.FetchBrands(ctx)
		return err
	})
	run(EntityGeneralDefinitions, func(ctx context.Context) (err error) {
		res.generalDefs, err = s.source.FetchGeneralDefinitions(ctx)
		return err
	})
	run(EntityGeneralOptions, func(ctx context.Context) (err error) {
		res.generalOptions, err = s.source.FetchGeneralOptions(ctx)
		return err
	})
	run(EntityExtraDefinitions, func(ctx context.Context) (err error) {
		res.extraDefs, err = s.source.FetchExtraDefinitions(ctx)
		return err
	})
	run(EntityExtraOptions, func(ctx context.Context) (err error) {
		res.extraOptions, err = s.source.FetchExtraOptions(ctx)
		return err
	})

	_ = g.Wait()
	return res
}

// publish builds the next snapshot from res and the current snapshot and
// swaps it in. Only one publish runs at a time because loads are collapsed.
func (s *Store) publish(res *fetched) *Snapshot {
	old := s.current.Load()
	now := time.Now()

	data := Data{
		Products:   old.products,
		Categories: old.categories,
		Labels:     old.labels,
	}
	ok := func(e Entity) bool { return res.errs[e] == nil }
	if ok(EntityProducts) {
		data.Products = res.products
	}
	if ok(EntityCategories) {
		data.Categories = res.categories
	}
	if ok(EntityBrands) {
		data.Labels.Brands = res.brands
	}
	if ok(EntityGeneralDefinitions) {
		data.Labels.CharsGeneral = res.generalDefs
	}
	if ok(EntityGeneralOptions) {
		data.Labels.CharsGeneralOptions = res.generalOptions
	}
	if ok(EntityExtraDefinitions) {
		data.Labels.CharsExtra = res.extraDefs
	}
	if ok(EntityExtraOptions) {
		data.Labels.CharsExtraOptions = res.extraOptions
	}

	next := build(data, old.version+1, now)
	next.entityLoadedAt = old.entityLoadedAt
	for _, e := range Entities() {
		if ok(e) {
			next.entityLoadedAt[e] = now
		}
	}

	s.current.Store(next)
	s.metrics.RecordSnapshot(next)
	return next
}

func (s *Store) setLastError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.lastLoad = time.Now()
}

// WaitReady blocks until a complete snapshot has been published.
func (s *Store) WaitReady(ctx context.Context) error {
	if !s.warmupGate.Wait(ctx) {
		return fmt.Errorf("%w: %v", ErrNotReady, ctx.Err())
	}
	return nil
}

// IsReady reports whether every entity has been loaded at least once.
func (s *Store) IsReady() bool {
	return s.warmupGate.IsReady()
}

// EntityStatus describes one entity in the published snapshot.
type EntityStatus struct {
	Name     string    `json:"name"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Freshness describes the published snapshot and the last load attempt.
// CircuitFailures counts consecutive loads where every fetch failed;
// CircuitRetryAt is set while the circuit is open.
type Freshness struct {
	Ready           bool           `json:"ready"`
	Stale           bool           `json:"stale"`
	Version         uint64         `json:"version"`
	Generation      string         `json:"generation"`
	LoadedAt        time.Time      `json:"loaded_at"`
	AgeSeconds      float64        `json:"age_seconds"`
	LastLoadAt      time.Time      `json:"last_load_at"`
	LastError       string         `json:"last_error,omitempty"`
	CircuitState    string         `json:"circuit_state"`
	CircuitFailures int            `json:"circuit_failures"`
	CircuitRetryAt  *time.Time     `json:"circuit_retry_at,omitempty"`
	Entities        []EntityStatus `json:"entities"`
}

// Freshness reports the state of the store.
func (s *Store) Freshness() Freshness {
	snap := s.Snapshot()
	now := time.Now()

	breaker := s.circuitBreaker.Status()
	f := Freshness{
		Ready:           s.IsReady(),
		Version:         snap.Version(),
		Generation:      snap.Generation(),
		LoadedAt:        snap.LoadedAt(),
		CircuitState:    breaker.State.String(),
		CircuitFailures: breaker.Failures,
	}
	if !breaker.RetryAt.IsZero() {
		f.CircuitRetryAt = &breaker.RetryAt
	}

	var oldest time.Time
	for _, e := range Entities() {
		loadedAt := snap.EntityLoadedAt(e)
		f.Entities = append(f.Entities, EntityStatus{
			Name:     e.String(),
			Records:  snap.Len(e),
			LoadedAt: loadedAt,
		})
		if oldest.IsZero() || loadedAt.Before(oldest) {
			oldest = loadedAt
		}
	}

	if !snap.LoadedAt().IsZero() {
		age := now.Sub(snap.LoadedAt())
		f.AgeSeconds = age.Seconds()
		s.metrics.RecordSnapshotAge(age)
	}
	if s.config.StaleAfter > 0 {
		f.Stale = oldest.IsZero() || now.Sub(oldest) > s.config.StaleAfter
	}

	s.mu.RLock()
	f.LastLoadAt = s.lastLoad
	if s.lastError != nil {
		f.LastError = s.lastError.Error()
	}
	s.mu.RUnlock()

	return f
}

// CircuitState returns the state of the breaker guarding the source.
func (s *Store) CircuitState() CircuitBreakerState {
	return s.circuitBreaker.State()
}
