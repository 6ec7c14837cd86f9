// Package storefront answers the product listing and filter metadata
// queries over the published catalog snapshot.
package storefront

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/catalog"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/filter"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/mapper"
)

const tracerName = "github.com/Ramax12/ArtiVana-nuxt-filter/internal/storefront"

// SnapshotProvider returns the currently published catalog snapshot.
type SnapshotProvider interface {
	Snapshot() *catalog.Snapshot
}

// MetaCache caches filter metadata per snapshot generation and request key.
type MetaCache interface {
	Get(ctx context.Context, generation string, requestKey string) (filter.Meta, bool, error)
	Set(ctx context.Context, generation string, requestKey string, meta filter.Meta) error
}

// Config holds storefront settings.
type Config struct {
	PageSize     int
	NumericSlugs []string
}

// Page is one page of the product listing.
type Page struct {
	Items      []mapper.ProductView
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Service serves storefront queries.
type Service struct {
	catalog    SnapshotProvider
	aggregator *filter.Aggregator
	cache      MetaCache
	pageSize   int
	tracer     trace.Tracer
	logger     *zerolog.Logger
}

// NewService creates a service. cache may be nil.
func NewService(provider SnapshotProvider, cache MetaCache, cfg Config) *Service {
	logger := log.With().Str("component", "storefront").Logger()
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = filter.DefaultPageSize
	}
	return &Service{
		catalog:    provider,
		aggregator: filter.NewAggregator(cfg.NumericSlugs),
		cache:      cache,
		pageSize:   pageSize,
		tracer:     otel.Tracer(tracerName),
		logger:     &logger,
	}
}

// PageSize returns the listing page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Products filters, sorts and paginates the catalog and projects the
// requested page.
func (s *Service) Products(ctx context.Context, req filter.Request) (Page, error) {
	start := time.Now()
	snap := s.catalog.Snapshot()

	_, span := s.tracer.Start(ctx, "storefront.Products",
		trace.WithAttributes(
			attribute.Int64("catalog.version", int64(snap.Version())),
			attribute.String("filter.sort", req.Sort),
			attribute.Int("filter.page", req.Page),
		))
	defer span.End()

	matched := filter.FilterProducts(snap, req)
	sorted := filter.SortProducts(matched, req.Sort)
	page := req.Page
	if page < 1 {
		page = 1
	}
	items := filter.Paginate(sorted, page, s.pageSize)

	views, err := mapper.ToViews(items, snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "projection failed")
		recordRequest(endpointProducts, outcomeError, time.Since(start))
		s.logger.Error().Err(err).Uint64("version", snap.Version()).Msg("Product projection failed")
		return Page{}, err
	}

	span.SetAttributes(attribute.Int("filter.matched", len(matched)))
	recordRequest(endpointProducts, outcomeOK, time.Since(start))

	return Page{
		Items:      views,
		Total:      len(matched),
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: filter.PageCount(len(matched), s.pageSize),
	}, nil
}

// Listing returns every product matching req in sort order, unpaginated.
func (s *Service) Listing(ctx context.Context, req filter.Request) ([]mapper.ProductView, error) {
	snap := s.catalog.Snapshot()

	_, span := s.tracer.Start(ctx, "storefront.Listing",
		trace.WithAttributes(attribute.Int64("catalog.version", int64(snap.Version()))))
	defer span.End()

	matched := filter.SortProducts(filter.FilterProducts(snap, req), req.Sort)
	views, err := mapper.ToViews(matched, snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "projection failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("filter.matched", len(matched)))
	return views, nil
}

// FilterMeta computes the filter metadata of req. Results are served from
// the cache when one is configured; cache failures fall back to computing.
func (s *Service) FilterMeta(ctx context.Context, req filter.Request) (filter.Meta, error) {
	start := time.Now()
	snap := s.catalog.Snapshot()
	key := req.Key()

	ctx, span := s.tracer.Start(ctx, "storefront.FilterMeta",
		trace.WithAttributes(attribute.Int64("catalog.version", int64(snap.Version()))))
	defer span.End()

	if s.cache != nil {
		meta, ok, err := s.cache.Get(ctx, snap.Generation(), key)
		switch {
		case err != nil:
			recordCache(cacheError)
			s.logger.Warn().Err(err).Msg("Meta cache lookup failed")
		case ok:
			recordCache(cacheHit)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			recordRequest(endpointMeta, outcomeOK, time.Since(start))
			return meta, nil
		default:
			recordCache(cacheMiss)
		}
	}

	meta := s.aggregator.Aggregate(snap, req)
	span.SetAttributes(
		attribute.Bool("cache.hit", false),
		attribute.Int("filter.matched", meta.Count),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, snap.Generation(), key, meta); err != nil {
			recordCache(cacheError)
			s.logger.Warn().Err(err).Msg("Meta cache store failed")
		}
	}

	recordRequest(endpointMeta, outcomeOK, time.Since(start))
	return meta, nil
}
