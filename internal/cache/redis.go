// Package cache holds the Redis-backed filter-meta cache and the catalog
// refresh broadcast shared by service replicas.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/filter"
)

const metaKeyPrefix = "catalog:meta:"

// Connect parses a redis:// URL, dials and pings the server.
func Connect(ctx context.Context, url string, dialTimeout time.Duration) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if dialTimeout > 0 {
		opt.DialTimeout = dialTimeout
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, opt.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// MetaCache stores computed filter metadata. Entries are keyed by snapshot
// generation, so replicas holding the same catalog share entries and a
// changed catalog never sees metadata of another one.
type MetaCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zerolog.Logger
}

// NewMetaCache creates a cache over client. A non-positive ttl stores
// entries without expiry.
func NewMetaCache(client redis.Cmdable, ttl time.Duration) *MetaCache {
	logger := log.With().Str("component", "meta_cache").Logger()
	return &MetaCache{client: client, ttl: ttl, logger: &logger}
}

// MetaKey returns the cache key of a request key under a snapshot generation.
func MetaKey(generation, requestKey string) string {
	sum := sha256.Sum256([]byte(requestKey))
	return metaKeyPrefix + generation + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached metadata. A miss is reported as ok == false with a
// nil error.
func (c *MetaCache) Get(ctx context.Context, generation, requestKey string) (filter.Meta, bool, error) {
	raw, err := c.client.Get(ctx, MetaKey(generation, requestKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return filter.Meta{}, false, nil
	}
	if err != nil {
		return filter.Meta{}, false, fmt.Errorf("meta cache get: %w", err)
	}

	var meta filter.Meta
	if err := json.Unmarshal(raw, &meta); err != nil {
		c.logger.Warn().Err(err).Str("generation", generation).Msg("Discarding undecodable cache entry")
		return filter.Meta{}, false, nil
	}
	return meta, true, nil
}

// Set stores meta for the request key under generation.
func (c *MetaCache) Set(ctx context.Context, generation, requestKey string, meta filter.Meta) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("meta cache encode: %w", err)
	}
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, MetaKey(generation, requestKey), raw, ttl).Err(); err != nil {
		return fmt.Errorf("meta cache set: %w", err)
	}
	return nil
}
