// Package database owns the Postgres connection pool and the catalog
// tables it reads.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig holds connection pool settings
type PoolConfig struct {
	URL             string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

var (
	pool     *pgxpool.Pool
	poolMu   sync.RWMutex
	poolOnce sync.Once
)

// Open creates and pings a standalone connection pool.
func Open(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing database config: %w", err)
	}

	if cfg.MaxConnections > 0 {
		config.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		config.MinConns = int32(cfg.MinConnections)
	}
	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	config.HealthCheckPeriod = 1 * time.Minute

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("error creating connection pool: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return p, nil
}

// Connect opens the shared connection pool (safe for concurrent use)
func Connect(ctx context.Context, cfg PoolConfig) error {
	var initErr error
	poolOnce.Do(func() {
		newPool, err := Open(ctx, cfg)
		if err != nil {
			initErr = err
			return
		}
		poolMu.Lock()
		pool = newPool
		poolMu.Unlock()
	})

	if initErr != nil {
		poolMu.Lock()
		poolOnce = sync.Once{} // reset on failure
		poolMu.Unlock()
		return initErr
	}
	return nil
}

// Close closes the shared connection pool
func Close() {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
	poolOnce = sync.Once{} // reset to allow reconnection
}

// Pool returns the shared connection pool, or nil when not connected
func Pool() *pgxpool.Pool {
	poolMu.RLock()
	defer poolMu.RUnlock()
	return pool
}

// Status pings the shared pool
func Status(ctx context.Context) error {
	poolMu.RLock()
	p := pool
	poolMu.RUnlock()

	if p == nil {
		return errors.New("database not initialized")
	}
	return p.Ping(ctx)
}
