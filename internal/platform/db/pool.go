package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig carries the connection settings the server exposes through
// its environment. Zero values fall back to the defaults below.
type PoolConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	HealthCheck     time.Duration
}

const (
	defaultMaxConns        = 10
	defaultMinConns        = 2
	defaultMaxConnLifetime = time.Hour
	defaultHealthCheck     = time.Minute
)

func (c PoolConfig) pgxConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(c.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = c.MaxConns
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxConns
	}
	cfg.MinConns = c.MinConns
	if cfg.MinConns <= 0 {
		cfg.MinConns = defaultMinConns
	}
	cfg.MaxConnLifetime = c.MaxConnLifetime
	if cfg.MaxConnLifetime <= 0 {
		cfg.MaxConnLifetime = defaultMaxConnLifetime
	}
	cfg.HealthCheckPeriod = c.HealthCheck
	if cfg.HealthCheckPeriod <= 0 {
		cfg.HealthCheckPeriod = defaultHealthCheck
	}
	return cfg, nil
}

// NewPool opens a pgx pool and verifies connectivity with a ping before
// handing it back.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pgxCfg, err := cfg.pgxConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
