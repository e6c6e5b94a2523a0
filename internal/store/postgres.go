package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPersister stores the blob as a JSONB row keyed by namespace
type PostgresPersister struct {
	pool      *pgxpool.Pool
	namespace string
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN           string
	MigrationsDir string
	MaxOpenConns  int32
	MaxIdleConns  int32
	MaxLifetime   time.Duration
}

// NewPostgresPersister opens a pool, applies pending migrations and returns the persister
func NewPostgresPersister(ctx context.Context, cfg PostgresConfig, namespace string) (*PostgresPersister, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 10
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.MigrationsDir != "" {
		if err := RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &PostgresPersister{pool: pool, namespace: namespace}, nil
}

func (p *PostgresPersister) Load(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := p.pool.QueryRow(ctx,
		`SELECT blob FROM persisted_state WHERE namespace = $1`,
		p.namespace,
	).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return blob, nil
}

func (p *PostgresPersister) Save(ctx context.Context, blob []byte) error {
	query := `
		INSERT INTO persisted_state (namespace, blob, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (namespace) DO UPDATE
		SET blob = EXCLUDED.blob,
			version = persisted_state.version + 1,
			updated_at = NOW()
	`
	if _, err := p.pool.Exec(ctx, query, p.namespace, blob); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (p *PostgresPersister) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresPersister) Close() error {
	p.pool.Close()
	return nil
}
