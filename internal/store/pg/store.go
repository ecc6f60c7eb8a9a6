// Package pg implementa los repositorios de dominio sobre PostgreSQL (pgx).
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
)

// Options ajusta el pool de conexiones.
type Options struct {
	MaxOpenConns    int32
	MinIdleConns    int32
	ConnMaxLifetime time.Duration
}

// Store agrupa los repositorios respaldados por el mismo pool.
type Store struct {
	pool  *pgxpool.Pool
	Users repository.UserRepository
	Debts repository.DebtRepository
}

// Connect abre el pool y verifica conectividad con un ping.
func Connect(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		cfg.MaxConns = opts.MaxOpenConns
	}
	if opts.MinIdleConns > 0 {
		cfg.MinConns = opts.MinIdleConns
	}
	if opts.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = opts.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg: open pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}

	return &Store{
		pool:  pool,
		Users: &userRepo{pool: pool},
		Debts: &debtRepo{pool: pool},
	}, nil
}

// Ping verifica que la base responde. Usado por el readiness probe.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Pool expone el pool subyacente (métricas, migraciones).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) Close() { s.pool.Close() }
