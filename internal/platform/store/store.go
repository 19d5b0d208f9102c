// Package store is the storage facade shared by the tally job and the read
// API. Repos see only the small RowQuerier and TxRunner seams; pgx stays
// behind the adapter.
package store

import (
	"context"
	"errors"
	"fmt"

	"dltally/internal/platform/logger"
	"dltally/internal/platform/store/pg"

	"github.com/rs/zerolog"
)

type (
	// Row is one result row
	Row interface {
		Scan(dest ...any) error
	}

	// Rows is a result set; Close must be called, Err checked after Next
	Rows interface {
		Row
		Next() bool
		Err() error
		Close()
	}

	// CommandTag reports what a write did
	CommandTag interface {
		String() string
		RowsAffected() int64
	}

	// RowQuerier runs statements, on the pool or inside a transaction
	RowQuerier interface {
		Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) Row
	}

	// TxRunner also opens transactions. Tx commits when fn returns nil and
	// otherwise rolls back and returns fn's error untouched.
	TxRunner interface {
		RowQuerier
		Tx(ctx context.Context, fn func(q RowQuerier) error) error
	}

	// Pinger reports readiness
	Pinger interface{ Ping(context.Context) error }
)

// Store holds the opened backends. PG is nil until Open enables it.
type Store struct {
	Log logger.Logger
	PG  TxRunner
}

// Open builds a Store and opens every backend cfg enables
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s, err := newStore(opts)
	if err != nil {
		return nil, err
	}
	if !cfg.PG.Enabled {
		return s, nil
	}
	if _, err := openPG(ctx, cfg, s); err != nil {
		return nil, err
	}
	return s, nil
}

// FromPG wraps an already opened client, for tests and tools
func FromPG(p *pg.PG, opts ...Option) (*Store, error) {
	s, err := newStore(opts)
	if err != nil {
		return nil, err
	}
	s.PG = newPGAdapter(p)
	return s, nil
}

func newStore(opts []Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Guard pings each backend that can be pinged
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: not opened")
	}
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases every opened backend; a nil Store is fine
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
