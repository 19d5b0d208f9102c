package store

import (
	"context"
	"errors"
	"time"

	"dltally/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the statement surface shared by the pool and pgx.Tx
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced is a RowQuerier that reports every statement to the tracer
type traced struct {
	db     pgxQuerier
	tracer pg.QueryTracer
	slow   time.Duration
}

// observe starts timing a statement; call the result with its outcome
func (t traced) observe(ctx context.Context, sql string, args []any) func(error) {
	if t.tracer == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		took := time.Since(start)
		t.tracer.OnQuery(ctx, pg.QueryEvent{
			SQL:       sql,
			Args:      args,
			ElapsedUS: took.Microseconds(),
			Err:       err,
			Slow:      t.slow >= 0 && took >= t.slow,
		})
	}
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	done := t.observe(ctx, sql, args)
	ct, err := t.db.Exec(ctx, sql, args...)
	done(err)
	return ct, err
}

// Query is timed until the rows are open, not until they are drained
func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	done := t.observe(ctx, sql, args)
	rs, err := t.db.Query(ctx, sql, args...)
	done(err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// QueryRow is timed through Scan. No rows is an answer, not a failure.
func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	done := t.observe(ctx, sql, args)
	return scanHook{Row: t.db.QueryRow(ctx, sql, args...), done: func(err error) {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
		}
		done(err)
	}}
}

type scanHook struct {
	Row
	done func(error)
}

func (h scanHook) Scan(dst ...any) error {
	err := h.Row.Scan(dst...)
	h.done(err)
	return err
}

// pgAdapter is the TxRunner over a pg.PG
type pgAdapter struct {
	traced
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		traced: traced{db: p.Pool, tracer: p.Tracer, slow: time.Duration(p.SlowMs) * time.Millisecond},
		p:      p,
	}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil || a.p.Pool == nil {
		return errors.New("pg: not opened")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error {
	a.p.Close()
	return nil
}

// Tx commits when fn returns nil. An error or a panic in fn rolls back, the
// panic being re-raised afterwards.
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	finished := false
	defer func() {
		if !finished {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err := fn(traced{db: tx, tracer: a.tracer, slow: a.slow}); err != nil {
		return err
	}
	finished = true
	return tx.Commit(ctx)
}
