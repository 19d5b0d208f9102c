// Package repo provides postgres reads of the daily summary
package repo

import (
	"context"
	"time"

	"dltally/internal/modkit/repokit"
	"dltally/internal/platform/store"
)

// Repo is the minimal persistence surface for summary reads
type Repo interface {
	Window(ctx context.Context, from, to time.Time) ([]RowDay, error)
	ByMethod(ctx context.Context, from, to time.Time) ([]RowMethod, error)
}

// RowDay is one daily_summary row
type RowDay struct {
	Day       time.Time
	Delta     int64
	Method    string
	DerivedAt time.Time
}

// RowMethod aggregates daily_summary rows by method
type RowMethod struct {
	Method string
	Days   int64
	Delta  int64
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const (
	windowSQL = `SELECT day, delta, method, derived_at
		FROM daily_summary
		WHERE day BETWEEN $1 AND $2
		ORDER BY day ASC`

	byMethodSQL = `SELECT method, COUNT(*)::bigint, COALESCE(SUM(delta), 0)::bigint
		FROM daily_summary
		WHERE day BETWEEN $1 AND $2
		GROUP BY method
		ORDER BY method`
)

// Window returns rows in [from, to], oldest first
func (r *queries) Window(ctx context.Context, from, to time.Time) ([]RowDay, error) {
	return store.Many(ctx, r.q, func(row store.Row) (RowDay, error) {
		var x RowDay
		err := row.Scan(&x.Day, &x.Delta, &x.Method, &x.DerivedAt)
		return x, err
	}, windowSQL, from, to)
}

// ByMethod returns per-method counts and sums in [from, to]
func (r *queries) ByMethod(ctx context.Context, from, to time.Time) ([]RowMethod, error) {
	return store.Many(ctx, r.q, func(row store.Row) (RowMethod, error) {
		var x RowMethod
		err := row.Scan(&x.Method, &x.Days, &x.Delta)
		return x, err
	}, byMethodSQL, from, to)
}
