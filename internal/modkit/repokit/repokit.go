// Package repokit binds per-domain repos to whichever querier is in play,
// the pool or an open transaction
package repokit

import (
	"context"

	"dltally/internal/platform/store"
)

type (
	// Queryer is what a repo needs to run SQL; both the pool and a tx satisfy it
	Queryer = store.RowQuerier
	// TxRunner opens transactions
	TxRunner = store.TxRunner
)

// Binder makes a T that runs its statements on q
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind is Bind that refuses a nil querier, which is always a wiring bug
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil Queryer")
	}
	return b.Bind(q)
}

// TxBind runs fn with a repo bound to a fresh transaction. fn returning an
// error rolls the whole transaction back.
func TxBind[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(repo T) error) error {
	return tx.Tx(ctx, func(q Queryer) error {
		return fn(MustBind(b, q))
	})
}
