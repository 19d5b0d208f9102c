package domain

import (
	"context"
	"time"
)

// ReconcilePort derives and persists the daily summary rows ending at today
type ReconcilePort interface {
	Reconcile(ctx context.Context, today time.Time) (Result, error)
}
