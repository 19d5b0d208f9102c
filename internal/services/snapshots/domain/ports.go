package domain

import (
	"context"
	"time"
)

// CapturePort records today's counters for every configured repository
type CapturePort interface {
	Capture(ctx context.Context, day time.Time) (CaptureResult, error)
}
