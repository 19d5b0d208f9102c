package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Window(ctx context.Context, in WindowInput) ([]Row, error)
	Totals(ctx context.Context, in WindowInput) (Totals, error)
}
