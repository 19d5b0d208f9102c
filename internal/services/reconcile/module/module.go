// Package module wires the reconcile service and exposes its ports
package module

import (
	"dltally/internal/modkit"
	phttp "dltally/internal/platform/net/http"
	"dltally/internal/services/reconcile/domain"
	"dltally/internal/services/reconcile/repo"
	"dltally/internal/services/reconcile/service"
)

// Ports defines reconcile module ports
type Ports struct {
	Reconcile domain.ReconcilePort
}

// Module defines the reconcile module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the reconcile module from opts, usually the result of Load
func New(deps modkit.Deps, opts Options) (*Module, error) {
	params, err := opts.Validate()
	if err != nil {
		return nil, err
	}

	svc, err := service.New(deps.PG, repo.NewPG(), deps.ClockOrReal(), service.Config{
		Params:           params,
		DryRun:           opts.DryRun,
		StatementTimeout: opts.StatementTimeout,
	})
	if err != nil {
		return nil, err
	}
	deps.Log.Debug().
		Str("strategy", params.Strategy.String()).
		Int("min_gap_days", params.MinimumGapDays).
		Int("lookback_days", params.LookbackDays).
		Str("fallback", params.Fallback.String()).
		Bool("dry_run", opts.DryRun).
		Msg("reconcile configured")

	return &Module{deps: deps, opts: opts, ports: Ports{Reconcile: svc}}, nil
}

// Name returns the module name
func (m *Module) Name() string { return "reconcile" }

// Options returns the effective options
func (m *Module) Options() Options { return m.opts }

// Ports returns the module ports
func (m *Module) Ports() Ports { return m.ports }

// MountRoutes is a no-op; reconcile runs from the job entrypoint
func (m *Module) MountRoutes(_ phttp.Router) {}

var _ modkit.Module = (*Module)(nil)
