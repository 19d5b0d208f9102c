// Package module wires the snapshots service and exposes its ports
package module

import (
	gh "dltally/internal/adapters/ingest/github"
	"dltally/internal/modkit"
	"dltally/internal/services/snapshots/domain"
	"dltally/internal/services/snapshots/repo"
	"dltally/internal/services/snapshots/service"

	phttp "dltally/internal/platform/net/http"
)

// Ports defines snapshots module ports
type Ports struct {
	Capture domain.CapturePort
}

// Module defines the snapshots module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the snapshots module; non-empty override repos replace the configured list
func New(deps modkit.Deps, overrides Options) *Module {
	if deps.PG == nil {
		panic("snapshots module requires a non nil TxRunner")
	}
	opts := FromConfig(deps.Cfg)
	if len(overrides.Repos) > 0 {
		opts.Repos = overrides.Repos
	}
	if overrides.TokensCSV != "" {
		opts.TokensCSV = overrides.TokensCSV
	}

	client := gh.NewClient(gh.Options{
		BaseURL:    opts.BaseURL,
		TokensCSV:  opts.TokensCSV,
		PerSecond:  opts.RatePerSec,
		Timeout:    opts.Timeout,
		MaxRetries: opts.MaxRetries,
		RetryBase:  opts.RetryBase,
	})
	if client.Tokens() == 0 {
		deps.Log.Warn().Msg("no GitHub token configured; anonymous quota is 60 requests per hour")
	}

	svc := service.New(deps.PG, repo.NewPG(), client, deps.ClockOrReal(), service.Config{
		Repos:      opts.Repos,
		SkipDrafts: opts.SkipDrafts,
	})
	return &Module{deps: deps, ports: Ports{Capture: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return "snapshots" }

// Ports returns the module ports
func (m *Module) Ports() Ports { return m.ports }

// MountRoutes is a no-op; capture is a job, not an endpoint
func (m *Module) MountRoutes(_ phttp.Router) {}

var _ modkit.Module = (*Module)(nil)
