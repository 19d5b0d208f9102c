// Package http provides health and build endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"dltally/internal/core/version"
	"dltally/internal/modkit/httpkit"
)

// Guard is satisfied by the store facade
type Guard interface {
	Guard(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Store       Guard
	Now         func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/healthz", h.health)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	Status  string `json:"status"  example:"ok"` // ok fail
	Service string `json:"service" example:"dltally-api"`
	Store   string `json:"store"   example:"ok"`
	Error   string `json:"error,omitempty" example:"pg: dial tcp 127.0.0.1:5432: connect: connection refused"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /healthz Meta metaHealth
// @Summary Liveness and store readiness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Failure 503 {object} HealthResponse "store unreachable"
// @Router /healthz [get]
func (h *handlers) health(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	now := h.deps.Now()
	out := HealthResponse{
		Status:  "ok",
		Service: h.deps.ServiceName,
		Store:   "skipped",
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Store == nil {
		return out, nil
	}
	if err := h.deps.Store.Guard(ctx); err != nil {
		out.Status, out.Store, out.Error = "fail", "fail", err.Error()
		return httpkit.Unavailable(out), nil
	}
	out.Store = "ok"
	return out, nil
}

// swagger:route GET /version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}
