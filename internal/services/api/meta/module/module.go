// Package module wires health and build endpoints into the API
package module

import (
	"time"

	"dltally/internal/modkit"
	"dltally/internal/modkit/httpkit"
	metahttp "dltally/internal/services/api/meta/http"
)

// New builds the meta module at the router root. store may be nil, in which
// case /healthz reports the store check as skipped.
func New(service string, store metahttp.Guard, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/")}, opts...)...)
	deps := metahttp.Deps{ServiceName: service, StartedAt: time.Now(), Store: store}

	return b.Module(func(r httpkit.Router) { metahttp.Register(r, deps) })
}
