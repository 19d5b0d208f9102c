package modkit

import (
	"net/http"
	"strings"

	"dltally/internal/modkit/httpkit"
	phttp "dltally/internal/platform/net/http"
)

// Built is the resolved option set for one module
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Register adds routes after the module's own; never nil after Build
	Register func(phttp.Router)
}

// Option adjusts a module before it is built
type Option func(*Built)

// WithName names the module in logs
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix; "" or "/" is the router root
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware that only wraps this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithRegister adds routes to the module's subrouter after its own
func WithRegister(fn func(phttp.Router)) Option { return func(b *Built) { b.Register = fn } }

// Build applies opts in order. Modules pass their defaults first so callers
// can override them. The prefix comes out as "/x" with no trailing slash.
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Prefix = "/" + strings.Trim(strings.TrimSpace(b.Prefix), "/")
	if b.Register == nil {
		b.Register = func(phttp.Router) {}
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Module turns the build into a Module whose routes are own followed by
// b.Register, all under b.Prefix with b.Mw applied
func (b Built) Module(own func(phttp.Router)) Module { return built{b: b, own: own} }

type built struct {
	b   Built
	own func(phttp.Router)
}

func (m built) Name() string { return m.b.Name }

func (m built) MountRoutes(r phttp.Router) {
	httpkit.MountUnder(r, m.b.Prefix, m.b.Mw, func(sub phttp.Router) {
		m.own(sub)
		m.b.Register(sub)
	})
}
