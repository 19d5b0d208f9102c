// Package modkit is how API modules are assembled: shared Deps in, a
// Module out, mounted on the platform router
package modkit

import phttp "dltally/internal/platform/net/http"

// Module is a mountable slice of the API
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
}

// Builder is the constructor shape every versioned module exposes
type Builder func(Deps, ...Option) Module

// MountAll mounts mods on r in the order given
func MountAll(r phttp.Router, mods ...Module) {
	for _, m := range mods {
		m.MountRoutes(r)
	}
}
