// Package http is the transport seam the API modules mount against: a router
// facade over chi, the JSON envelope and the server lifecycle
package http

import "net/http"

// Handler is a plain net/http handler func; modules register these
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the subset of chi the modules use. Keep it small; modules must
// not reach for chi directly.
type Router interface {
	Get(path string, h Handler)
	// Handle registers h for every method on path
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	// Group shares the current prefix with its own middleware stack
	Group(fn func(Router))
	// Route opens a sub-router under pattern
	Route(pattern string, fn func(Router))
	// Mux exposes the root handler for servers and tests
	Mux() http.Handler
}
