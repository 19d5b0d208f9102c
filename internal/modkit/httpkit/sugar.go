// Package httpkit is the slice of the platform HTTP layer that modules use:
// the router seam, the envelope, and helpers that bind input and wrap output.
package httpkit

import (
	"net/http"

	phttp "dltally/internal/platform/net/http"
)

type (
	Router   = phttp.Router
	Response = phttp.Response
	// Envelope is referenced by handler doc annotations
	Envelope = phttp.Envelope
)

// GetQuery mounts a GET whose query string is bound and validated into T
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, phttp.QueryHandler(h))
}

// Get mounts a GET that takes no input
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoInputHandler(h))
}

// Unavailable is a 503 that still carries data, for health reports
func Unavailable(data any) Response {
	return Response{Status: http.StatusServiceUnavailable, Body: data}
}
