package http

import (
	"net/http"

	"dltally/internal/platform/net/http/bind"
)

// QueryHandler binds and validates the query string into T before fn runs.
// fn may return a Response to control status or headers.
func QueryHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return NoInputHandler(func(r *http.Request) (any, error) {
		in, err := bind.ParseQuery[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}

// NoInputHandler wraps fn's result, or its error, in the envelope
func NoInputHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
