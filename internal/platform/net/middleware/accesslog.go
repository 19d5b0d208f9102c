package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"dltally/internal/platform/logger"
)

// AccessLogOptions tunes AccessLog
type AccessLogOptions struct {
	// Slow promotes requests at or over this duration to warn; 0 never does
	Slow time.Duration
}

// AccessLog writes one line per request through logger.C, so it picks up
// request_id when mounted after RequestLogger. Server errors log at error.
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			evt := levelFor(logger.C(r.Context()), status, took, opt.Slow)
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}

func levelFor(log *logger.Logger, status int, took, slow time.Duration) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Error()
	case slow > 0 && took >= slow:
		return log.Warn()
	default:
		return log.Info()
	}
}
