package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestServer_MountsAndShutsDown(t *testing.T) {
	var mounted bool
	s := NewServer("127.0.0.1:0", func(m *chi.Mux) { mounted = true })
	if !mounted || s.Addr() != "127.0.0.1:0" {
		t.Fatalf("options not applied")
	}
	s.Router().Get("/healthz", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(204) })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/healthz", nil))
	if rec.Code != 204 {
		t.Fatalf("healthz = %d", rec.Code)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestMountProfiler(t *testing.T) {
	m := chi.NewRouter()
	MountProfiler(AdaptChi(m), "/debug", false)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler should not mount, got %d", rec.Code)
	}

	MountProfiler(AdaptChi(m), "/debug", true)
	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("pprof index = %d", rec.Code)
	}
}
