package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	perr "dltally/internal/platform/errors"
	"dltally/internal/platform/logger"
	kit "dltally/internal/platform/testkit"
)

type syncBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuf) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuf) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

var logs syncBuf

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &logs})
	os.Exit(m.Run())
}

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestAccessLog_CarriesRequestID(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}), RequestID(), RequestLogger, AccessLog(AccessLogOptions{}))

	req := httptest.NewRequest(http.MethodGet, "/v1/summary?from=2025-01-01", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := logs.String()
	kit.MustContain(t, out, `"request_id":"abc-123"`)
	kit.MustContain(t, out, `"query":"from=2025-01-01"`)
	kit.MustContain(t, out, `"bytes":5`)
}

func TestAccessLog_ErrorLevelOn5xx(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}), AccessLog(AccessLogOptions{Slow: time.Hour}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, `"path":"/healthz"`) {
			kit.MustContain(t, line, `"level":"error"`)
			return
		}
	}
	t.Fatalf("no access log line for /healthz")
}

func TestAccessLog_RoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(AccessLog(AccessLogOptions{}))
	r.Get("/v1/repos/{owner}/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/repos/acme/tool", nil))

	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, `"path":"/v1/repos/acme/tool"`) {
			kit.MustContain(t, line, `"route":"/v1/repos/{owner}/{name}"`)
			kit.MustContain(t, line, `"status":204`)
			return
		}
	}
	t.Fatalf("no access log line for the repo route")
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		RequestID(), RecoverJSON)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-9")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError || rec.Header().Get("X-Request-ID") != "rid-9" {
		t.Fatalf("code %d headers %v", rec.Code, rec.Header())
	}
	var body panicWire
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != perr.ErrorCodePanic || body.RequestID != "rid-9" {
		t.Fatalf("body = %+v", body)
	}
	kit.MustContain(t, logs.String(), "panic recovered")
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS(CORSOptions{AllowedOrigins: []string{"https://dash.example"}})(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/v1/summary", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Fatalf("allow origin = %q", got)
	}
	if n := len(Defaults(time.Second)); n != 5 {
		t.Fatalf("Defaults len = %d", n)
	}
}
