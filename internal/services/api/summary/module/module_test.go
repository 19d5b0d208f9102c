package module

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dltally/internal/modkit"
	"dltally/internal/platform/config"
	phttp "dltally/internal/platform/net/http"
	"dltally/internal/platform/store/pgtest"
	kit "dltally/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestFromConfig(t *testing.T) {
	if got := FromConfig(config.New()).MaxWindowDays; got != 366 {
		t.Fatalf("default MaxWindowDays = %d", got)
	}
	t.Setenv("DLT_API_MAX_WINDOW_DAYS", "31")
	if got := FromConfig(config.New()).MaxWindowDays; got != 31 {
		t.Fatalf("MaxWindowDays = %d", got)
	}
}

func TestNew_MountsUnderPrefixWithRegister(t *testing.T) {
	st, _ := pgtest.Mock(t)
	extra := 0
	m := New(modkit.Deps{Cfg: config.New(), PG: st.PG},
		modkit.WithRegister(func(r phttp.Router) {
			r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { extra++ })
		}))
	if m.Name() != "summary" {
		t.Fatalf("name = %q", m.Name())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary/ping", nil))
	if extra != 1 {
		t.Fatalf("extra register not mounted under prefix (status %d)", rec.Code)
	}

	// validation fails before the repo is touched
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary/?from=2025-08-02", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestNew_PanicsWithoutPG(t *testing.T) {
	kit.MustPanic(t, func() { New(modkit.Deps{Cfg: config.New()}) })
}
