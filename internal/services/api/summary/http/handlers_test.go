package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "dltally/internal/platform/errors"
	phttp "dltally/internal/platform/net/http"
	"dltally/internal/services/api/summary/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	got domain.WindowInput
	err error
}

func (f *fakeSvc) Window(_ context.Context, in domain.WindowInput) ([]domain.Row, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Row{{Day: in.From, Delta: 3, Method: "observed"}}, nil
}

func (f *fakeSvc) Totals(_ context.Context, in domain.WindowInput) (domain.Totals, error) {
	f.got = in
	return domain.Totals{From: in.From, To: in.To, Days: 2, Delta: 3}, f.err
}

func serve(t *testing.T, s *fakeSvc, target string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), s)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestWindow_OK(t *testing.T) {
	s := &fakeSvc{}
	rec, env := serve(t, s, "/?from=2025-08-01&to=2025-08-02")
	if rec.Code != stdhttp.StatusOK || s.got.From != "2025-08-01" || s.got.To != "2025-08-02" {
		t.Fatalf("code %d got %+v", rec.Code, s.got)
	}
	rows, ok := env.Data.([]any)
	if !ok || len(rows) != 1 || rows[0].(map[string]any)["delta"] != float64(3) {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestTotals_OK(t *testing.T) {
	rec, env := serve(t, &fakeSvc{}, "/totals?from=2025-08-01&to=2025-08-02")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code %d", rec.Code)
	}
	if data, _ := env.Data.(map[string]any); data["days"] != float64(2) {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestWindow_BindErrors(t *testing.T) {
	cases := map[string]string{
		"missing from": "/?to=2025-08-02",
		"bad to":       "/?from=2025-08-01&to=yesterday",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSvc{}
			rec, env := serve(t, s, target)
			if rec.Code != stdhttp.StatusBadRequest || env.Code != perr.ErrorCodeValidation || env.Field == "" {
				t.Fatalf("code %d env %+v", rec.Code, env)
			}
			if s.got != (domain.WindowInput{}) {
				t.Fatalf("service called with %+v", s.got)
			}
		})
	}
}

func TestWindow_ServiceErrorStatus(t *testing.T) {
	s := &fakeSvc{err: perr.WithField(perr.InvalidArgf("from must not be after to"), "from")}
	rec, env := serve(t, s, "/?from=2025-08-03&to=2025-08-01")
	if rec.Code != stdhttp.StatusUnprocessableEntity || env.Field != "from" || env.Data != nil {
		t.Fatalf("code %d env %+v", rec.Code, env)
	}
}
