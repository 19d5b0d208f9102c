package service

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "dltally/internal/platform/errors"
	"dltally/internal/platform/store/pgtest"
	kit "dltally/internal/platform/testkit"
	"dltally/internal/services/api/summary/domain"
	"dltally/internal/services/api/summary/repo"

	"github.com/google/go-cmp/cmp"
)

type fakeRepo struct {
	rows    []repo.RowDay
	methods []repo.RowMethod
	err     error

	from, to time.Time
}

func (f *fakeRepo) Window(_ context.Context, from, to time.Time) ([]repo.RowDay, error) {
	f.from, f.to = from, to
	return f.rows, f.err
}

func (f *fakeRepo) ByMethod(_ context.Context, from, to time.Time) ([]repo.RowMethod, error) {
	f.from, f.to = from, to
	return f.methods, f.err
}

func TestNew_Guards(t *testing.T) {
	s, _ := pgtest.Mock(t)
	kit.MustPanic(t, func() { New(nil, repo.NewPG(), 0) })
	kit.MustPanic(t, func() { New(s.PG, nil, 0) })
	if svc := New(s.PG, repo.NewPG(), 0); svc.maxDays != DefaultMaxWindowDays {
		t.Fatalf("maxDays = %d", svc.maxDays)
	}
}

func TestWindow_MapsRows(t *testing.T) {
	at := time.Date(2025, 8, 4, 3, 0, 0, 0, time.FixedZone("X", 3600))
	f := &fakeRepo{rows: []repo.RowDay{{Day: kit.Day("2025-08-01"), Delta: 5, Method: "even", DerivedAt: at}}}
	s := &Svc{Repo: f, maxDays: 31}

	got, err := s.Window(context.Background(), domain.WindowInput{From: "2025-08-01", To: "2025-08-03"})
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.Row{{Day: "2025-08-01", Delta: 5, Method: "even", DerivedAt: at.UTC()}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	if !f.from.Equal(kit.Day("2025-08-01")) || !f.to.Equal(kit.Day("2025-08-03")) {
		t.Fatalf("range = %v..%v", f.from, f.to)
	}
}

func TestWindow_Validation(t *testing.T) {
	s := &Svc{Repo: &fakeRepo{}, maxDays: 7}
	cases := []struct {
		name  string
		in    domain.WindowInput
		field string
	}{
		{"bad from", domain.WindowInput{From: "08/01/2025", To: "2025-08-03"}, "from"},
		{"bad to", domain.WindowInput{From: "2025-08-01", To: "nope"}, "to"},
		{"reversed", domain.WindowInput{From: "2025-08-03", To: "2025-08-01"}, "from"},
		{"too wide", domain.WindowInput{From: "2025-08-01", To: "2025-08-08"}, "to"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Window(context.Background(), tc.in)
			e, ok := perr.As(err)
			if !ok || e.Code() != perr.ErrorCodeInvalidArgument || e.Field() != tc.field {
				t.Fatalf("err = %v", err)
			}
		})
	}

	// exactly maxDays is fine
	if _, err := s.Window(context.Background(), domain.WindowInput{From: "2025-08-01", To: "2025-08-07"}); err != nil {
		t.Fatalf("7 day window: %v", err)
	}
}

func TestWindow_RepoError(t *testing.T) {
	s := &Svc{Repo: &fakeRepo{err: errors.New("conn reset")}, maxDays: 31}
	_, err := s.Window(context.Background(), domain.WindowInput{From: "2025-08-01", To: "2025-08-01"})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("err = %v", err)
	}
}

func TestTotals_SumsAndCountsMissing(t *testing.T) {
	f := &fakeRepo{methods: []repo.RowMethod{
		{Method: "even", Days: 2, Delta: 9},
		{Method: "observed", Days: 5, Delta: 40},
	}}
	s := &Svc{Repo: f, maxDays: 31}

	got, err := s.Totals(context.Background(), domain.WindowInput{From: "2025-08-01", To: "2025-08-10"})
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Totals{
		From: "2025-08-01", To: "2025-08-10", Days: 10, Missing: 3, Delta: 49,
		ByMethod: []domain.MethodTotal{{Method: "even", Days: 2, Delta: 9}, {Method: "observed", Days: 5, Delta: 40}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("totals (-want +got):\n%s", diff)
	}
}

func TestTotals_EmptyWindow(t *testing.T) {
	s := &Svc{Repo: &fakeRepo{}, maxDays: 31}
	got, err := s.Totals(context.Background(), domain.WindowInput{From: "2025-08-01", To: "2025-08-01"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Days != 1 || got.Missing != 1 || got.Delta != 0 || got.ByMethod == nil {
		t.Fatalf("totals = %+v", got)
	}
}
