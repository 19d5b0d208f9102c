package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"dltally/internal/platform/store/pgtest"

	"github.com/google/go-cmp/cmp"
	"github.com/pashagolub/pgxmock/v3"
)

var (
	aug1 = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	aug3 = time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)
)

func TestWindow(t *testing.T) {
	s, mock := pgtest.Mock(t)
	at := time.Date(2025, 8, 4, 3, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT day, delta, method, derived_at\s+FROM daily_summary\s+WHERE day BETWEEN \$1 AND \$2\s+ORDER BY day ASC`).
		WithArgs(aug1, aug3).
		WillReturnRows(pgxmock.NewRows([]string{"day", "delta", "method", "derived_at"}).
			AddRow(aug1, int64(5), "even", at).
			AddRow(aug3, int64(7), "observed", at))

	got, err := NewPG().Bind(s.PG).Window(context.Background(), aug1, aug3)
	if err != nil {
		t.Fatal(err)
	}
	want := []RowDay{
		{Day: aug1, Delta: 5, Method: "even", DerivedAt: at},
		{Day: aug3, Delta: 7, Method: "observed", DerivedAt: at},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
}

func TestByMethod(t *testing.T) {
	s, mock := pgtest.Mock(t)
	mock.ExpectQuery(`GROUP BY method`).
		WithArgs(aug1, aug3).
		WillReturnRows(pgxmock.NewRows([]string{"method", "count", "sum"}).
			AddRow("even", int64(2), int64(9)).
			AddRow("observed", int64(1), int64(4)))

	got, err := NewPG().Bind(s.PG).ByMethod(context.Background(), aug1, aug3)
	if err != nil {
		t.Fatal(err)
	}
	want := []RowMethod{{Method: "even", Days: 2, Delta: 9}, {Method: "observed", Days: 1, Delta: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
}

func TestWindow_QueryError(t *testing.T) {
	s, mock := pgtest.Mock(t)
	boom := errors.New("boom")
	mock.ExpectQuery(`FROM daily_summary`).WillReturnError(boom)
	if _, err := NewPG().Bind(s.PG).Window(context.Background(), aug1, aug3); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
