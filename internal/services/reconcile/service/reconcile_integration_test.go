//go:build integration_pg

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	gh "dltally/internal/adapters/ingest/github"
	"dltally/internal/core/backfill"
	"dltally/internal/modkit/repokit"
	"dltally/internal/platform/store"
	"dltally/internal/platform/store/pgtest"
	"dltally/internal/services/reconcile/domain"
	"dltally/internal/services/reconcile/repo"
	"dltally/internal/services/reconcile/service"
	snapdom "dltally/internal/services/snapshots/domain"
	snaprepo "dltally/internal/services/snapshots/repo"
	snapsvc "dltally/internal/services/snapshots/service"

	"github.com/google/go-cmp/cmp"
)

func seed(t *testing.T, db repokit.TxRunner, day time.Time, counts map[int64]int64) {
	t.Helper()
	var xs []snapdom.Snapshot
	for id, n := range counts {
		xs = append(xs, snapdom.Snapshot{
			AssetID: id, ReleaseID: 1, Repo: "acme/tool", ReleaseTag: "v1",
			AssetName: "bin", Day: day, DownloadCount: n, CapturedAt: day,
		})
	}
	err := repokit.TxBind(context.Background(), db, snaprepo.NewPG(), func(r snaprepo.Repo) error {
		_, err := r.UpsertSnapshots(context.Background(), xs)
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func readSummary(t *testing.T, q repokit.Queryer) []domain.DailySummaryEntry {
	t.Helper()
	out, err := store.Many(context.Background(), q, func(r store.Row) (domain.DailySummaryEntry, error) {
		var e domain.DailySummaryEntry
		var m string
		err := r.Scan(&e.Day, &e.Delta, &m, &e.DerivedAt)
		e.Method = domain.Method(m)
		e.Day = e.Day.UTC()
		return e, err
	}, `SELECT day, delta, method, derived_at FROM daily_summary ORDER BY day`)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	return out
}

func TestReconcile_EndToEnd(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()
	day := func(s string) time.Time { d, _ := time.Parse(time.DateOnly, s); return d }

	svc, err := service.New(st.PG, repo.NewPG(), nil, service.Config{Params: backfill.DefaultParams(), StatementTimeout: 5 * time.Second})
	if err != nil {
		t.Fatal(err)
	}

	seed(t, st.PG, day("2024-05-07"), map[int64]int64{1: 100, 2: 50})
	if _, err := svc.Reconcile(ctx, day("2024-05-07")); err != nil {
		t.Fatalf("first run: %v", err)
	}

	seed(t, st.PG, day("2024-05-10"), map[int64]int64{1: 105, 2: 52, 3: 3})
	res, err := svc.Reconcile(ctx, day("2024-05-10"))
	if err != nil {
		t.Fatalf("gap run: %v", err)
	}
	if res.GapDays != 3 || res.Total != 10 {
		t.Fatalf("result = %+v", res)
	}

	got := readSummary(t, st.PG)
	var deltas []int64
	for _, e := range got {
		deltas = append(deltas, e.Delta)
	}
	if diff := cmp.Diff([]int64{0, 4, 3, 3}, deltas); diff != "" {
		t.Fatalf("summary deltas (-want +got):\n%s", diff)
	}
	if got[0].Method != domain.MethodInitial || got[1].Method != domain.MethodEven {
		t.Fatalf("methods = %+v", got)
	}

	// rerun leaves rows byte-identical
	res2, err := svc.Reconcile(ctx, day("2024-05-10"))
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if res2.Written != 0 {
		t.Fatalf("rerun wrote %d rows", res2.Written)
	}
	if diff := cmp.Diff(got, readSummary(t, st.PG)); diff != "" {
		t.Fatalf("rerun changed rows:\n%s", diff)
	}
}

// feed serves one release per repo with the given asset counts
type feed struct {
	counts map[string]map[int64]int64
	down   map[string]bool
}

func (f feed) ListReleases(_ context.Context, full string) ([]gh.Release, error) {
	if f.down[full] {
		return nil, errors.New("unavailable")
	}
	var assets []gh.Asset
	for id, n := range f.counts[full] {
		assets = append(assets, gh.Asset{ID: id, Name: "bin", DownloadCount: n})
	}
	return []gh.Release{{ID: 1, TagName: "v1", Assets: assets}}, nil
}

func TestCaptureThenReconcile_PartialOutage(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()
	day := func(s string) time.Time { d, _ := time.Parse(time.DateOnly, s); return d }
	repos := []string{"acme/a", "acme/b"}

	rec, err := service.New(st.PG, repo.NewPG(), nil, service.Config{Params: backfill.DefaultParams()})
	if err != nil {
		t.Fatal(err)
	}
	runDay := func(d string, f feed) {
		t.Helper()
		capt := snapsvc.New(st.PG, snaprepo.NewPG(), f, nil, snapsvc.Config{Repos: repos})
		if _, err := capt.Capture(ctx, day(d)); err != nil {
			t.Fatalf("capture %s: %v", d, err)
		}
		if _, err := rec.Reconcile(ctx, day(d)); err != nil {
			t.Fatalf("reconcile %s: %v", d, err)
		}
	}

	runDay("2024-05-08", feed{counts: map[string]map[int64]int64{"acme/a": {1: 100}, "acme/b": {2: 1000}}})
	runDay("2024-05-09", feed{counts: map[string]map[int64]int64{"acme/a": {1: 110}}, down: map[string]bool{"acme/b": true}})
	runDay("2024-05-10", feed{counts: map[string]map[int64]int64{"acme/a": {1: 120}, "acme/b": {2: 1005}}})

	var deltas []int64
	for _, e := range readSummary(t, st.PG) {
		deltas = append(deltas, e.Delta)
	}
	// 25 new downloads between 05-08 and 05-10, none counted twice
	if diff := cmp.Diff([]int64{0, 13, 12}, deltas); diff != "" {
		t.Fatalf("summary deltas (-want +got):\n%s", diff)
	}
}
