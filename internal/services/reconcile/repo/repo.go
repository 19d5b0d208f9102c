// Package repo reads snapshots and writes the daily summary in Postgres
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dltally/internal/modkit/repokit"
	"dltally/internal/platform/store"
	"dltally/internal/services/reconcile/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Repo { return &pg{q: q} }

// Repo is the storage surface of one reconcile
type Repo interface {
	// LastSnapshotBefore returns the latest snapshot day strictly before day
	LastSnapshotBefore(ctx context.Context, day time.Time) (time.Time, bool, error)
	// Delta sums newer.count - coalesce(older.count, 0) over assets present on newer
	Delta(ctx context.Context, older, newer time.Time) (int64, error)
	// Baseline returns up to limit summary deltas dated <= through, oldest first
	Baseline(ctx context.Context, through time.Time, limit int) ([]int64, error)
	// UpsertSummaries writes xs keyed by day; returns rows inserted or changed
	UpsertSummaries(ctx context.Context, xs []domain.DailySummaryEntry) (int64, error)
}

const (
	lastSnapshotSQL = `SELECT MAX(snapshot_date) FROM asset_snapshots WHERE snapshot_date < $1`

	deltaSQL = `SELECT COALESCE(SUM(n.download_count - COALESCE(o.download_count, 0)), 0)::bigint
		FROM asset_snapshots n
		LEFT JOIN asset_snapshots o
			ON o.asset_id = n.asset_id AND o.snapshot_date = $1
		WHERE n.snapshot_date = $2`

	baselineSQL = `SELECT delta FROM (
			SELECT day, delta FROM daily_summary
			WHERE day <= $1
			ORDER BY day DESC
			LIMIT $2
		) b ORDER BY day ASC`

	// identical (delta, method) leaves the row and its derived_at untouched
	upsertTail = ` ON CONFLICT (day) DO UPDATE SET
			delta = EXCLUDED.delta,
			method = EXCLUDED.method,
			derived_at = EXCLUDED.derived_at
		WHERE daily_summary.delta IS DISTINCT FROM EXCLUDED.delta
			OR daily_summary.method IS DISTINCT FROM EXCLUDED.method`
)

// LastSnapshotBefore implements Repo
func (s *pg) LastSnapshotBefore(ctx context.Context, day time.Time) (time.Time, bool, error) {
	last, err := store.Scalar[*time.Time](ctx, s.q, lastSnapshotSQL, day)
	if err != nil {
		return time.Time{}, false, err
	}
	if last == nil {
		return time.Time{}, false, nil
	}
	return last.UTC(), true, nil
}

// Delta implements Repo
func (s *pg) Delta(ctx context.Context, older, newer time.Time) (int64, error) {
	return store.Scalar[int64](ctx, s.q, deltaSQL, older, newer)
}

// Baseline implements Repo
func (s *pg) Baseline(ctx context.Context, through time.Time, limit int) ([]int64, error) {
	if limit <= 0 {
		return nil, nil
	}
	return store.Many(ctx, s.q, scanInt64, baselineSQL, through, limit)
}

func scanInt64(r store.Row) (int64, error) {
	var v int64
	err := r.Scan(&v)
	return v, err
}

// UpsertSummaries implements Repo
func (s *pg) UpsertSummaries(ctx context.Context, xs []domain.DailySummaryEntry) (int64, error) {
	if len(xs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO daily_summary (day, delta, method, derived_at) VALUES `)
	args := make([]any, 0, len(xs)*4)
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*4 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d)", base, base+1, base+2, base+3)
		args = append(args, x.Day, x.Delta, string(x.Method), x.DerivedAt)
	}
	sb.WriteString(upsertTail)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
