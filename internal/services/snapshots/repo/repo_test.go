package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"dltally/internal/platform/store/pgtest"
	"dltally/internal/services/snapshots/domain"

	"github.com/pashagolub/pgxmock/v3"
)

func snap(id int64, day time.Time, count int64) domain.Snapshot {
	return domain.Snapshot{
		AssetID: id, ReleaseID: 7, Repo: "acme/tool", ReleaseTag: "v1.0.0",
		AssetName: "tool.tar.gz", Day: day, DownloadCount: count, CapturedAt: day.Add(time.Hour),
	}
}

func TestUpsertSnapshots_SingleStatement(t *testing.T) {
	s, mock := pgtest.Mock(t)
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	xs := []domain.Snapshot{snap(1, day, 10), snap(2, day, 0)}

	mock.ExpectExec(`INSERT INTO asset_snapshots .* VALUES \(\$1,.*\$10\),\(\$11,.*\$20\) ON CONFLICT \(asset_id, snapshot_date\) DO UPDATE`).
		WithArgs(
			int64(1), day, int64(7), "acme/tool", "v1.0.0", "tool.tar.gz", int64(10), false, false, pgxmock.AnyArg(),
			int64(2), day, int64(7), "acme/tool", "v1.0.0", "tool.tar.gz", int64(0), false, false, pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	n, err := NewPG().Bind(s.PG).UpsertSnapshots(context.Background(), xs)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows = %d want 2", n)
	}
}

func TestUpsertSnapshots_Chunks(t *testing.T) {
	s, mock := pgtest.Mock(t)
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	xs := make([]domain.Snapshot, chunkSize+1)
	for i := range xs {
		xs[i] = snap(int64(i+1), day, int64(i))
	}

	mock.ExpectExec(`INSERT INTO asset_snapshots`).WillReturnResult(pgxmock.NewResult("INSERT", chunkSize))
	mock.ExpectExec(`INSERT INTO asset_snapshots`).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	n, err := NewPG().Bind(s.PG).UpsertSnapshots(context.Background(), xs)
	if err != nil || n != chunkSize+1 {
		t.Fatalf("got %d, %v", n, err)
	}
}

func TestUpsertSnapshots_EmptyIsNoop(t *testing.T) {
	s, _ := pgtest.Mock(t)
	n, err := NewPG().Bind(s.PG).UpsertSnapshots(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("got %d, %v", n, err)
	}
}

func TestUpsertSnapshots_Error(t *testing.T) {
	s, mock := pgtest.Mock(t)
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	boom := errors.New("boom")
	mock.ExpectExec(`INSERT INTO asset_snapshots`).WillReturnError(boom)

	if _, err := NewPG().Bind(s.PG).UpsertSnapshots(context.Background(), []domain.Snapshot{snap(1, day, 1)}); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}
