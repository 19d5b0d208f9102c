//go:build integration_pg

package store_test

import (
	"context"
	"errors"
	"testing"

	"dltally/internal/platform/store"
	"dltally/internal/platform/store/pgtest"

	"github.com/rs/zerolog"
)

func TestMigrateUp_IsRepeatable(t *testing.T) {
	dsn := pgtest.Start(t)
	log := zerolog.Nop()

	v1, err := store.MigrateUp(dsn, log)
	if err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	v2, err := store.MigrateUp(dsn, log)
	if err != nil || v2 != v1 || v1 != 2 {
		t.Fatalf("second migrate = %d, %v (first %d)", v2, err, v1)
	}
}

func TestTx_RollbackLeavesNoRows(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	stop := errors.New("stop")

	err := s.PG.Tx(ctx, func(q store.RowQuerier) error {
		if err := store.ExecOne(ctx, q,
			`INSERT INTO daily_summary (day, delta, method) VALUES ('2025-01-01', 5, 'observed')`); err != nil {
			return err
		}
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Tx err = %v", err)
	}

	n, err := store.Scalar[int64](ctx, s.PG, `SELECT count(*) FROM daily_summary`)
	if err != nil || n != 0 {
		t.Fatalf("rows after rollback = %d, %v", n, err)
	}
}

func TestCheckConstraint_NegativeCounter(t *testing.T) {
	s := pgtest.Open(t)
	_, err := s.PG.Exec(context.Background(), `
		INSERT INTO asset_snapshots (asset_id, snapshot_date, release_id, repo, asset_name, download_count)
		VALUES (1, '2025-01-01', 1, 'acme/tool', 'tool.tar.gz', -1)`)
	if err == nil {
		t.Fatalf("negative download_count should violate the check")
	}
}
