// Package pgtest provides Postgres doubles for repository tests: a pgxmock
// pool behind the real store adapter, and (integration_pg) a throwaway container
package pgtest

import (
	"testing"

	"dltally/internal/platform/store"
	"dltally/internal/platform/store/pg"

	"github.com/pashagolub/pgxmock/v3"
)

// Mock returns a Store whose PG seam runs through the production adapter
// against a pgxmock pool; unmet expectations fail the test on cleanup
func Mock(t *testing.T) (*store.Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	s, err := store.FromPG(pg.New(mock, nil, 0))
	if err != nil {
		t.Fatalf("store from mock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet pg expectations: %v", err)
		}
	})
	return s, mock
}
