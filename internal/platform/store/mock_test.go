package store

import (
	"context"
	"sync"
	"testing"

	"dltally/internal/platform/logger"
	"dltally/internal/platform/store/pg"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
)

type recTracer struct {
	mu  sync.Mutex
	evs []pg.QueryEvent
}

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) {
	r.mu.Lock()
	r.evs = append(r.evs, ev)
	r.mu.Unlock()
}

// newMockStore wires a pgxmock pool through the real adapter
func newMockStore(t *testing.T, tr pg.QueryTracer) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatal(err)
	}
	s, err := FromPG(pg.New(mock, tr, 0))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet pg expectations: %v", err)
		}
	})
	return s, mock
}

func discard() logger.Logger { return zerolog.Nop() }
