package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	"dltally/internal/platform/store"
	kit "dltally/internal/platform/testkit"
)

type fakeTag struct{}

func (fakeTag) String() string      { return "SET" }
func (fakeTag) RowsAffected() int64 { return 0 }

// fakeTx records statements and runs fn with itself as the Queryer
type fakeTx struct {
	execs []string
	err   error
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return fakeTag{}, f.err
}
func (f *fakeTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) store.Row        { return nil }
func (f *fakeTx) Tx(_ context.Context, fn func(Queryer) error) error        { return fn(f) }

var _ store.TxRunner = (*fakeTx)(nil)

func TestWithBeginHooks_RunsBeforeFn(t *testing.T) {
	inner := &fakeTx{}
	tx := WithBeginHooks(inner, StatementTimeout(1500*time.Millisecond), StatementTimeout(0))

	err := tx.Tx(context.Background(), func(q Queryer) error {
		_, err := q.Exec(context.Background(), "SELECT 1")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(inner.execs) != 2 || inner.execs[0] != "SET LOCAL statement_timeout = 1500" || inner.execs[1] != "SELECT 1" {
		t.Fatalf("execs = %v", inner.execs)
	}
}

func TestWithBeginHooks_HookErrorAborts(t *testing.T) {
	inner := &fakeTx{err: errors.New("bad")}
	called := false
	err := WithBeginHooks(inner, StatementTimeout(time.Second)).Tx(context.Background(), func(Queryer) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("hook failure should abort: err=%v called=%v", err, called)
	}
}

type named struct{ q Queryer }

func TestTxBindAndMustBind(t *testing.T) {
	inner := &fakeTx{}
	b := BindFunc[named](func(q Queryer) named { return named{q: q} })

	var got named
	if err := TxBind(context.Background(), inner, b, func(r named) error { got = r; return nil }); err != nil {
		t.Fatal(err)
	}
	if got.q != Queryer(inner) {
		t.Fatalf("repo not bound to tx queryer")
	}
	kit.MustPanic(t, func() { _ = MustBind[named](b, nil) })
}

func TestTxBind_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	b := BindFunc[named](func(q Queryer) named { return named{q: q} })
	if err := TxBind(context.Background(), &fakeTx{}, b, func(named) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
