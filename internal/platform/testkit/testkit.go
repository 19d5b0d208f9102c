// Package testkit holds the small assertions, seams and fixtures shared by
// dltally tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ptime "dltally/internal/platform/time"

	"github.com/coder/quartz"
)

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
}

// MustContain fails t unless out contains want. Long outputs (log buffers)
// are dumped to a temp file instead of the failure message.
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	if len(out) <= 512 {
		t.Fatalf("%q not found in %q", want, out)
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(out), 0o600)
	t.Fatalf("%q not found; %d bytes of output in %s", want, len(out), dump)
}

// Day parses a YYYY-MM-DD fixture and panics on a typo
func Day(s string) time.Time {
	d, err := ptime.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ClockAt returns a mock clock reading at
func ClockAt(t *testing.T, at time.Time) *quartz.Mock {
	t.Helper()
	mc := quartz.NewMock(t)
	mc.Set(at)
	return mc
}
