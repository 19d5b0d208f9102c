package testkit

import (
	"sync"
	"testing"
)

// seams serializes tests that replace package-level variables
var seams sync.Mutex

// Swap sets *target to v until t finishes
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds the seam lock for the rest of t; call it before Swap in
// tests that may run in parallel with other seam users
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}
