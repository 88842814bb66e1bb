package testkit

import (
	"sync"
	"testing"
)

// seams serializes tests that replace package level variables
var seams sync.Mutex

// Swap sets *target to replacement until t finishes
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	prev := *target
	t.Cleanup(func() { *target = prev })
	*target = replacement
}

// Serial holds the seam lock for the rest of t
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}
