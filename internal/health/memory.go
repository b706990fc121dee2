package health

import (
	"context"
	"fmt"
	"runtime"
)

// MemoryChecker reports unhealthy when the heap grows past a byte limit.
type MemoryChecker struct {
	maxHeapBytes uint64
}

// NewMemoryChecker creates a new memory checker. A zero limit disables
// the threshold and the check always passes.
func NewMemoryChecker(maxHeapBytes uint64) *MemoryChecker {
	return &MemoryChecker{maxHeapBytes: maxHeapBytes}
}

// Name returns the name of the checker.
func (m *MemoryChecker) Name() string {
	return "memory"
}

// Check performs the memory check.
func (m *MemoryChecker) Check(ctx context.Context) error {
	if m.maxHeapBytes == 0 {
		return nil
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	if stats.HeapAlloc > m.maxHeapBytes {
		return fmt.Errorf("heap %d bytes exceeds limit %d", stats.HeapAlloc, m.maxHeapBytes)
	}
	return nil
}
