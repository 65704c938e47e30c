package health

import (
	"context"
	"runtime"
)

// Status is the up/down outcome of a health check.
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// DefaultFreeMemoryThreshold is the free-memory reading, in bytes, that must be
// exceeded for MemoryIndicator to report UP.
const DefaultFreeMemoryThreshold uint64 = 20_000_000

// Health is the result of a single health check.
type Health struct {
	Status  Status         `json:"status"`
	Details map[string]any `json:"details"`
}

// Up creates an UP result with the given details.
func Up(details map[string]any) Health {
	return Health{Status: StatusUp, Details: details}
}

// Down creates a DOWN result with the given details.
func Down(details map[string]any) Health {
	return Health{Status: StatusDown, Details: details}
}

// Indicator reports the health of one component.
//
// Implementations must be safe for concurrent use.
type Indicator interface {
	Health(ctx context.Context) Health
}

// ReadFunc returns a free-resource reading.
type ReadFunc func() uint64

// MemoryIndicator reports UP while the free heap reading stays above Threshold.
// The reading is a liveness heuristic, not an accurate resource measurement.
type MemoryIndicator struct {
	threshold uint64
	read      ReadFunc
}

// NewMemoryIndicator creates an indicator reading free heap from runtime.MemStats.
// A zero threshold selects DefaultFreeMemoryThreshold.
func NewMemoryIndicator(threshold uint64) *MemoryIndicator {
	return NewMemoryIndicatorWithReader(threshold, FreeHeap)
}

// NewMemoryIndicatorWithReader creates an indicator using a custom reading.
func NewMemoryIndicatorWithReader(threshold uint64, read ReadFunc) *MemoryIndicator {
	if threshold == 0 {
		threshold = DefaultFreeMemoryThreshold
	}
	if read == nil {
		read = FreeHeap
	}
	return &MemoryIndicator{threshold: threshold, read: read}
}

// Threshold returns the configured threshold.
func (m *MemoryIndicator) Threshold() uint64 {
	return m.threshold
}

// Health performs the memory check. The reading is always included as freeMemory.
func (m *MemoryIndicator) Health(ctx context.Context) Health {
	free := m.read()
	details := map[string]any{"freeMemory": free}
	if free > m.threshold {
		return Up(details)
	}
	return Down(details)
}

// FreeHeap returns heap memory obtained from the OS that is not currently allocated.
func FreeHeap() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	if stats.HeapSys < stats.HeapAlloc {
		return 0
	}
	return stats.HeapSys - stats.HeapAlloc
}
