package health

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"
)

func fixedReading(v uint64) ReadFunc {
	return func() uint64 { return v }
}

func TestMemoryIndicator_Up(t *testing.T) {
	ind := NewMemoryIndicatorWithReader(DefaultFreeMemoryThreshold, fixedReading(20_000_001))

	h := ind.Health(context.Background())

	assert.Equal(t, h.Status, StatusUp)
	assert.Equal(t, h.Details["freeMemory"], uint64(20_000_001))
}

func TestMemoryIndicator_DownBelowThreshold(t *testing.T) {
	ind := NewMemoryIndicatorWithReader(DefaultFreeMemoryThreshold, fixedReading(1_234_567))

	h := ind.Health(context.Background())

	assert.Equal(t, h.Status, StatusDown)
	assert.Equal(t, h.Details["freeMemory"], uint64(1_234_567))
}

func TestMemoryIndicator_DownAtThreshold(t *testing.T) {
	ind := NewMemoryIndicatorWithReader(DefaultFreeMemoryThreshold, fixedReading(DefaultFreeMemoryThreshold))

	h := ind.Health(context.Background())

	assert.Equal(t, h.Status, StatusDown)
}

func TestNewMemoryIndicator_Defaults(t *testing.T) {
	ind := NewMemoryIndicator(0)
	assert.Equal(t, ind.Threshold(), DefaultFreeMemoryThreshold)

	h := ind.Health(context.Background())
	_, ok := h.Details["freeMemory"].(uint64)
	assert.Check(t, ok, "freeMemory detail should be present")
}

func TestNewMemoryIndicatorWithReader_NilReaderUsesHeap(t *testing.T) {
	ind := NewMemoryIndicatorWithReader(1, nil)

	h := ind.Health(context.Background())
	_, ok := h.Details["freeMemory"].(uint64)
	assert.Check(t, ok)
}
