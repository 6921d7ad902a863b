package SaintVenant1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepHydrograph(t *testing.T) {
	bc := StepHydrograph{Before: 20, After: 30, At: 600}
	for _, tc := range []struct {
		t, want float64
	}{
		{0, 20}, {599.9, 20}, {600, 30}, {3600, 30},
	} {
		bv := bc.Values(tc.t)
		assert.True(t, bv.SetDischarge)
		assert.False(t, bv.SetDepth)
		assert.Equal(t, tc.want, bv.Discharge)
	}
}

func TestTidalBoundary(t *testing.T) {
	bc := TidalBoundary{MeanDepth: 3, Amplitude: 0.5, Period: 44712}
	bv := bc.Values(0)
	assert.True(t, bv.SetDepth)
	assert.False(t, bv.SetDischarge)
	assert.True(t, near(bv.Depth, 3))
	// High tide at a quarter period
	bv = bc.Values(44712. / 4.)
	assert.True(t, near(bv.Depth, 3.5))
	// Phase shifts the signal
	bc.Phase = math.Pi
	bv = bc.Values(44712. / 4.)
	assert.True(t, near(bv.Depth, 2.5))
}

func TestBoundaryFunc(t *testing.T) {
	bc := BoundaryFunc(func(tt float64) (float64, float64) { return tt, 2 * tt })
	bv := bc.Values(10)
	assert.True(t, bv.SetDepth)
	assert.True(t, bv.SetDischarge)
	assert.Equal(t, 10., bv.Depth)
	assert.Equal(t, 20., bv.Discharge)
}
