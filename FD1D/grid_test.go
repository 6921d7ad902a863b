package FD1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformGrid(t *testing.T) {
	g, err := NewUniformGrid(0, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Nx)
	assert.True(t, near(g.Dx, 0.5))
	assert.True(t, near(g.X.AtVec(0), 0))
	assert.True(t, near(g.X.AtVec(2), 1))
	assert.Equal(t, 2.0, g.X.AtVec(4))
}

func TestUniformGridSpacing(t *testing.T) {
	g, err := NewUniformGridSpacing(1000, 100)
	require.NoError(t, err)
	assert.Equal(t, 11, g.Nx)
	assert.True(t, near(g.Dx, 100))
	assert.Equal(t, 1000.0, g.X.AtVec(10))

	// Spacing that does not divide the length is adjusted, not truncated
	g, err = NewUniformGridSpacing(1000, 300)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Nx)
	assert.True(t, near(g.Dx, 1000./3.))
	assert.Equal(t, 1000.0, g.X.AtVec(3))
}

func TestGridValidation(t *testing.T) {
	_, err := NewUniformGrid(0, 1, 1)
	assert.Error(t, err)
	_, err = NewUniformGrid(1, 1, 5)
	assert.Error(t, err)
	_, err = NewUniformGridSpacing(-10, 1)
	assert.Error(t, err)
	_, err = NewUniformGridSpacing(10, 0)
	assert.Error(t, err)
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Max(math.Abs(a), 1) {
		l = true
	}
	return
}
