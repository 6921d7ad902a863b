package SaintVenant1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReach(t *testing.T) (c *SaintVenant1D) {
	ch, err := NewRectangularChannel(1000, 10, 0.0001, 0.03)
	require.NoError(t, err)
	c, err = New(ch, 100)
	require.NoError(t, err)
	require.Equal(t, 11, c.Grid.Nx)
	return
}

func TestFiveExplicitSteps(t *testing.T) {
	c := testReach(t)
	require.NoError(t, c.SetUniformInitial(2.0, 20.0))
	var tSum float64
	for i := 0; i < 5; i++ {
		dt := c.ComputeTimestep(0.5)
		tNew, err := c.AdvanceOneStep(dt)
		require.NoError(t, err)
		tSum += dt
		assert.True(t, near(tNew, tSum))
	}
	assert.Equal(t, 5, c.TimeStep)
	assert.True(t, near(c.Time, tSum))
	for i := 0; i < c.Grid.Nx; i++ {
		assert.Greater(t, c.H.AtVec(i), 0.)
	}
}

func TestTimestepSatisfiesCourantBound(t *testing.T) {
	c := testReach(t)
	require.NoError(t, c.SetUniformInitial(2.0, 20.0))
	cmax, cmean := c.WaveSpeed()
	// v = 1 m/s, c = sqrt(9.81*2); uniform state so max equals mean
	assert.True(t, near(cmax, 1+math.Sqrt(9.81*2.0)))
	assert.True(t, near(cmean, cmax))
	for _, cr := range []float64{0.3, 0.5, 0.8, 1.0} {
		dt := c.ComputeTimestep(cr)
		assert.LessOrEqual(t, cmax*dt/c.Grid.Dx, cr*(1+1.e-09))
	}
}

func TestTimestepClamping(t *testing.T) {
	{
		// Near-still shallow water: raw CFL step would be huge
		c := testReach(t)
		require.NoError(t, c.SetUniformInitial(0.001, 0))
		assert.Equal(t, MaxDT, c.ComputeTimestep(0.5))
	}
	{
		// Dry reach: no signal at all
		c := testReach(t)
		require.NoError(t, c.SetUniformInitial(0, 0))
		assert.Equal(t, MaxDT, c.ComputeTimestep(0.5))
	}
	{
		// Torrential flow on a fine grid: raw CFL step would stall the run
		ch, err := NewRectangularChannel(10, 10, 0.0001, 0.03)
		require.NoError(t, err)
		c, err := New(ch, 1)
		require.NoError(t, err)
		require.NoError(t, c.SetUniformInitial(50.0, 1.e5))
		assert.Equal(t, MinDT, c.ComputeTimestep(0.5))
	}
}

func TestSingleStepDeterminism(t *testing.T) {
	build := func() *SaintVenant1D {
		c := testReach(t)
		require.NoError(t, c.SetUniformInitial(2.0, 20.0))
		c.SetBoundaryConditions(
			StepHydrograph{Before: 20, After: 30, At: 0},
			ConstantDepth{Depth: 2.0},
		)
		return c
	}
	c1, c2 := build(), build()
	for i := 0; i < 3; i++ {
		_, err1 := c1.AdvanceOneStep(5.0)
		_, err2 := c2.AdvanceOneStep(5.0)
		require.NoError(t, err1)
		require.NoError(t, err2)
	}
	assert.Equal(t, c1.H.DataP(), c2.H.DataP())
	assert.Equal(t, c1.Q.DataP(), c2.Q.DataP())
	assert.Equal(t, c1.Time, c2.Time)
}

func TestApproximateMassConservation(t *testing.T) {
	// Closed horizontal reach: zero discharge pinned at both ends, a
	// smooth mound of water slumping under gravity
	ch, err := NewRectangularChannel(1000, 10, 0, 0.03)
	require.NoError(t, err)
	c, err := New(ch, 100)
	require.NoError(t, err)
	nx := c.Grid.Nx
	h := make([]float64, nx)
	q := make([]float64, nx)
	for i := 0; i < nx; i++ {
		x := c.Grid.X.AtVec(i)
		h[i] = 2 + math.Exp(-(x-500)*(x-500)/(150*150))
	}
	require.NoError(t, c.SetInitialConditions(h, q))
	// Discharge-only closure: keep the extrapolated depth at the ends
	c.SetBoundaryConditions(constantQ(0), constantQ(0))
	mass0 := c.H.Sum() * c.Grid.Dx * ch.Width
	for i := 0; i < 5; i++ {
		dt := c.ComputeTimestep(0.5)
		_, err = c.AdvanceOneStep(dt)
		require.NoError(t, err)
	}
	mass := c.H.Sum() * c.Grid.Dx * ch.Width
	assert.InEpsilon(t, mass0, mass, 0.05)
}

type constantQ float64

func (q constantQ) Values(t float64) BoundaryValue {
	return DischargeBoundary(float64(q))
}

func TestBoundaryInjectionExactness(t *testing.T) {
	c := testReach(t)
	require.NoError(t, c.SetUniformInitial(2.0, 20.0))
	// Marker callables that encode the evaluation time
	c.SetBoundaryConditions(
		BoundaryFunc(func(tt float64) (float64, float64) { return 1.25 + tt, 4.5 - tt }),
		BoundaryFunc(func(tt float64) (float64, float64) { return 2.5, tt }),
	)
	nx := c.Grid.Nx
	tNew, err := c.AdvanceOneStep(2.0)
	require.NoError(t, err)
	// Callables are evaluated at the advanced time, not the old one
	assert.Equal(t, 1.25+tNew, c.H.AtVec(0))
	assert.Equal(t, 4.5-tNew, c.Q.AtVec(0))
	assert.Equal(t, 2.5, c.H.AtVec(nx-1))
	assert.Equal(t, tNew, c.Q.AtVec(nx-1))
}

func TestUninitializedErrors(t *testing.T) {
	c := testReach(t)
	_, err := c.AdvanceOneStep(1.0)
	assert.ErrorIs(t, err, ErrUninitialized)
	_, err = c.Run(3600, 300, false)
	assert.ErrorIs(t, err, ErrUninitialized)

	require.NoError(t, c.SetUniformInitial(2.0, 20.0))
	_, err = c.AdvanceOneStep(0)
	assert.ErrorIs(t, err, ErrBadTimestep)
	assert.Error(t, c.SetFixedTimestep(-1))
}

func TestInitialConditionValidation(t *testing.T) {
	c := testReach(t)
	nx := c.Grid.Nx
	short := make([]float64, nx-1)
	assert.ErrorIs(t, c.SetInitialConditions(short, short), ErrBadInitial)
	h := make([]float64, nx)
	q := make([]float64, nx)
	h[3] = -0.5
	assert.ErrorIs(t, c.SetInitialConditions(h, q), ErrBadInitial)
	h[3] = math.NaN()
	assert.ErrorIs(t, c.SetInitialConditions(h, q), ErrBadInitial)
}

func TestRunRecordsAtCadence(t *testing.T) {
	c := testReach(t)
	require.NoError(t, c.SetUniformInitial(2.0, 20.0))
	require.NoError(t, c.SetFixedTimestep(10))
	res, err := c.Run(100, 20, false)
	require.NoError(t, err)
	require.Equal(t, 6, len(res.Times))
	for i, want := range []float64{0, 20, 40, 60, 80, 100} {
		assert.True(t, near(res.Times[i], want))
	}
	assert.Equal(t, 10, res.Steps)
	assert.True(t, near(c.Time, 100))
	// Snapshot matrices are [outputIndex][nodeIndex]
	nr, nc := res.H.Dims()
	assert.Equal(t, 6, nr)
	assert.Equal(t, c.Grid.Nx, nc)
	assert.Equal(t, c.Grid.Nx, res.X.Len())
	// First record is the initial condition
	assert.True(t, near(res.H.At(0, 5), 2.0))
	assert.True(t, near(res.Q.At(0, 5), 20.0))
}

func TestInstabilityAbortsWithPartialResults(t *testing.T) {
	c := testReach(t)
	// Period-4 depth perturbation amplified by a far-super-unitary
	// Courant number
	nx := c.Grid.Nx
	h := make([]float64, nx)
	q := make([]float64, nx)
	for i := 0; i < nx; i++ {
		h[i] = 2 + math.Sin(float64(i)*math.Pi/2)
	}
	require.NoError(t, c.SetInitialConditions(h, q))
	require.NoError(t, c.SetFixedTimestep(60))
	res, err := c.Run(3600, 300, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnstable)
	var ie *InstabilityError
	require.ErrorAs(t, err, &ie)
	assert.Greater(t, ie.Step, 0)
	assert.GreaterOrEqual(t, ie.Node, 0)
	// Partial results up to the failing step are still returned
	require.NotNil(t, res)
	require.GreaterOrEqual(t, len(res.Times), 1)
	assert.Equal(t, 0., res.Times[0])
	// The failed step was not committed
	ok, _ := c.H.IsFinite()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, c.H.Min(), 0.)
}

func TestDisturbanceCausality(t *testing.T) {
	c := testReach(t)
	// Start in Manning equilibrium so the only transient is the upstream
	// step: at the normal discharge Sf balances S0 exactly and the
	// undisturbed reach holds (h0, q0) indefinitely
	q0 := c.Channel.UniformFlow(2.0)
	require.NoError(t, c.SetUniformInitial(2.0, q0))
	c.SetBoundaryConditions(
		StepHydrograph{Before: q0, After: q0 + 10, At: 0},
		ConstantDepth{Depth: 2.0},
	)
	res, err := c.Run(3600, 60, false)
	require.NoError(t, err)
	down := c.Grid.Nx - 1
	// Physical arrival time of the disturbance at the downstream end
	arrival := c.Channel.Length / (q0/c.Channel.Area(2.0) + math.Sqrt(9.81*2.0))
	qPrev := q0
	for i, tt := range res.Times {
		qd := res.Q.At(i, down)
		if tt < arrival/2 {
			// No downstream response before the wave can get there
			assert.InDelta(t, q0, qd, 0.05)
		}
		if tt > 2*arrival {
			// Once arrived, the rise is monotone (the scheme is diffusive)
			assert.GreaterOrEqual(t, qd, qPrev-0.05)
			qPrev = qd
		}
	}
	// By the end of the run the step has propagated through
	assert.Greater(t, res.Q.At(len(res.Times)-1, down), q0+5)
}
