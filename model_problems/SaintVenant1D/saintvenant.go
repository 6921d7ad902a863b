package SaintVenant1D

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/openhydro/goswe/FD1D"
	"github.com/openhydro/goswe/utils"
)

const (
	// Engineering-sane clamp on the adaptive time step. The lower bound
	// keeps a near-dry start from stalling the run loop, the upper bound
	// keeps a near-still start from jumping past the dynamics.
	MinDT = 0.01 // s
	MaxDT = 60.0 // s

	DefaultCourant = 0.5

	timeTol = 1.e-09
)

// SaintVenant1D integrates the 1D shallow-water (Saint-Venant) equations
// on a prismatic rectangular reach with the explicit Lax scheme. All
// state is owned by the instance; Advance and Run mutate it in place,
// one atomic step at a time.
type SaintVenant1D struct {
	// Input parameters
	Channel       *RectangularChannel
	Grid          *FD1D.Grid1D
	TargetCourant float64
	AutoDT        bool
	DT            float64 // fixed step when AutoDT is false

	// State: depth and discharge per node. Depth is authoritative; areas
	// are rederived from it every step, never cached.
	H, Q     utils.Vector
	Time     float64
	TimeStep int

	upstream, downstream BoundaryCondition
	initialized          bool
}

func New(ch *RectangularChannel, dx float64) (c *SaintVenant1D, err error) {
	if ch == nil {
		err = ErrBadChannel
		return
	}
	g, err := FD1D.NewUniformGridSpacing(ch.Length, dx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrBadGrid, err)
		return
	}
	c = &SaintVenant1D{
		Channel:       ch,
		Grid:          g,
		TargetCourant: DefaultCourant,
		AutoDT:        true,
	}
	fmt.Printf("Saint-Venant Equations in 1 Dimension, Lax scheme\n")
	fmt.Printf("L = %8.2f m, b = %8.2f m, S0 = %8.6f, n = %6.4f\n",
		ch.Length, ch.Width, ch.Slope, ch.ManningN)
	fmt.Printf("Nx = %d, dx = %8.2f m\n\n", g.Nx, g.Dx)
	return
}

// SetFixedTimestep disables the CFL controller and uses dt for every step.
func (c *SaintVenant1D) SetFixedTimestep(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt = %g", ErrBadTimestep, dt)
	}
	c.DT = dt
	c.AutoDT = false
	return nil
}

// SetTargetCourant sets the Courant number the adaptive controller aims
// for. Values above 1.0 are accepted but void the explicit-scheme
// stability guarantee.
func (c *SaintVenant1D) SetTargetCourant(cr float64) {
	c.TargetCourant = cr
}

// SetInitialConditions loads per-node depth and discharge arrays and
// resets the clock. Must be called (or SetUniformInitial) before stepping.
func (c *SaintVenant1D) SetInitialConditions(h, Q []float64) error {
	nx := c.Grid.Nx
	if len(h) != nx || len(Q) != nx {
		return fmt.Errorf("%w: need %d nodes, got h[%d], Q[%d]", ErrBadInitial, nx, len(h), len(Q))
	}
	for i := 0; i < nx; i++ {
		if math.IsNaN(h[i]) || math.IsInf(h[i], 0) || math.IsNaN(Q[i]) || math.IsInf(Q[i], 0) {
			return fmt.Errorf("%w: non-finite value at node %d", ErrBadInitial, i)
		}
		if h[i] < 0 {
			return fmt.Errorf("%w: negative depth %g at node %d", ErrBadInitial, h[i], i)
		}
	}
	c.H = utils.NewVector(nx)
	c.Q = utils.NewVector(nx)
	copy(c.H.DataP(), h)
	copy(c.Q.DataP(), Q)
	c.Time = 0
	c.TimeStep = 0
	c.initialized = true
	return nil
}

// SetUniformInitial broadcasts scalar depth and discharge over the reach.
func (c *SaintVenant1D) SetUniformInitial(h0, Q0 float64) error {
	nx := c.Grid.Nx
	h := make([]float64, nx)
	q := make([]float64, nx)
	for i := range h {
		h[i] = h0
		q[i] = Q0
	}
	return c.SetInitialConditions(h, q)
}

// SetBoundaryConditions installs the upstream (node 0) and downstream
// (node Nx-1) forcing. Either may be nil, in which case that end keeps
// the zero-gradient value extrapolated from the adjacent interior node.
// Callables must remain valid for the whole run.
func (c *SaintVenant1D) SetBoundaryConditions(upstream, downstream BoundaryCondition) {
	c.upstream = upstream
	c.downstream = downstream
}

// WaveSpeed scans the grid for the local signal speed |v| + sqrt(g h)
// and returns its maximum and mean.
func (c *SaintVenant1D) WaveSpeed() (cmax, cmean float64) {
	var (
		ch   = c.Channel
		h    = c.H.DataP()
		q    = c.Q.DataP()
		gAcc = ch.Gravity
	)
	for i := range h {
		a := ch.Area(h[i])
		if a < AreaFloor {
			a = AreaFloor
		}
		v := q[i] / a
		var cel float64
		if h[i] > 0 {
			cel = math.Sqrt(gAcc * h[i])
		}
		s := math.Abs(v) + cel
		if s > cmax {
			cmax = s
		}
		cmean += s
	}
	cmean /= float64(len(h))
	return
}

// ComputeTimestep returns the largest step satisfying the target Courant
// number, clamped to [MinDT, MaxDT].
func (c *SaintVenant1D) ComputeTimestep(targetCourant float64) (dt float64) {
	cmax, _ := c.WaveSpeed()
	if cmax < timeTol {
		return MaxDT
	}
	dt = targetCourant * c.Grid.Dx / cmax
	return utils.Clamp(dt, MinDT, MaxDT)
}

// AdvanceOneStep applies one explicit Lax step of length dt. Continuity
// and momentum are updated on the interior nodes from a double buffer,
// the end nodes are zero-gradient extrapolated and then overwritten by
// any installed boundary forcing evaluated at the advanced time t+dt.
// On instability (negative depth or non-finite state) the step is not
// committed and an *InstabilityError is returned.
func (c *SaintVenant1D) AdvanceOneStep(dt float64) (tNew float64, err error) {
	if !c.initialized {
		return c.Time, ErrUninitialized
	}
	if dt <= 0 {
		return c.Time, fmt.Errorf("%w: dt = %g", ErrBadTimestep, dt)
	}
	var (
		ch     = c.Channel
		nx     = c.Grid.Nx
		dx     = c.Grid.Dx
		gAcc   = ch.Gravity
		b      = ch.Width
		h      = c.H.DataP()
		q      = c.Q.DataP()
		area   = ch.Areas(c.H).DataP()
		flux   = make([]float64, nx)
		sf     = make([]float64, nx)
		hn     = utils.NewVector(nx)
		qn     = utils.NewVector(nx)
		hnData = hn.DataP()
		qnData = qn.DataP()
	)
	// Areas are rederived from depth; flux is Q^2/A + g A h/2 (momentum
	// plus hydrostatic pressure for a rectangular section).
	for i := 0; i < nx; i++ {
		a := area[i]
		if a < AreaFloor {
			a = AreaFloor
		}
		flux[i] = q[i]*q[i]/a + 0.5*gAcc*area[i]*h[i]
		sf[i] = ch.FrictionSlope(q[i], area[i])
	}
	lam := dt / (2 * dx)
	for i := 1; i < nx-1; i++ {
		an := 0.5*(area[i-1]+area[i+1]) - lam*(q[i+1]-q[i-1])
		hnData[i] = an / b
		qnData[i] = 0.5*(q[i-1]+q[i+1]) - lam*(flux[i+1]-flux[i-1]) +
			dt*gAcc*area[i]*(ch.Slope-sf[i])
	}
	// Zero-gradient ends, then boundary injection at the advanced time
	hnData[0], qnData[0] = hnData[1], qnData[1]
	hnData[nx-1], qnData[nx-1] = hnData[nx-2], qnData[nx-2]
	tNew = c.Time + dt
	inject := func(bc BoundaryCondition, i int) {
		if bc == nil {
			return
		}
		bv := bc.Values(tNew)
		if bv.SetDepth {
			hnData[i] = bv.Depth
		}
		if bv.SetDischarge {
			qnData[i] = bv.Discharge
		}
	}
	inject(c.upstream, 0)
	inject(c.downstream, nx-1)

	for i := 0; i < nx; i++ {
		switch {
		case math.IsNaN(hnData[i]) || math.IsInf(hnData[i], 0) || hnData[i] < 0:
			err = &InstabilityError{Step: c.TimeStep + 1, Time: tNew, Node: i, Quantity: "h", Value: hnData[i]}
		case math.IsNaN(qnData[i]) || math.IsInf(qnData[i], 0):
			err = &InstabilityError{Step: c.TimeStep + 1, Time: tNew, Node: i, Quantity: "Q", Value: qnData[i]}
		}
		if err != nil {
			return c.Time, err
		}
	}
	c.H, c.Q = hn, qn
	c.Time = tNew
	c.TimeStep++
	return tNew, nil
}

// RunResult aggregates the recorded snapshots of a run. H and Q are
// indexed [outputIndex][nodeIndex].
type RunResult struct {
	Times []float64
	X     utils.Vector
	H, Q  utils.Matrix
	Steps int
}

// Run advances the solver from t=0 to tEnd, recording a snapshot of the
// full state every dtOutput seconds of simulated time (plus the initial
// and final states). Snapshots land on the first step at or past each
// cadence point, without interpolation. When AutoDT is set the CFL
// controller picks each step, clipped so the run lands on tEnd exactly.
// On instability the loop aborts and returns the snapshots recorded so
// far together with the instability error.
func (c *SaintVenant1D) Run(tEnd, dtOutput float64, verbose bool) (res *RunResult, err error) {
	const logFrequency = 50
	if !c.initialized {
		return nil, ErrUninitialized
	}
	if tEnd <= 0 || dtOutput <= 0 {
		return nil, fmt.Errorf("%w: tEnd = %g, dtOutput = %g", ErrBadTimestep, tEnd, dtOutput)
	}
	var (
		times  []float64
		hRows  [][]float64
		qRows  [][]float64
		record = func() {
			times = append(times, c.Time)
			hRows = append(hRows, append([]float64(nil), c.H.DataP()...))
			qRows = append(qRows, append([]float64(nil), c.Q.DataP()...))
		}
		finalize = func() *RunResult {
			nx := c.Grid.Nx
			r := &RunResult{
				Times: times,
				X:     c.Grid.X.Copy(),
				H:     utils.NewMatrix(len(times), nx),
				Q:     utils.NewMatrix(len(times), nx),
				Steps: c.TimeStep,
			}
			for i := range times {
				r.H.SetRow(i, hRows[i])
				r.Q.SetRow(i, qRows[i])
			}
			return r
		}
	)
	record()
	nextOutput := dtOutput
	for c.Time < tEnd-timeTol {
		var dt float64
		if c.AutoDT {
			dt = c.ComputeTimestep(c.TargetCourant)
		} else {
			dt = c.DT
		}
		if c.Time+dt > tEnd {
			dt = tEnd - c.Time
		}
		if _, err = c.AdvanceOneStep(dt); err != nil {
			return finalize(), err
		}
		if c.Time >= nextOutput-timeTol {
			record()
			for nextOutput <= c.Time+timeTol {
				nextOutput += dtOutput
			}
		}
		if verbose && c.TimeStep%logFrequency == 0 {
			cmax, cmean := c.WaveSpeed()
			logrus.WithFields(logrus.Fields{
				"step":    c.TimeStep,
				"t":       c.Time,
				"dt":      dt,
				"courant": cmax * dt / c.Grid.Dx,
				"c_mean":  cmean,
				"h_min":   c.H.Min(),
				"h_max":   c.H.Max(),
			}).Info("advancing")
		}
	}
	if len(times) == 0 || math.Abs(times[len(times)-1]-c.Time) > timeTol {
		record()
	}
	return finalize(), nil
}
