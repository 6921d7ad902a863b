package SaintVenant1D

import "math"

// BoundaryValue carries the state imposed on an end node. A quantity
// whose Set flag is false keeps the zero-gradient value extrapolated
// from the interior sweep.
type BoundaryValue struct {
	Depth, Discharge       float64
	SetDepth, SetDischarge bool
}

func FullBoundary(h, q float64) BoundaryValue {
	return BoundaryValue{Depth: h, Discharge: q, SetDepth: true, SetDischarge: true}
}

func DepthBoundary(h float64) BoundaryValue {
	return BoundaryValue{Depth: h, SetDepth: true}
}

func DischargeBoundary(q float64) BoundaryValue {
	return BoundaryValue{Discharge: q, SetDischarge: true}
}

// BoundaryCondition supplies the forcing at one end of the reach. Values
// must be pure: callable at any t >= 0, no interpolation is performed and
// no side effects may be visible to the solver.
type BoundaryCondition interface {
	Values(t float64) BoundaryValue
}

// BoundaryFunc adapts a plain (h, Q) pair function, both quantities imposed.
type BoundaryFunc func(t float64) (h, Q float64)

func (f BoundaryFunc) Values(t float64) BoundaryValue {
	h, q := f(t)
	return FullBoundary(h, q)
}

// ConstantBoundary pins both depth and discharge for all t.
type ConstantBoundary struct {
	Depth, Discharge float64
}

func (b ConstantBoundary) Values(t float64) BoundaryValue {
	return FullBoundary(b.Depth, b.Discharge)
}

// ConstantDepth pins the depth only, e.g. a downstream stage control.
type ConstantDepth struct {
	Depth float64
}

func (b ConstantDepth) Values(t float64) BoundaryValue {
	return DepthBoundary(b.Depth)
}

// StepHydrograph imposes a discharge that jumps from Before to After at
// time At, e.g. a gate opening upstream.
type StepHydrograph struct {
	Before, After float64
	At            float64
}

func (b StepHydrograph) Values(t float64) BoundaryValue {
	if t < b.At {
		return DischargeBoundary(b.Before)
	}
	return DischargeBoundary(b.After)
}

// TidalBoundary imposes a sinusoidal depth about MeanDepth, e.g. a tidal
// estuary at the downstream end.
type TidalBoundary struct {
	MeanDepth, Amplitude float64
	Period, Phase        float64 // s, rad
}

func (b TidalBoundary) Values(t float64) BoundaryValue {
	h := b.MeanDepth + b.Amplitude*math.Sin(2*math.Pi*t/b.Period+b.Phase)
	return DepthBoundary(h)
}
