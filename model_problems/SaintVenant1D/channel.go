package SaintVenant1D

import (
	"fmt"
	"math"

	"github.com/openhydro/goswe/utils"
)

const (
	// Gravity default, m/s^2
	G = 9.81

	// AreaFloor regularizes the Manning friction slope on a near-dry bed:
	// areas at or below this floor (m^2) are clamped to it, yielding a
	// large but finite Sf instead of a division blowup. Part of the
	// FrictionSlope contract, not a silent correction.
	AreaFloor = 1.e-06
)

// RectangularChannel holds the immutable geometry and roughness of a
// prismatic rectangular reach. All methods are pure.
type RectangularChannel struct {
	Length   float64 // reach length, m
	Width    float64 // bottom width, m
	Slope    float64 // bed slope S0, positive descending downstream
	ManningN float64 // Manning roughness coefficient
	Gravity  float64
}

// NewRectangularChannel validates and builds the reach configuration.
// Gravity defaults to G and may be overridden with an optional trailing
// argument.
func NewRectangularChannel(length, width, slope, manningN float64, gravityO ...float64) (ch *RectangularChannel, err error) {
	gravity := G
	if len(gravityO) != 0 {
		gravity = gravityO[0]
	}
	switch {
	case length <= 0:
		err = fmt.Errorf("%w: length = %g", ErrBadChannel, length)
	case width <= 0:
		err = fmt.Errorf("%w: width = %g", ErrBadChannel, width)
	case manningN <= 0:
		err = fmt.Errorf("%w: manning n = %g", ErrBadChannel, manningN)
	case gravity <= 0:
		err = fmt.Errorf("%w: gravity = %g", ErrBadChannel, gravity)
	}
	if err != nil {
		return
	}
	ch = &RectangularChannel{
		Length:   length,
		Width:    width,
		Slope:    slope,
		ManningN: manningN,
		Gravity:  gravity,
	}
	return
}

// Area is the flow cross-section b*h.
func (ch *RectangularChannel) Area(h float64) float64 {
	if h <= 0 {
		return 0
	}
	return ch.Width * h
}

// WettedPerimeter is b + 2h.
func (ch *RectangularChannel) WettedPerimeter(h float64) float64 {
	if h <= 0 {
		return ch.Width
	}
	return ch.Width + 2*h
}

// HydraulicRadius is A/P.
func (ch *RectangularChannel) HydraulicRadius(h float64) float64 {
	p := ch.WettedPerimeter(h)
	if p == 0 {
		return 0
	}
	return ch.Area(h) / p
}

// TopWidth is the free-surface width, constant for a rectangular section.
func (ch *RectangularChannel) TopWidth(h float64) float64 {
	return ch.Width
}

// FrictionSlope evaluates the Manning resistance term
//
//	Sf = n^2 Q^2 P^(4/3) / A^(10/3)
//
// The area is clamped to AreaFloor so a near-dry cell dissipates hard
// rather than producing Inf/NaN.
func (ch *RectangularChannel) FrictionSlope(Q, A float64) (sf float64) {
	if A < AreaFloor {
		A = AreaFloor
	}
	h := A / ch.Width
	p := ch.WettedPerimeter(h)
	sf = ch.ManningN * ch.ManningN * Q * Q * math.Pow(p, 4./3.) / math.Pow(A, 10./3.)
	return
}

// Conveyance is K = A R^(2/3) / n, so that Q = K sqrt(Sf) in uniform flow.
func (ch *RectangularChannel) Conveyance(h float64) float64 {
	if h <= 0 {
		return 0
	}
	return ch.Area(h) * math.Pow(ch.HydraulicRadius(h), 2./3.) / ch.ManningN
}

// UniformFlow is the Manning normal discharge at depth h for the channel
// bed slope, a convenience for setting consistent initial conditions.
// Returns 0 on an adverse or flat bed.
func (ch *RectangularChannel) UniformFlow(h float64) float64 {
	if ch.Slope <= 0 {
		return 0
	}
	return ch.Conveyance(h) * math.Sqrt(ch.Slope)
}

// Areas maps a depth vector through Area, allocating the result.
func (ch *RectangularChannel) Areas(h utils.Vector) (a utils.Vector) {
	a = h.Copy().Apply(ch.Area)
	return
}
