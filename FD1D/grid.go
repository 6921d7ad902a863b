package FD1D

import (
	"fmt"
	"math"

	"github.com/openhydro/goswe/utils"
)

// Grid1D is a uniform finite-difference grid of Nx nodes spanning
// [XMin, XMax]. Node coordinates are fixed at construction.
type Grid1D struct {
	Nx         int
	XMin, XMax float64
	Dx         float64
	X          utils.Vector
}

func NewUniformGrid(xmin, xmax float64, nx int) (g *Grid1D, err error) {
	if nx < 2 {
		err = fmt.Errorf("grid needs at least 2 nodes, got %d", nx)
		return
	}
	if xmax <= xmin {
		err = fmt.Errorf("grid extent [%g, %g] is empty", xmin, xmax)
		return
	}
	g = &Grid1D{
		Nx:   nx,
		XMin: xmin,
		XMax: xmax,
		Dx:   (xmax - xmin) / float64(nx-1),
		X:    utils.NewVector(nx),
	}
	x := g.X.DataP()
	for i := range x {
		x[i] = xmin + float64(i)*g.Dx
	}
	// Pin the last node to eliminate accumulated roundoff
	x[nx-1] = xmax
	return
}

// NewUniformGridSpacing builds a grid over [0, length] from a requested
// spacing. Nx = floor(length/dx)+1; the effective Dx is recomputed as
// length/(Nx-1) so the grid spans the full reach exactly.
func NewUniformGridSpacing(length, dx float64) (g *Grid1D, err error) {
	if length <= 0 {
		err = fmt.Errorf("grid length must be positive, got %g", length)
		return
	}
	if dx <= 0 {
		err = fmt.Errorf("grid spacing must be positive, got %g", dx)
		return
	}
	nx := int(math.Floor(length/dx)) + 1
	return NewUniformGrid(0, length, nx)
}
