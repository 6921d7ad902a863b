package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (v Vector) {
	var (
		data []float64
	)
	if len(dataO) == 0 {
		data = make([]float64, n)
	} else {
		data = dataO[0]
		if len(data) != n {
			panic(fmt.Errorf("vector data length %d does not match dimension %d", len(data), n))
		}
	}
	v = Vector{
		mat.NewVecDense(n, data),
	}
	return
}

func NewVectorConstant(n int, val float64) (v Vector) {
	var (
		data = make([]float64, n)
	)
	for i := range data {
		data[i] = val
	}
	return NewVector(n, data)
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

func (v Vector) Set(i int, val float64) Vector {
	v.V.SetVec(i, val)
	return v
}

func (v Vector) DataP() []float64 { return v.V.RawVector().Data }

func (v Vector) Copy() (r Vector) {
	r = NewVector(v.Len())
	copy(r.DataP(), v.DataP())
	return
}

// Chainable (extended) methods
func (v Vector) Scale(a float64) Vector {
	var (
		data = v.DataP()
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.DataP()
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) Apply2(a Vector, f func(float64, float64) float64) Vector {
	var (
		data  = v.DataP()
		dataA = a.DataP()
	)
	for i, val := range data {
		data[i] = f(val, dataA[i])
	}
	return v
}

func (v Vector) Min() (min float64) {
	var (
		data = v.DataP()
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.DataP()
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (v Vector) Sum() (sum float64) {
	for _, val := range v.DataP() {
		sum += val
	}
	return
}

func (v Vector) Mean() float64 {
	return v.Sum() / float64(v.Len())
}

// IsFinite reports whether every element is a real number, returning the
// index of the first NaN or Inf otherwise.
func (v Vector) IsFinite() (ok bool, badIndex int) {
	for i, val := range v.DataP() {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return false, i
		}
	}
	return true, -1
}

func (v Vector) Print(msgI ...string) (o string) {
	var (
		msg = ""
	)
	if len(msgI) != 0 {
		msg = msgI[0] + " = "
	}
	o = fmt.Sprintf("%s%v\n", msg, mat.Formatted(v.V, mat.Squeeze()))
	return
}
