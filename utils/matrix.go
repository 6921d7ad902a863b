package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (m Matrix) {
	var (
		data []float64
	)
	if len(dataO) == 0 {
		data = make([]float64, nr*nc)
	} else {
		data = dataO[0]
		if len(data) != nr*nc {
			panic(fmt.Errorf("matrix data length %d does not match dimensions %dx%d", len(data), nr, nc))
		}
	}
	m = Matrix{
		mat.NewDense(nr, nc, data),
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

func (m Matrix) DataP() []float64 { return m.M.RawMatrix().Data }

func (m Matrix) Copy() (r Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	r = NewMatrix(nr, nc)
	copy(r.DataP(), m.DataP())
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Row(i int) (v Vector) { // Does not change receiver
	var (
		_, nc = m.Dims()
		data  = make([]float64, nc)
	)
	copy(data, m.M.RawRowView(i))
	return NewVector(nc, data)
}

func (m Matrix) Col(j int) (v Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
		data  = make([]float64, nr)
	)
	for i := 0; i < nr; i++ {
		data[i] = m.At(i, j)
	}
	return NewVector(nr, data)
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.DataP()
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix { // Changes receiver
	var (
		data = m.DataP()
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return m
}

func (m Matrix) Min() (min float64) {
	var (
		data = m.DataP()
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	var (
		data = m.DataP()
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) Print(msgI ...string) (o string) {
	var (
		msg = ""
	)
	if len(msgI) != 0 {
		msg = msgI[0] + " = "
	}
	o = fmt.Sprintf("%s%v\n", msg, mat.Formatted(m.M, mat.Squeeze()))
	return
}
