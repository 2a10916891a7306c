package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a thin value wrapper over a gonum dense matrix, sized for the
// small per-group well systems.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	R.M.CloneFrom(m.M)
	return
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	m.M.Scale(a, m.M)
	return m
}

// LUSolve factors a square copy of the receiver with partial pivoting and
// solves m * x = b. The receiver is not modified.
func (m Matrix) LUSolve(b Vector) (x Vector, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("unable to solve, matrix is %dx%d, not square", nr, nc)
		return
	}
	if b.Len() != nr {
		err = fmt.Errorf("unable to solve, rhs length %d does not match dimension %d", b.Len(), nr)
		return
	}
	A := m.Copy()
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(A.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to solve, matrix is singular")
		return
	}
	x = b.Copy()
	rhs := blas64.General{
		Rows:   nr,
		Cols:   1,
		Stride: 1,
		Data:   x.Data(),
	}
	lapack64.Getrs(blas.NoTrans, A.RawMatrix(), rhs, iPiv)
	return
}
