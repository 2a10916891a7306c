package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vector wraps a gonum dense vector the same way Matrix wraps mat.Dense.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{v}
	return
}

func (v Vector) Len() int            { return v.V.Len() }
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }
func (v Vector) Data() []float64     { return v.V.RawVector().Data }

func (v Vector) Set(i int, val float64) Vector { // Changes receiver
	v.V.SetVec(i, val)
	return v
}

func (v Vector) Copy() (R Vector) { // Does not change receiver
	R = NewVector(v.Len())
	copy(R.Data(), v.Data())
	return
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	v.V.ScaleVec(a, v.V)
	return v
}

// NormInf is the maximum absolute entry.
func (v Vector) NormInf() (n float64) {
	for _, val := range v.Data() {
		if math.Abs(val) > n {
			n = math.Abs(val)
		}
	}
	return
}
