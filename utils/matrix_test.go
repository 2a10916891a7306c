package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// LUSolve
	{
		A := NewMatrix(2, 2, []float64{
			2, 1,
			1, 3,
		})
		b := NewVector(2, []float64{5, 10})
		x, err := A.LUSolve(b)
		assert.NoError(t, err)
		assert.InDelta(t, 1, x.AtVec(0), 1.e-14)
		assert.InDelta(t, 3, x.AtVec(1), 1.e-14)
		// Receiver and rhs are untouched
		assert.Equal(t, []float64{2, 1, 1, 3}, A.Data())
		assert.Equal(t, []float64{5, 10}, b.Data())
	}
	// Singular matrix
	{
		A := NewMatrix(2, 2, []float64{
			1, 2,
			2, 4,
		})
		_, err := A.LUSolve(NewVector(2, []float64{1, 1}))
		assert.Error(t, err)
	}
	// Dimension checks
	{
		A := NewMatrix(2, 3)
		_, err := A.LUSolve(NewVector(2))
		assert.Error(t, err)
		B := NewMatrix(2, 2)
		_, err = B.LUSolve(NewVector(3))
		assert.Error(t, err)
		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
	}
	// Copy is independent of the receiver
	{
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := A.Copy()
		B.Set(0, 0, 99)
		assert.Equal(t, 1., A.At(0, 0))
		assert.Equal(t, 99., B.At(0, 0))
	}
}

func TestVector(t *testing.T) {
	v := NewVector(3, []float64{1, -5, 2})
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 5., v.NormInf())
	w := v.Copy()
	w.Scale(2)
	assert.Equal(t, []float64{2, -10, 4}, w.Data())
	assert.Equal(t, []float64{1, -5, 2}, v.Data())
}
