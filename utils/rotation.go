package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Skew returns the cross product matrix of v, so that Skew(v)*w = v x w.
func Skew(v [3]float64) (S *mat.Dense) {
	S = mat.NewDense(3, 3, []float64{
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	})
	return
}

// RotationAroundAxis is the Rodrigues rotation matrix of angle (radians)
// about axis, which need not be normalized.
func RotationAroundAxis(axis [3]float64, angle float64) (R *mat.Dense, err error) {
	var (
		a    = axis[:]
		norm = floats.Norm(a, 2)
	)
	if norm < NODETOL {
		err = fmt.Errorf("rotation axis has zero length: %v", axis)
		return
	}
	var u [3]float64
	for i := range u {
		u[i] = axis[i] / norm
	}
	var (
		K    = Skew(u)
		K2   = mat.NewDense(3, 3, nil)
		sinA = math.Sin(angle)
		cosA = math.Cos(angle)
	)
	K2.Mul(K, K)
	R = mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	K.Scale(sinA, K)
	K2.Scale(1-cosA, K2)
	R.Add(R, K)
	R.Add(R, K2)
	return
}

// RotateInPlace overwrites the leading three components of v with R*v.
func RotateInPlace(R mat.Matrix, v []float64) {
	var (
		in  = mat.NewVecDense(3, []float64{v[0], v[1], v[2]})
		out = mat.NewVecDense(3, v[:3])
	)
	out.MulVec(R, in)
}
