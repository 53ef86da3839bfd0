package utils

import (
	"gonum.org/v1/gonum/floats"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Linspace returns N evenly spaced samples over [min, max], both ends included.
func Linspace(min, max float64, N int) (v []float64) {
	v = make([]float64, N)
	switch N {
	case 0:
	case 1:
		v[0] = min
	default:
		floats.Span(v, min, max)
	}
	return
}

// Interp is a piecewise linear interpolant of (xp, fp) evaluated at x, with
// constant extrapolation outside [xp[0], xp[len-1]]. xp must be ascending.
func Interp(x float64, xp, fp []float64) float64 {
	var n = len(xp)
	switch {
	case n == 0:
		return 0
	case x <= xp[0]:
		return fp[0]
	case x >= xp[n-1]:
		return fp[n-1]
	}
	i := floats.Within(xp, x)
	beta := (x - xp[i]) / (xp[i+1] - xp[i])
	return (1-beta)*fp[i] + beta*fp[i+1]
}

func Distance3(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
