package aero

import (
	"fmt"
	"sort"

	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

// AirfoilCamber extracts the camber line of an airfoil given as surface
// coordinates in XFOIL order: trailing edge, suction side, leading edge,
// pressure side, trailing edge. The leading edge is the point of minimum x.
// The camber line is sampled at nPoints evenly spaced x over [0, 1].
func AirfoilCamber(x, y []float64, nPoints int) (camber [][]float64, err error) {
	var (
		n    = len(x)
		imin int
	)
	if n != len(y) || n < 3 {
		err = &types.ConfigurationError{Op: "airfoil camber",
			Msg: fmt.Sprintf("need at least 3 matching coordinates, have x=%d y=%d", len(x), len(y))}
		return
	}
	for i := range x {
		if x[i] < x[imin] {
			imin = i
		}
	}
	var (
		xs = make([]float64, imin+1)
		ys = make([]float64, imin+1)
		xp = append([]float64(nil), x[imin:]...)
		yp = append([]float64(nil), y[imin:]...)
	)
	// Suction side reversed to run leading edge to trailing edge
	for i := 0; i <= imin; i++ {
		xs[i], ys[i] = x[imin-i], y[imin-i]
	}
	if !sort.Float64sAreSorted(xs) || !sort.Float64sAreSorted(xp) {
		err = &types.ConfigurationError{Op: "airfoil camber",
			Msg: "surface coordinates are not monotonic in x on each side of the leading edge"}
		return
	}
	camber = FlatCamber(nPoints)
	for _, pt := range camber {
		pt[1] = 0.5 * (utils.Interp(pt[0], xs, ys) + utils.Interp(pt[0], xp, yp))
	}
	return
}

// InterpolateCamber blends the camber lines of pure airfoils located at
// ascending radial stations rPure onto the stations r. Stations outside the
// range of rPure take the nearest pure airfoil.
func InterpolateCamber(pure [][][]float64, rPure, r []float64) (camber [][][]float64, err error) {
	if len(pure) != len(rPure) || len(pure) == 0 {
		err = &types.ConfigurationError{Op: "interpolate camber",
			Msg: fmt.Sprintf("have %d pure airfoils and %d stations", len(pure), len(rPure))}
		return
	}
	if !sort.Float64sAreSorted(rPure) {
		err = &types.ConfigurationError{Op: "interpolate camber", Msg: "pure airfoil stations are not ascending"}
		return
	}
	var np = len(pure[0])
	for i, p := range pure {
		if len(p) != np {
			err = &types.ConfigurationError{Op: "interpolate camber",
				Msg: fmt.Sprintf("pure airfoil %d has %d points, expected %d", i, len(p), np)}
			return
		}
	}
	camber = make([][][]float64, len(r))
	for k, rk := range r {
		var (
			i0, i1 = segment(rPure, rk)
			beta   float64
		)
		if i1 != i0 {
			beta = (rk - rPure[i0]) / (rPure[i1] - rPure[i0])
			beta = min(max(beta, 0), 1)
		}
		camber[k] = make([][]float64, np)
		for j := 0; j < np; j++ {
			a, b := pure[i0][j], pure[i1][j]
			camber[k][j] = []float64{
				(1-beta)*a[0] + beta*b[0],
				(1-beta)*a[1] + beta*b[1],
			}
		}
	}
	return
}

// segment returns the bracketing stations of rk, or a repeated index at the
// ends of the range.
func segment(rPure []float64, rk float64) (i0, i1 int) {
	var n = len(rPure)
	switch {
	case n == 1 || rk <= rPure[0]:
		return 0, 0
	case rk >= rPure[n-1]:
		return n - 1, n - 1
	}
	i1 = sort.SearchFloat64s(rPure, rk)
	if rPure[i1] == rk {
		return i1, i1
	}
	return i1 - 1, i1
}
