package aero

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/aerocase/structure"
	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

func testBeam(t *testing.T, numNode int) (m *structure.Mesh) {
	z := utils.Linspace(0, 1, numNode)
	pos := make([][]float64, numNode)
	for i := range pos {
		pos[i] = []float64{0, 0, z[i]}
	}
	m, err := structure.GenerateUniformSymBeam(pos, 1, 1e-4, 1e9, 1e9, 1e9, 1e9, 3, "local-y", 0)
	require.NoError(t, err)
	return
}

func TestAllocate(t *testing.T) {
	s, err := Allocate(3, 9, 4, 2, 1, 5)
	require.NoError(t, err)
	assert.Len(t, s.AeroNode, 9)
	assert.Len(t, s.Chord, 4)
	assert.Len(t, s.Chord[3], 3)
	assert.Len(t, s.AirfoilDistribution[0], 3)
	assert.Equal(t, []int{-1, -1, -1, -1}, s.SurfaceDistribution)
	assert.Equal(t, []int{0}, s.SurfaceM)
	assert.Equal(t, DefaultDistribution, s.MDistribution)
	assert.Equal(t, 2, s.NumAirfoils())
	assert.Equal(t, 1, s.NumSurfaces())
	assert.Equal(t, [][]float64{{0, 0}, {0.25, 0}, {0.5, 0}, {0.75, 0}, {1, 0}}, s.Airfoils[1])

	_, err = Allocate(1, 9, 4, 2, 1, 5)
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestExpandNodeToElementSlots(t *testing.T) {
	con := [][]int{{0, 2, 1}, {2, 4, 3}}
	out, err := ExpandNodeToElementSlots([]float64{10, 11, 12, 13, 14}, con)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{10, 12, 11}, {12, 14, 13}}, out)

	idx, err := ExpandNodeToElementSlots([]int{0, 0, 1, 1, 2}, con)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 0}, {1, 2, 1}}, idx)

	_, err = ExpandNodeToElementSlots([]float64{1, 2, 3}, con)
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestCreateUniform(t *testing.T) {
	m := testBeam(t, 11)
	airfoil := FlatCamber(20)
	s, err := CreateUniform(m, UniformSurface{
		Chord:       1,
		Sweep:       0.1,
		ElasticAxis: 0.5,
		Panels:      4,
		Airfoil:     airfoil,
	})
	require.NoError(t, err)
	assert.Len(t, s.AeroNode, 11)
	for _, flag := range s.AeroNode {
		assert.True(t, flag)
	}
	for e := 0; e < 5; e++ {
		assert.Equal(t, []float64{1, 1, 1}, s.Chord[e])
		assert.Equal(t, []float64{0.1, 0.1, 0.1}, s.Sweep[e])
		assert.Equal(t, []float64{0.5, 0.5, 0.5}, s.ElasticAxis[e])
		assert.Equal(t, []int{0, 0, 0}, s.AirfoilDistribution[e])
	}
	assert.Equal(t, []int{0, 0, 0, 0, 0}, s.SurfaceDistribution)
	assert.Equal(t, []int{4}, s.SurfaceM)
	assert.Equal(t, "uniform", s.MDistribution)
	require.Equal(t, 1, s.NumAirfoils())
	assert.Len(t, s.Airfoils[0], 20)
	// the library owns its copy
	airfoil[0][1] = 9
	assert.Equal(t, 0., s.Airfoils[0][0][1])

	s, err = CreateUniform(m, UniformSurface{Panels: 2, Distribution: "1-cos", CamberPoints: 7})
	require.NoError(t, err)
	assert.Len(t, s.Airfoils[0], 7)
	assert.Equal(t, "1-cos", s.MDistribution)

	_, err = CreateUniform(m, UniformSurface{Panels: -1})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestCreateFromPerNodeVectors(t *testing.T) {
	m := testBeam(t, 9)
	var (
		nn     = 9
		chord  = utils.Linspace(1, 0.1, nn)
		aeroOn = make([]bool, nn)
	)
	for i := range aeroOn {
		aeroOn[i] = true
	}
	s, err := CreateFromPerNodeVectors(m, PerNodeSurface{
		AeroNode:            aeroOn,
		Chord:               chord,
		Twist:               utils.ConstArray(nn, 0.1),
		Sweep:               utils.ConstArray(nn, 0.2),
		ElasticAxis:         utils.ConstArray(nn, 0.5),
		AirfoilIndex:        make([]int, nn),
		SurfaceM:            []int{4},
		SurfaceDistribution: make([]int, m.NumElem),
		Distribution:        "uniform",
		Airfoils:            [][][]float64{FlatCamber(20)},
	})
	require.NoError(t, err)
	for e, con := range m.Connectivity {
		for j, node := range con {
			assert.Equal(t, chord[node], s.Chord[e][j])
			assert.Equal(t, 0.1, s.Twist[e][j])
		}
	}
	// midside slot of element 0 is node 1
	assert.Equal(t, chord[1], s.Chord[0][2])

	_, err = CreateFromPerNodeVectors(m, PerNodeSurface{AeroNode: aeroOn, Chord: chord[:3]})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestCopy(t *testing.T) {
	s, err := Allocate(3, 5, 2, 1, 1, 4)
	require.NoError(t, err)
	c := s.Copy()
	c.Chord[0][0] = 1
	c.Airfoils[0][1][1] = 1
	c.SurfaceDistribution[0] = 0
	assert.Equal(t, 0., s.Chord[0][0])
	assert.Equal(t, 0., s.Airfoils[0][1][1])
	assert.Equal(t, -1, s.SurfaceDistribution[0])
}

func TestAirfoilCamber(t *testing.T) {
	// Symmetric lens: camber is zero
	{
		x := []float64{1, 0.5, 0, 0.5, 1}
		y := []float64{0, 0.1, 0, -0.1, 0}
		camber, err := AirfoilCamber(x, y, 11)
		require.NoError(t, err)
		require.Len(t, camber, 11)
		for _, pt := range camber {
			assert.InDelta(t, 0., pt[1], 1.e-14)
		}
		assert.Equal(t, 1., camber[10][0])
	}
	// Circular arc shifted up by 0.05 on both sides
	{
		var (
			n = 41
			x = make([]float64, 0, 2*n-1)
			y = make([]float64, 0, 2*n-1)
		)
		for i := n - 1; i >= 0; i-- {
			xi := float64(i) / float64(n-1)
			x = append(x, xi)
			y = append(y, 0.05+0.05*math.Sin(math.Pi*xi))
		}
		for i := 1; i < n; i++ {
			xi := float64(i) / float64(n-1)
			x = append(x, xi)
			y = append(y, 0.05-0.05*math.Sin(math.Pi*xi))
		}
		camber, err := AirfoilCamber(x, y, 5)
		require.NoError(t, err)
		for _, pt := range camber {
			assert.InDelta(t, 0.05, pt[1], 1.e-12)
		}
	}
	_, err := AirfoilCamber([]float64{1, 0}, []float64{0, 0}, 4)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = AirfoilCamber([]float64{1, 0.2, 0.5, 0, 1}, []float64{0, 0, 0, 0, 0}, 4)
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestInterpolateCamber(t *testing.T) {
	a := [][]float64{{0, 0}, {1, 0}}
	b := [][]float64{{0, 0.2}, {1, 0.4}}
	out, err := InterpolateCamber([][][]float64{a, b}, []float64{1, 3}, []float64{0, 1, 2, 3, 4})
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, a, out[0])
	assert.Equal(t, a, out[1])
	assert.InDelta(t, 0.1, out[2][0][1], 1.e-14)
	assert.InDelta(t, 0.2, out[2][1][1], 1.e-14)
	assert.Equal(t, b, out[3])
	assert.Equal(t, b, out[4])

	_, err = InterpolateCamber([][][]float64{a, b}, []float64{3, 1}, []float64{2})
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = InterpolateCamber([][][]float64{a, {{0, 0}}}, []float64{1, 3}, []float64{2})
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = InterpolateCamber(nil, nil, []float64{2})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}
