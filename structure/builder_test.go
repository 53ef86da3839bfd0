package structure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

func straightBeam(numNode int, length float64) (pos [][]float64) {
	z := utils.Linspace(0, length, numNode)
	pos = make([][]float64, numNode)
	for i := range pos {
		pos[i] = []float64{0, 0, z[i]}
	}
	return
}

func TestDeriveElementCount(t *testing.T) {
	{
		ne, err := DeriveElementCount(11, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, ne)
		ne, err = DeriveElementCount(9, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, ne)
		ne, err = DeriveElementCount(7, 2)
		require.NoError(t, err)
		assert.Equal(t, 6, ne)
		ne, err = DeriveElementCount(10, 4)
		require.NoError(t, err)
		assert.Equal(t, 3, ne)
		// A lone node makes no element
		ne, err = DeriveElementCount(1, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, ne)
	}
	for _, bad := range [][2]int{{10, 3}, {0, 3}, {-2, 3}, {5, 1}, {12, 4}} {
		_, err := DeriveElementCount(bad[0], bad[1])
		assert.ErrorIs(t, err, types.ErrConfiguration, "numNode=%d nodesPerElem=%d", bad[0], bad[1])
	}
}

func TestAllocate(t *testing.T) {
	m, err := Allocate(3, 11, 5, 2, 3, 1)
	require.NoError(t, err)
	assert.Len(t, m.Coordinates, 11)
	assert.Len(t, m.Coordinates[10], 3)
	assert.Len(t, m.AppForces, 11)
	assert.Len(t, m.AppForces[0], 6)
	assert.Len(t, m.BoundaryConditions, 11)
	assert.Len(t, m.StructuralTwist, 11)
	assert.Len(t, m.Connectivity, 5)
	assert.Len(t, m.Connectivity[4], 3)
	assert.Len(t, m.FrameOfReferenceDelta, 5)
	assert.Len(t, m.FrameOfReferenceDelta[0], 3)
	assert.Len(t, m.FrameOfReferenceDelta[0][2], 3)
	assert.Len(t, m.BeamNumber, 5)
	assert.Equal(t, 2, m.StiffnessDB.Len())
	assert.Equal(t, 3, m.MassDB.Len())
	assert.Equal(t, 1, m.Lumped.Len())

	_, err = Allocate(3, 11, 4, 1, 1, 0)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = Allocate(3, 10, 4, 1, 1, 0)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = Allocate(3, 11, 5, -1, 1, 0)
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestGenerateUniformBeam(t *testing.T) {
	m, err := GenerateUniformBeam(UniformBeam{
		NodePositions: straightBeam(11, 10),
		MassPerLength: 2,
		Inertia:       [3]float64{1e-4, 2e-4, 3e-4},
		CGOffset:      [3]float64{0, 0.1, 0},
		EA:            1e9,
		GA:            [2]float64{2e9, 3e9},
		GJ:            4e9,
		EI:            [2]float64{5e9, 6e9},
		LocalAxis:     "local-y",
		NumLumpedMass: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, m.NodesPerElem)
	assert.Equal(t, 11, m.NumNode)
	assert.Equal(t, 5, m.NumElem)
	assert.Equal(t, [][]int{{0, 2, 1}, {2, 4, 3}, {4, 6, 5}, {6, 8, 7}, {8, 10, 9}}, m.Connectivity)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, m.ElemStiffness)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, m.ElemMass)
	require.Equal(t, 1, m.StiffnessDB.Len())
	require.Equal(t, 1, m.MassDB.Len())
	K := m.StiffnessDB.Rows[0]
	for i, want := range []float64{1e9, 2e9, 3e9, 4e9, 5e9, 6e9} {
		assert.Equal(t, want, K.At(i, i))
	}
	assert.Equal(t, 0., K.At(0, 1))
	M := m.MassDB.Rows[0]
	assert.Equal(t, 2., M.At(0, 0))
	assert.Equal(t, 2e-4, M.At(4, 4))
	// -m*skew(cg) in the upper right block, cg = (0, 0.1, 0)
	assert.InDelta(t, -2*0.1, M.At(0, 5), 1.e-15)
	assert.InDelta(t, 2*0.1, M.At(2, 3), 1.e-15)
	assert.InDelta(t, M.At(0, 5), M.At(5, 0), 1.e-15)
	for _, slots := range m.FrameOfReferenceDelta {
		for _, d := range slots {
			assert.Equal(t, []float64{0, 1, 0}, d)
		}
	}
	assert.Equal(t, []float64{0, 0, 10}, m.Coordinates[10])

	_, err = GenerateUniformBeam(UniformBeam{NodePositions: straightBeam(10, 1)})
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = GenerateUniformBeam(UniformBeam{NodePositions: [][]float64{{0, 0}, {0, 0, 1}, {0, 0, 2}}})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestSimpleConnectivityLinear(t *testing.T) {
	m, err := GenerateUniformSymBeam(straightBeam(4, 3), 1, 1e-4, 1e9, 1e9, 1e9, 1e9, 2, "local-x", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {1, 2}, {2, 3}}, m.Connectivity)
	assert.Equal(t, []float64{1, 0, 0}, m.FrameOfReferenceDelta[2][1])
}

func TestFrameOfReferenceFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	m, err := Allocate(3, 5, 2, 1, 1, 0)
	require.NoError(t, err)
	m.SetFrameOfReferenceDelta("local-z")
	assert.Equal(t, []float64{0, 0, 1}, m.FrameOfReferenceDelta[1][2])
	assert.Equal(t, 0, logs.Len())

	m.SetFrameOfReferenceDelta("sideways")
	assert.Equal(t, []float64{0, 1, 0}, m.FrameOfReferenceDelta[0][0])
	assert.Equal(t, 1, logs.Len())
}

func TestRotateAroundOrigin(t *testing.T) {
	var L = 10.
	m, err := GenerateUniformSymBeam(straightBeam(11, L), 1, 1e-4, 1e9, 1e9, 1e9, 1e9, 3, "local-z", 0)
	require.NoError(t, err)
	require.NoError(t, m.RotateAroundOrigin([3]float64{0, 1, 0}, 90*math.Pi/180))
	tip := m.Coordinates[10]
	assert.InDelta(t, L, tip[0], 1.e-10)
	assert.InDelta(t, 0., tip[1], 1.e-10)
	assert.InDelta(t, 0., tip[2], 1.e-10)
	// The z axis used as yB rotates onto x with the geometry
	for _, slots := range m.FrameOfReferenceDelta {
		for _, d := range slots {
			assert.InDelta(t, 1., d[0], 1.e-10)
			assert.InDelta(t, 0., d[1], 1.e-10)
			assert.InDelta(t, 0., d[2], 1.e-10)
		}
	}
	assert.ErrorIs(t, m.RotateAroundOrigin([3]float64{}, 1), types.ErrConfiguration)

	m.Translate([3]float64{0, 0, L})
	assert.InDelta(t, L, m.Coordinates[10][2], 1.e-10)
	assert.InDelta(t, L, m.Coordinates[0][2], 1.e-10)
}

func TestCopyAndLumpedMasses(t *testing.T) {
	m, err := GenerateUniformSymBeam(straightBeam(5, 1), 1, 1e-4, 1e9, 1e9, 1e9, 1e9, 3, "local-y", 1)
	require.NoError(t, err)
	require.NoError(t, m.SetLumpedMass(0, 2, 0.5, [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, [3]float64{}))
	assert.ErrorIs(t, m.SetLumpedMass(1, 2, 0.5, [3][3]float64{}, [3]float64{}), types.ErrConfiguration)
	assert.ErrorIs(t, m.AddLumpedMass(7, 1, [3][3]float64{}, [3]float64{}), types.ErrConfiguration)
	assert.Equal(t, 1, m.Lumped.Len())
	require.NoError(t, m.AddLumpedMass(4, 0.25, [3][3]float64{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}, [3]float64{0, 0, 0.1}))
	assert.Equal(t, []int{2, 4}, m.Lumped.Nodes)

	c := m.Copy()
	c.Coordinates[0][0] = 99
	c.Connectivity[0][0] = 99
	c.StiffnessDB.Rows[0].SetSym(0, 0, -1)
	c.Lumped.Inertia[0].Set(0, 0, -1)
	c.FrameOfReferenceDelta[0][0][1] = -1
	assert.Equal(t, 0., m.Coordinates[0][0])
	assert.Equal(t, 0, m.Connectivity[0][0])
	assert.Equal(t, 1e9, m.StiffnessDB.Rows[0].At(0, 0))
	assert.Equal(t, 1., m.Lumped.Inertia[0].At(0, 0))
	assert.Equal(t, 1., m.FrameOfReferenceDelta[0][0][1])
	assert.Equal(t, m.NumNode, c.NumNode)
	assert.Equal(t, m.NumElem, c.NumElem)

	n, err := m.NodeIndex(-1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	_, err = m.NodeIndex(5)
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestPropertyDatabase(t *testing.T) {
	_, err := StiffnessDBFromVectors([]float64{1, 2}, []float64{1}, []float64{1, 2}, []float64{1, 2}, []float64{1, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = MassDBFromVectors([]float64{1}, []float64{1}, []float64{1}, []float64{1}, nil)
	assert.ErrorIs(t, err, types.ErrConfiguration)

	a, err := StiffnessDBFromVectors([]float64{1}, []float64{1}, []float64{1}, []float64{1}, []float64{1}, []float64{1})
	require.NoError(t, err)
	b := NewPropertyDatabase(2)
	c := Concat(a, b, nil)
	assert.Equal(t, 3, c.Len())
	raw := c.Raw()
	assert.Len(t, raw, 3)
	assert.Equal(t, 1., raw[0][5][5])
	assert.Equal(t, 0., raw[2][5][5])
	c.Rows[0].SetSym(0, 0, 7)
	assert.Equal(t, 1., a.Rows[0].At(0, 0))
}
