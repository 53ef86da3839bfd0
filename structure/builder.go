package structure

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

// UniformBeam describes a single beam with constant section properties.
type UniformBeam struct {
	NodePositions [][]float64 // [NumNode][3], ordered along the beam

	MassPerLength float64
	Inertia       [3]float64 // Section mass inertia about x, y, z
	CGOffset      [3]float64 // Section centre of gravity in the local frame

	EA       float64    // Axial stiffness
	GA       [2]float64 // Shear stiffness, y and z
	GJ       float64    // Torsional stiffness
	EI       [2]float64 // Bending stiffness, y and z
	NodesPer int        // Nodes per element, 3 when zero
	// LocalAxis selects the global direction of the section yB axis, one of
	// local-x, local-y, local-z.
	LocalAxis     string
	NumLumpedMass int
}

// GenerateUniformBeam builds a single beam whose elements all reference one
// stiffness row and one mass row.
func GenerateUniformBeam(ub UniformBeam) (m *Mesh, err error) {
	var (
		npe     = ub.NodesPer
		numNode = len(ub.NodePositions)
		numElem int
	)
	if npe == 0 {
		npe = 3
	}
	if numElem, err = DeriveElementCount(numNode, npe); err != nil {
		return
	}
	if m, err = Allocate(npe, numNode, numElem, 1, 1, ub.NumLumpedMass); err != nil {
		return
	}
	for i, pos := range ub.NodePositions {
		if len(pos) != 3 {
			err = &types.ConfigurationError{Op: "uniform beam",
				Msg: fmt.Sprintf("node %d has %d coordinates, need 3", i, len(pos))}
			return nil, err
		}
		copy(m.Coordinates[i], pos)
	}
	m.SimpleConnectivity()
	if m.StiffnessDB, err = StiffnessDBFromVectors(
		[]float64{ub.EA}, []float64{ub.GA[0]}, []float64{ub.GA[1]},
		[]float64{ub.GJ}, []float64{ub.EI[0]}, []float64{ub.EI[1]}); err != nil {
		return nil, err
	}
	if m.MassDB, err = MassDBFromVectors(
		[]float64{ub.MassPerLength}, []float64{ub.Inertia[0]}, []float64{ub.Inertia[1]},
		[]float64{ub.Inertia[2]}, [][3]float64{ub.CGOffset}); err != nil {
		return nil, err
	}
	m.SetFrameOfReferenceDelta(ub.LocalAxis)
	return
}

// GenerateUniformSymBeam is GenerateUniformBeam for a section with equal
// inertias, equal shear and bending stiffness in y and z, and the centre of
// gravity on the beam axis.
func GenerateUniformSymBeam(nodePositions [][]float64, massPerLength, inertia, EA, GA, GJ, EI float64,
	nodesPerElem int, localAxis string, numLumpedMass int) (m *Mesh, err error) {
	return GenerateUniformBeam(UniformBeam{
		NodePositions: nodePositions,
		MassPerLength: massPerLength,
		Inertia:       [3]float64{inertia, inertia, inertia},
		EA:            EA,
		GA:            [2]float64{GA, GA},
		GJ:            GJ,
		EI:            [2]float64{EI, EI},
		NodesPer:      nodesPerElem,
		LocalAxis:     localAxis,
		NumLumpedMass: numLumpedMass,
	})
}

// SimpleConnectivity numbers the elements of a single beam whose nodes are
// ordered along it. Element k spans nodes base..base+npe-1 with
// base = k*(npe-1); its end nodes come first and the interior nodes last, so
// a 3-noded element is [2k, 2k+2, 2k+1].
func (m *Mesh) SimpleConnectivity() {
	var (
		npe = m.NodesPerElem
	)
	m.Connectivity = make([][]int, m.NumElem)
	for k := range m.Connectivity {
		var (
			base = k * (npe - 1)
			con  = make([]int, npe)
		)
		con[0], con[1] = base, base+npe-1
		for j := 2; j < npe; j++ {
			con[j] = base + j - 1
		}
		m.Connectivity[k] = con
	}
}

// SetFrameOfReferenceDelta broadcasts the unit vector named by keyword to
// every element slot. An unknown keyword falls back to local-y.
func (m *Mesh) SetFrameOfReferenceDelta(keyword string) {
	axis, ok := types.ParseLocalAxis(keyword)
	if !ok {
		zap.S().Warnw("local axis keyword not recognized, using the default",
			"keyword", keyword, "default", axis.String())
	}
	yB := axis.UnitVector()
	m.FrameOfReferenceDelta = make([][][]float64, m.NumElem)
	for k := range m.FrameOfReferenceDelta {
		m.FrameOfReferenceDelta[k] = make([][]float64, m.NodesPerElem)
		for j := range m.FrameOfReferenceDelta[k] {
			m.FrameOfReferenceDelta[k][j] = []float64{yB[0], yB[1], yB[2]}
		}
	}
}

// RotateAroundOrigin rotates node coordinates and frame of reference deltas
// together, so the section orientation follows the geometry.
func (m *Mesh) RotateAroundOrigin(axis [3]float64, angle float64) (err error) {
	R, err := utils.RotationAroundAxis(axis, angle)
	if err != nil {
		return &types.ConfigurationError{Op: "rotate", Msg: err.Error()}
	}
	for _, x := range m.Coordinates {
		utils.RotateInPlace(R, x)
	}
	for _, slots := range m.FrameOfReferenceDelta {
		for _, d := range slots {
			utils.RotateInPlace(R, d)
		}
	}
	return
}

// Translate shifts every node. Frame of reference deltas are directions and
// are left unchanged.
func (m *Mesh) Translate(offset [3]float64) {
	for _, x := range m.Coordinates {
		for i := 0; i < 3; i++ {
			x[i] += offset[i]
		}
	}
}
