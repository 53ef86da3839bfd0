package structure

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/aerocase/types"
)

// LumpedMasses holds discrete point masses attached to nodes. The four
// tables are parallel, one row per lumped mass.
type LumpedMasses struct {
	Nodes    []int        // Node each mass is attached to
	Mass     []float64    // Scalar mass
	Inertia  []*mat.Dense // 3x3 inertia tensor
	Position [][]float64  // Offset from the node [3]
}

func NewLumpedMasses(N int) (lm LumpedMasses) {
	lm = LumpedMasses{
		Nodes:    make([]int, N),
		Mass:     make([]float64, N),
		Inertia:  make([]*mat.Dense, N),
		Position: make([][]float64, N),
	}
	for i := 0; i < N; i++ {
		lm.Inertia[i] = mat.NewDense(3, 3, nil)
		lm.Position[i] = make([]float64, 3)
	}
	return
}

func (lm LumpedMasses) Len() int { return len(lm.Nodes) }

func (lm LumpedMasses) Copy() (c LumpedMasses) {
	c = LumpedMasses{
		Nodes:    append([]int(nil), lm.Nodes...),
		Mass:     append([]float64(nil), lm.Mass...),
		Inertia:  make([]*mat.Dense, len(lm.Inertia)),
		Position: types.CloneRows(lm.Position),
	}
	for i, in := range lm.Inertia {
		if in != nil {
			c.Inertia[i] = mat.DenseCopyOf(in)
		}
	}
	return
}

// Mesh is the structural description of a beam assembly. Per-node tables are
// indexed by node, per-element tables by element, and element slot tables by
// [element][local node].
type Mesh struct {
	NodesPerElem int
	NumNode      int
	NumElem      int

	// Per node
	Coordinates        [][]float64 // [NumNode][3]
	StructuralTwist    []float64
	BoundaryConditions []types.BCTAG
	AppForces          [][]float64 // Follower forces and moments [NumNode][6]

	// Per element
	Connectivity          [][]int       // [NumElem][NodesPerElem]
	ElemStiffness         []int         // Row of StiffnessDB
	ElemMass              []int         // Row of MassDB
	BeamNumber            []int         // Beam segment the element belongs to
	FrameOfReferenceDelta [][][]float64 // [NumElem][NodesPerElem][3]

	StiffnessDB *PropertyDatabase
	MassDB      *PropertyDatabase

	Lumped LumpedMasses
}

// DeriveElementCount returns the number of elements of a single beam whose
// consecutive elements share their end nodes.
func DeriveElementCount(numNode, nodesPerElem int) (numElem int, err error) {
	if nodesPerElem < 2 {
		err = &types.ConfigurationError{Op: "element count",
			Msg: fmt.Sprintf("nodes per element must be at least 2, have %d", nodesPerElem)}
		return
	}
	if numNode < 1 || (numNode-1)%(nodesPerElem-1) != 0 {
		err = &types.ConfigurationError{Op: "element count",
			Msg: fmt.Sprintf("%d nodes cannot be split into %d-noded elements sharing end nodes",
				numNode, nodesPerElem)}
		return
	}
	numElem = (numNode - 1) / (nodesPerElem - 1)
	return
}

// Allocate returns a mesh with every table zero filled to its final shape.
func Allocate(nodesPerElem, numNode, numElem, numStiffDB, numMassDB, numLumpedMass int) (m *Mesh, err error) {
	var expected int
	if expected, err = DeriveElementCount(numNode, nodesPerElem); err != nil {
		return
	}
	if numElem != expected {
		err = &types.ConfigurationError{Op: "allocate",
			Msg: fmt.Sprintf("%d nodes with %d nodes per element make %d elements, not %d",
				numNode, nodesPerElem, expected, numElem)}
		return
	}
	if numStiffDB < 0 || numMassDB < 0 || numLumpedMass < 0 {
		err = &types.ConfigurationError{Op: "allocate",
			Msg: fmt.Sprintf("negative table size: stiffness %d, mass %d, lumped %d",
				numStiffDB, numMassDB, numLumpedMass)}
		return
	}
	m = &Mesh{
		NodesPerElem:          nodesPerElem,
		NumNode:               numNode,
		NumElem:               numElem,
		Coordinates:           make([][]float64, numNode),
		StructuralTwist:       make([]float64, numNode),
		BoundaryConditions:    make([]types.BCTAG, numNode),
		AppForces:             make([][]float64, numNode),
		Connectivity:          make([][]int, numElem),
		ElemStiffness:         make([]int, numElem),
		ElemMass:              make([]int, numElem),
		BeamNumber:            make([]int, numElem),
		FrameOfReferenceDelta: make([][][]float64, numElem),
		StiffnessDB:           NewPropertyDatabase(numStiffDB),
		MassDB:                NewPropertyDatabase(numMassDB),
		Lumped:                NewLumpedMasses(numLumpedMass),
	}
	for i := 0; i < numNode; i++ {
		m.Coordinates[i] = make([]float64, 3)
		m.AppForces[i] = make([]float64, 6)
	}
	for k := 0; k < numElem; k++ {
		m.Connectivity[k] = make([]int, nodesPerElem)
		m.FrameOfReferenceDelta[k] = make([][]float64, nodesPerElem)
		for j := range m.FrameOfReferenceDelta[k] {
			m.FrameOfReferenceDelta[k][j] = make([]float64, 3)
		}
	}
	return
}

// FullStructure carries explicitly authored tables for FromArrays.
type FullStructure struct {
	NodesPerElem          int
	Coordinates           [][]float64
	Connectivity          [][]int
	ElemStiffness         []int
	StiffnessDB           *PropertyDatabase
	ElemMass              []int
	MassDB                *PropertyDatabase
	FrameOfReferenceDelta [][][]float64
	StructuralTwist       []float64
	BoundaryConditions    []types.BCTAG
	BeamNumber            []int
	AppForces             [][]float64
	Lumped                LumpedMasses
}

// FromArrays builds a mesh from per-node and per-element tables. Counts are
// taken from the coordinate and connectivity tables; shape consistency of the
// remaining tables is left to the validator.
func FromArrays(fs FullStructure) (m *Mesh) {
	m = &Mesh{
		NodesPerElem:          fs.NodesPerElem,
		NumNode:               len(fs.Coordinates),
		NumElem:               len(fs.Connectivity),
		Coordinates:           types.CloneRows(fs.Coordinates),
		StructuralTwist:       append([]float64(nil), fs.StructuralTwist...),
		BoundaryConditions:    append([]types.BCTAG(nil), fs.BoundaryConditions...),
		AppForces:             types.CloneRows(fs.AppForces),
		Connectivity:          types.CloneRows(fs.Connectivity),
		ElemStiffness:         append([]int(nil), fs.ElemStiffness...),
		ElemMass:              append([]int(nil), fs.ElemMass...),
		BeamNumber:            append([]int(nil), fs.BeamNumber...),
		FrameOfReferenceDelta: types.CloneSlabs(fs.FrameOfReferenceDelta),
		StiffnessDB:           fs.StiffnessDB.Copy(),
		MassDB:                fs.MassDB.Copy(),
		Lumped:                fs.Lumped.Copy(),
	}
	return
}

func (m *Mesh) Copy() (c *Mesh) {
	c = FromArrays(FullStructure{
		NodesPerElem:          m.NodesPerElem,
		Coordinates:           m.Coordinates,
		Connectivity:          m.Connectivity,
		ElemStiffness:         m.ElemStiffness,
		StiffnessDB:           m.StiffnessDB,
		ElemMass:              m.ElemMass,
		MassDB:                m.MassDB,
		FrameOfReferenceDelta: m.FrameOfReferenceDelta,
		StructuralTwist:       m.StructuralTwist,
		BoundaryConditions:    m.BoundaryConditions,
		BeamNumber:            m.BeamNumber,
		AppForces:             m.AppForces,
		Lumped:                m.Lumped,
	})
	c.NumNode, c.NumElem = m.NumNode, m.NumElem
	return
}

// SetLumpedMass fills row i of the lumped mass tables.
func (m *Mesh) SetLumpedMass(i, node int, mass float64, inertia [3][3]float64, position [3]float64) (err error) {
	if i < 0 || i >= m.Lumped.Len() {
		err = &types.ConfigurationError{Op: "lumped mass",
			Msg: fmt.Sprintf("row %d outside the %d allocated lumped masses", i, m.Lumped.Len())}
		return
	}
	if node < 0 || node >= m.NumNode {
		err = &types.ConfigurationError{Op: "lumped mass",
			Msg: fmt.Sprintf("node %d outside [0,%d)", node, m.NumNode)}
		return
	}
	m.Lumped.Nodes[i] = node
	m.Lumped.Mass[i] = mass
	m.Lumped.Inertia[i] = mat.NewDense(3, 3, []float64{
		inertia[0][0], inertia[0][1], inertia[0][2],
		inertia[1][0], inertia[1][1], inertia[1][2],
		inertia[2][0], inertia[2][1], inertia[2][2],
	})
	m.Lumped.Position[i] = []float64{position[0], position[1], position[2]}
	return
}

// AddLumpedMass appends a lumped mass attached to node.
func (m *Mesh) AddLumpedMass(node int, mass float64, inertia [3][3]float64, position [3]float64) (err error) {
	var (
		i = m.Lumped.Len()
	)
	m.Lumped.Nodes = append(m.Lumped.Nodes, 0)
	m.Lumped.Mass = append(m.Lumped.Mass, 0)
	m.Lumped.Inertia = append(m.Lumped.Inertia, nil)
	m.Lumped.Position = append(m.Lumped.Position, nil)
	if err = m.SetLumpedMass(i, node, mass, inertia, position); err != nil {
		m.Lumped.Nodes = m.Lumped.Nodes[:i]
		m.Lumped.Mass = m.Lumped.Mass[:i]
		m.Lumped.Inertia = m.Lumped.Inertia[:i]
		m.Lumped.Position = m.Lumped.Position[:i]
	}
	return
}

// NodeIndex resolves a node reference where negative values count back from
// the last node, so -1 is the last node.
func (m *Mesh) NodeIndex(ref int) (node int, err error) {
	node = ref
	if ref < 0 {
		node = m.NumNode + ref
	}
	if node < 0 || node >= m.NumNode {
		err = &types.ConfigurationError{Op: "node reference",
			Msg: fmt.Sprintf("node %d outside a mesh of %d nodes", ref, m.NumNode)}
	}
	return
}

func (m *Mesh) PrintStatistics() {
	fmt.Printf("Structure Statistics:\n")
	fmt.Printf("  Nodes: %d\n", m.NumNode)
	fmt.Printf("  Elements: %d (%d nodes each)\n", m.NumElem, m.NodesPerElem)
	fmt.Printf("  Stiffness DB rows: %d\n", m.StiffnessDB.Len())
	fmt.Printf("  Mass DB rows: %d\n", m.MassDB.Len())
	fmt.Printf("  Lumped masses: %d\n", m.Lumped.Len())
}
