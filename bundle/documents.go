package bundle

import (
	"strconv"

	"github.com/notargets/aerocase/aero"
	"github.com/notargets/aerocase/structure"
)

// Artifact file name suffixes, appended to the case name.
const (
	StructureExt = ".fem.bson"
	AeroExt      = ".aero.bson"
	DynamicExt   = ".dyn.bson"
	SolverExt    = ".solver.txt"
)

// Suffixes of artifacts written by earlier generations of the tool, removed
// by Clean along with the current ones.
var legacyExts = []string{".mb.bson", ".flightcon.txt"}

// StructureDocument is the structural artifact.
type StructureDocument struct {
	BuildID               string        `bson:"build_id"`
	Coordinates           [][]float64   `bson:"coordinates"`
	Connectivities        [][]int       `bson:"connectivities"`
	NumNodeElem           int           `bson:"num_node_elem"`
	NumNode               int           `bson:"num_node"`
	NumElem               int           `bson:"num_elem"`
	StiffnessDB           [][][]float64 `bson:"stiffness_db"`
	ElemStiffness         []int         `bson:"elem_stiffness"`
	MassDB                [][][]float64 `bson:"mass_db"`
	ElemMass              []int         `bson:"elem_mass"`
	FrameOfReferenceDelta [][][]float64 `bson:"frame_of_reference_delta"`
	StructuralTwist       []float64     `bson:"structural_twist"`
	BoundaryConditions    []int         `bson:"boundary_conditions"`
	BeamNumber            []int         `bson:"beam_number"`
	AppForces             [][]float64   `bson:"app_forces"`
	LumpedMassNodes       []int         `bson:"lumped_mass_nodes,omitempty"`
	LumpedMass            []float64     `bson:"lumped_mass,omitempty"`
	LumpedMassInertia     [][][]float64 `bson:"lumped_mass_inertia,omitempty"`
	LumpedMassPosition    [][]float64   `bson:"lumped_mass_position,omitempty"`
}

// SlotTable is a per element slot table carrying its physical units.
type SlotTable struct {
	Data  [][]float64 `bson:"data"`
	Units string      `bson:"units"`
}

// AeroDocument is the aerodynamic artifact. Airfoils are keyed by their
// decimal index.
type AeroDocument struct {
	BuildID             string                 `bson:"build_id"`
	AeroNode            []bool                 `bson:"aero_node"`
	Chord               SlotTable              `bson:"chord"`
	Twist               SlotTable              `bson:"twist"`
	Sweep               SlotTable              `bson:"sweep"`
	SurfaceM            []int                  `bson:"surface_m"`
	SurfaceDistribution []int                  `bson:"surface_distribution"`
	MDistribution       string                 `bson:"m_distribution"`
	ElasticAxis         [][]float64            `bson:"elastic_axis"`
	AirfoilDistribution [][]int                `bson:"airfoil_distribution"`
	Airfoils            map[string][][]float64 `bson:"airfoils"`
}

// DynamicDocument is the time dependent forcing artifact.
type DynamicDocument struct {
	BuildID       string        `bson:"build_id"`
	DynamicForces [][][]float64 `bson:"dynamic_forces,omitempty"`
	ForVel        [][]float64   `bson:"for_vel,omitempty"`
	ForAcc        [][]float64   `bson:"for_acc,omitempty"`
	NumSteps      int           `bson:"num_steps"`
}

func newStructureDocument(buildID string, m *structure.Mesh) (doc *StructureDocument) {
	doc = &StructureDocument{
		BuildID:               buildID,
		Coordinates:           m.Coordinates,
		Connectivities:        m.Connectivity,
		NumNodeElem:           m.NodesPerElem,
		NumNode:               m.NumNode,
		NumElem:               m.NumElem,
		StiffnessDB:           m.StiffnessDB.Raw(),
		ElemStiffness:         m.ElemStiffness,
		MassDB:                m.MassDB.Raw(),
		ElemMass:              m.ElemMass,
		FrameOfReferenceDelta: m.FrameOfReferenceDelta,
		StructuralTwist:       m.StructuralTwist,
		BoundaryConditions:    make([]int, len(m.BoundaryConditions)),
		BeamNumber:            m.BeamNumber,
		AppForces:             m.AppForces,
	}
	for i, bc := range m.BoundaryConditions {
		doc.BoundaryConditions[i] = int(bc)
	}
	if lm := m.Lumped; lm.Len() != 0 {
		doc.LumpedMassNodes = lm.Nodes
		doc.LumpedMass = lm.Mass
		doc.LumpedMassPosition = lm.Position
		doc.LumpedMassInertia = make([][][]float64, lm.Len())
		for k, in := range lm.Inertia {
			doc.LumpedMassInertia[k] = make([][]float64, 3)
			for i := 0; i < 3; i++ {
				doc.LumpedMassInertia[k][i] = []float64{in.At(i, 0), in.At(i, 1), in.At(i, 2)}
			}
		}
	}
	return
}

func newAeroDocument(buildID string, s *aero.Surface) (doc *AeroDocument) {
	doc = &AeroDocument{
		BuildID:             buildID,
		AeroNode:            s.AeroNode,
		Chord:               SlotTable{Data: s.Chord, Units: "m"},
		Twist:               SlotTable{Data: s.Twist, Units: "rad"},
		Sweep:               SlotTable{Data: s.Sweep, Units: "rad"},
		SurfaceM:            s.SurfaceM,
		SurfaceDistribution: s.SurfaceDistribution,
		MDistribution:       s.MDistribution,
		ElasticAxis:         s.ElasticAxis,
		AirfoilDistribution: s.AirfoilDistribution,
		Airfoils:            make(map[string][][]float64, s.NumAirfoils()),
	}
	for i, camber := range s.Airfoils {
		doc.Airfoils[strconv.Itoa(i)] = camber
	}
	return
}
