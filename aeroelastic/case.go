package aeroelastic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/notargets/aerocase/aero"
	"github.com/notargets/aerocase/structure"
	"github.com/notargets/aerocase/types"
)

type Stage uint8

const (
	Built Stage = iota
	Assembled
	Collapsed
	Validated
)

func (s Stage) String() string {
	switch s {
	case Built:
		return "built"
	case Assembled:
		return "assembled"
	case Collapsed:
		return "collapsed"
	case Validated:
		return "validated"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Part is one independently built sub-structure with its aerodynamic
// descriptor. A nil Aero stands for a part without lifting surfaces.
type Part struct {
	Structure *structure.Mesh
	Aero      *aero.Surface
}

// Case owns the globally indexed structure and aerodynamics of an assembled
// model. It is transformed in place and becomes read only once validated.
type Case struct {
	Structure *structure.Mesh
	Aero      *aero.Surface
	stage     Stage
	bareAero  bool // Aero is a placeholder, no part had lifting surfaces
}

// NewCase takes ownership of a single part.
func NewCase(p Part) (c *Case, err error) {
	if p.Structure == nil {
		err = &types.ConfigurationError{Op: "new case", Msg: "part has no structure"}
		return
	}
	c = &Case{
		Structure: p.Structure,
		Aero:      p.Aero,
	}
	if c.Aero == nil {
		if c.Aero, err = emptySurface(p.Structure); err != nil {
			return nil, err
		}
		c.Aero.MDistribution = aero.DefaultDistribution
		c.Aero.Airfoils = [][][]float64{aero.FlatCamber(aero.DefaultCamberPoints)}
		c.bareAero = true
	}
	return
}

func (c *Case) Stage() Stage { return c.stage }

func (c *Case) mutable(op string) (err error) {
	if c.stage == Validated {
		err = &types.ConfigurationError{Op: op, Msg: "case is validated and read only"}
	}
	return
}

// Assemble concatenates parts after the current content of the case. The
// inputs are not modified and the case is left untouched on error.
func (c *Case) Assemble(parts ...Part) (err error) {
	if err = c.mutable("assemble"); err != nil {
		return
	}
	all := make([]Part, 0, len(parts)+1)
	if c.Structure != nil {
		own := Part{Structure: c.Structure, Aero: c.Aero}
		if c.bareAero {
			own.Aero = nil
		}
		all = append(all, own)
	}
	all = append(all, parts...)
	if len(all) == 0 {
		return &types.ConfigurationError{Op: "assemble", Msg: "no parts to assemble"}
	}
	var (
		meshes     = make([]*structure.Mesh, len(all))
		surfaces   = make([]*aero.Surface, len(all))
		bare       [][2]int // element ranges of parts without aerodynamics
		elemOffset int
	)
	for i, p := range all {
		if p.Structure == nil {
			return &types.ConfigurationError{Op: "assemble", Msg: fmt.Sprintf("part %d has no structure", i)}
		}
		if p.Aero != nil {
			if err = checkPart(i, p); err != nil {
				return
			}
		}
		meshes[i], surfaces[i] = p.Structure, p.Aero
		if surfaces[i] == nil {
			if surfaces[i], err = emptySurface(p.Structure); err != nil {
				return
			}
			bare = append(bare, [2]int{elemOffset, elemOffset + p.Structure.NumElem})
		}
		elemOffset += len(surfaces[i].AirfoilDistribution)
	}
	var (
		m *structure.Mesh
		s *aero.Surface
	)
	if m, err = MergeStructures(meshes...); err != nil {
		return
	}
	if s, err = MergeAerodynamics(surfaces...); err != nil {
		return
	}
	// Slots without aerodynamics still reference a valid airfoil
	bareAero := s.NumAirfoils() == 0
	if bareAero {
		s.Airfoils = [][][]float64{aero.FlatCamber(aero.DefaultCamberPoints)}
	}
	for _, r := range bare {
		for e := r[0]; e < r[1]; e++ {
			for j := range s.AirfoilDistribution[e] {
				s.AirfoilDistribution[e][j] = 0
			}
		}
	}
	c.Structure, c.Aero = m, s
	c.bareAero = bareAero
	c.stage = Assembled
	zap.S().Debugw("assembled case", "parts", len(all), "nodes", m.NumNode, "elements", m.NumElem)
	return
}

// checkPart requires the aerodynamic tables of a part to fit its own
// structure, so that rows stay aligned after concatenation.
func checkPart(i int, p Part) (err error) {
	var (
		m = p.Structure
		s = p.Aero
	)
	if err = checkPerNode("aero node", len(s.AeroNode), m.NumNode); err == nil {
		if err = checkSlotTables(s, m); err == nil && len(s.SurfaceDistribution) != m.NumElem {
			err = types.NewSchemaViolation("surface distribution",
				fmt.Sprintf("%d entries", m.NumElem), len(s.SurfaceDistribution))
		}
	}
	if err != nil {
		err = &types.ShapeMismatchError{Op: "assemble", Msg: fmt.Sprintf("part %d: %v", i, err)}
	}
	return
}

// emptySurface describes a structure that carries no aerodynamic load.
func emptySurface(m *structure.Mesh) (s *aero.Surface, err error) {
	if s, err = aero.Allocate(m.NodesPerElem, m.NumNode, m.NumElem, 0, 0, 0); err != nil {
		return
	}
	s.MDistribution = ""
	return
}

// SetBoundaryCondition tags a node of the assembled case. Negative node
// references count back from the last node.
func (c *Case) SetBoundaryCondition(ref int, bc types.BCTAG) (err error) {
	var node int
	if err = c.mutable("boundary condition"); err != nil {
		return
	}
	if !bc.Valid() {
		return &types.ConfigurationError{Op: "boundary condition", Msg: fmt.Sprintf("invalid tag %s", bc)}
	}
	if node, err = c.Structure.NodeIndex(ref); err != nil {
		return
	}
	c.Structure.BoundaryConditions[node] = bc
	return
}

// SetAppliedForce sets the follower force and moment at a node.
func (c *Case) SetAppliedForce(ref int, force [6]float64) (err error) {
	var node int
	if err = c.mutable("applied force"); err != nil {
		return
	}
	if node, err = c.Structure.NodeIndex(ref); err != nil {
		return
	}
	c.Structure.AppForces[node] = force[:]
	return
}

// AddLumpedMass attaches a point mass to a node of the assembled case.
func (c *Case) AddLumpedMass(ref int, mass float64, inertia [3][3]float64, position [3]float64) (err error) {
	var node int
	if err = c.mutable("lumped mass"); err != nil {
		return
	}
	if node, err = c.Structure.NodeIndex(ref); err != nil {
		return
	}
	return c.Structure.AddLumpedMass(node, mass, inertia, position)
}

// Validate certifies a collapsed case and freezes it.
func (c *Case) Validate() (err error) {
	switch c.stage {
	case Validated:
		return
	case Collapsed:
	default:
		return &types.ConfigurationError{Op: "validate",
			Msg: fmt.Sprintf("case is %s, coincident nodes must be collapsed first", c.stage)}
	}
	if err = CheckStructure(c.Structure); err != nil {
		return
	}
	if err = CheckAerodynamics(c.Aero, c.Structure); err != nil {
		return
	}
	c.stage = Validated
	return
}
