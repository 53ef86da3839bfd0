package aeroelastic

import (
	"fmt"

	"github.com/notargets/aerocase/aero"
	"github.com/notargets/aerocase/structure"
	"github.com/notargets/aerocase/types"
)

// MergeStructures concatenates meshes in argument order into one globally
// indexed mesh. The first mesh keeps its numbering; node references of the
// following meshes are shifted by the running node count, property references
// by the running database sizes, and beam numbers past the largest beam number
// so far. Property databases are concatenated without merging equal rows.
func MergeStructures(meshes ...*structure.Mesh) (m *structure.Mesh, err error) {
	if len(meshes) == 0 {
		err = &types.ConfigurationError{Op: "merge structures", Msg: "no structures to merge"}
		return
	}
	var (
		npe = meshes[0].NodesPerElem
	)
	for i, s := range meshes {
		if s == nil {
			err = &types.ConfigurationError{Op: "merge structures", Msg: fmt.Sprintf("structure %d is nil", i)}
			return
		}
		if s.NodesPerElem != npe {
			err = &types.ShapeMismatchError{Op: "merge structures",
				Msg: fmt.Sprintf("structure %d has %d nodes per element, structure 0 has %d",
					i, s.NodesPerElem, npe)}
			return
		}
	}
	m = &structure.Mesh{
		NodesPerElem: npe,
		StiffnessDB:  &structure.PropertyDatabase{},
		MassDB:       &structure.PropertyDatabase{},
		Lumped:       structure.NewLumpedMasses(0),
	}
	var (
		nodeOffset, stiffOffset, massOffset int
		beamOffset                          int
	)
	for _, s := range meshes {
		m.Coordinates = append(m.Coordinates, types.CloneRows(s.Coordinates)...)
		m.StructuralTwist = append(m.StructuralTwist, s.StructuralTwist...)
		m.BoundaryConditions = append(m.BoundaryConditions, s.BoundaryConditions...)
		m.AppForces = append(m.AppForces, types.CloneRows(s.AppForces)...)

		m.Connectivity = append(m.Connectivity, types.OffsetRows(s.Connectivity, nodeOffset, 0)...)
		m.ElemStiffness = append(m.ElemStiffness, types.OffsetIndex(s.ElemStiffness, stiffOffset, 0)...)
		m.ElemMass = append(m.ElemMass, types.OffsetIndex(s.ElemMass, massOffset, 0)...)
		m.BeamNumber = append(m.BeamNumber, types.OffsetIndex(s.BeamNumber, beamOffset, 0)...)
		m.FrameOfReferenceDelta = append(m.FrameOfReferenceDelta, types.CloneSlabs(s.FrameOfReferenceDelta)...)

		m.StiffnessDB = structure.Concat(m.StiffnessDB, s.StiffnessDB)
		m.MassDB = structure.Concat(m.MassDB, s.MassDB)

		lm := s.Lumped.Copy()
		m.Lumped.Nodes = append(m.Lumped.Nodes, types.OffsetIndex(lm.Nodes, nodeOffset, 0)...)
		m.Lumped.Mass = append(m.Lumped.Mass, lm.Mass...)
		m.Lumped.Inertia = append(m.Lumped.Inertia, lm.Inertia...)
		m.Lumped.Position = append(m.Lumped.Position, lm.Position...)

		m.NumNode += s.NumNode
		m.NumElem += s.NumElem
		nodeOffset += s.NumNode
		stiffOffset += s.StiffnessDB.Len()
		massOffset += s.MassDB.Len()
		beamOffset = types.MaxInt(m.BeamNumber, -1) + 1
	}
	return
}

// MergeAerodynamics concatenates surface descriptors in the order of their
// structures. Airfoil references are shifted by the running airfoil library
// size and surface membership by the running surface count, leaving elements
// outside any surface at NoSurface. Every descriptor must use the same
// chordwise distribution law; an empty law marks a part without lifting
// surfaces and matches any other.
func MergeAerodynamics(surfaces ...*aero.Surface) (s *aero.Surface, err error) {
	if len(surfaces) == 0 {
		err = &types.ConfigurationError{Op: "merge aerodynamics", Msg: "no surfaces to merge"}
		return
	}
	var (
		npe          = surfaces[0].NodesPerElem
		distribution string
	)
	for i, a := range surfaces {
		if a == nil {
			err = &types.ConfigurationError{Op: "merge aerodynamics", Msg: fmt.Sprintf("surface %d is nil", i)}
			return
		}
		if a.NodesPerElem != npe {
			err = &types.ShapeMismatchError{Op: "merge aerodynamics",
				Msg: fmt.Sprintf("surface %d has %d nodes per element, surface 0 has %d",
					i, a.NodesPerElem, npe)}
			return
		}
		if a.MDistribution == "" {
			continue
		}
		if distribution == "" {
			distribution = a.MDistribution
		} else if a.MDistribution != distribution {
			err = &types.ShapeMismatchError{Op: "merge aerodynamics",
				Msg: fmt.Sprintf("surface %d uses distribution %q, earlier surfaces use %q",
					i, a.MDistribution, distribution)}
			return
		}
	}
	if distribution == "" {
		distribution = aero.DefaultDistribution
	}
	s = &aero.Surface{
		NodesPerElem:  npe,
		MDistribution: distribution,
	}
	var airfoilOffset, surfaceOffset int
	for _, a := range surfaces {
		s.AeroNode = append(s.AeroNode, a.AeroNode...)
		s.Chord = append(s.Chord, types.CloneRows(a.Chord)...)
		s.Twist = append(s.Twist, types.CloneRows(a.Twist)...)
		s.Sweep = append(s.Sweep, types.CloneRows(a.Sweep)...)
		s.ElasticAxis = append(s.ElasticAxis, types.CloneRows(a.ElasticAxis)...)
		s.AirfoilDistribution = append(s.AirfoilDistribution, types.OffsetRows(a.AirfoilDistribution, airfoilOffset, 0)...)
		s.SurfaceDistribution = append(s.SurfaceDistribution, types.OffsetIndex(a.SurfaceDistribution, surfaceOffset, 0)...)
		s.SurfaceM = append(s.SurfaceM, a.SurfaceM...)
		s.Airfoils = append(s.Airfoils, types.CloneSlabs(a.Airfoils)...)
		airfoilOffset += a.NumAirfoils()
		surfaceOffset += a.NumSurfaces()
	}
	return
}
