package aero

import (
	"fmt"

	"github.com/notargets/aerocase/structure"
	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

const (
	// DefaultDistribution is the chordwise panel spacing law of a new surface.
	DefaultDistribution = "uniform"
	NoSurface           = -1
	DefaultCamberPoints = 100
)

// Surface is the aerodynamic descriptor attached to a structural mesh. Slot
// tables are indexed [element][local node] following the mesh connectivity.
type Surface struct {
	NodesPerElem int

	AeroNode []bool // Node carries aerodynamic properties

	Chord               [][]float64 // m
	Twist               [][]float64 // rad
	Sweep               [][]float64 // rad
	ElasticAxis         [][]float64 // Chord fraction measured from the leading edge
	AirfoilDistribution [][]int     // Row of Airfoils

	SurfaceDistribution []int  // Surface of each element, NoSurface when none
	SurfaceM            []int  // Chordwise panels of each surface
	MDistribution       string // Chordwise spacing law, shared by every surface

	Airfoils [][][]float64 // Camber lines [airfoil][point][x,y]
}

func (s *Surface) NumAirfoils() int { return len(s.Airfoils) }

func (s *Surface) NumSurfaces() int { return len(s.SurfaceM) }

// Allocate returns a descriptor with zero properties, no element assigned to
// a surface, and every camber line flat with x evenly spaced over [0, 1].
func Allocate(nodesPerElem, numNode, numElem, numAirfoils, numSurfaces, numCamberPoints int) (s *Surface, err error) {
	if nodesPerElem < 2 || numNode < 0 || numElem < 0 || numAirfoils < 0 || numSurfaces < 0 || numCamberPoints < 0 {
		err = &types.ConfigurationError{Op: "aero allocate",
			Msg: fmt.Sprintf("invalid sizes: nodesPerElem=%d numNode=%d numElem=%d airfoils=%d surfaces=%d camber points=%d",
				nodesPerElem, numNode, numElem, numAirfoils, numSurfaces, numCamberPoints)}
		return
	}
	s = &Surface{
		NodesPerElem:        nodesPerElem,
		AeroNode:            make([]bool, numNode),
		Chord:               zeroSlots[float64](numElem, nodesPerElem),
		Twist:               zeroSlots[float64](numElem, nodesPerElem),
		Sweep:               zeroSlots[float64](numElem, nodesPerElem),
		ElasticAxis:         zeroSlots[float64](numElem, nodesPerElem),
		AirfoilDistribution: zeroSlots[int](numElem, nodesPerElem),
		SurfaceDistribution: make([]int, numElem),
		SurfaceM:            make([]int, numSurfaces),
		MDistribution:       DefaultDistribution,
		Airfoils:            make([][][]float64, numAirfoils),
	}
	for k := range s.SurfaceDistribution {
		s.SurfaceDistribution[k] = NoSurface
	}
	for i := range s.Airfoils {
		s.Airfoils[i] = FlatCamber(numCamberPoints)
	}
	return
}

// FlatCamber is a zero camber line sampled at N evenly spaced chord stations.
func FlatCamber(N int) (camber [][]float64) {
	x := utils.Linspace(0, 1, N)
	camber = make([][]float64, N)
	for i := range camber {
		camber[i] = []float64{x[i], 0}
	}
	return
}

func zeroSlots[T any](numElem, nodesPerElem int) (m [][]T) {
	m = make([][]T, numElem)
	for k := range m {
		m[k] = make([]T, nodesPerElem)
	}
	return
}

func constSlots[T any](numElem, nodesPerElem int, val T) (m [][]T) {
	m = zeroSlots[T](numElem, nodesPerElem)
	for _, row := range m {
		for j := range row {
			row[j] = val
		}
	}
	return
}

// ExpandNodeToElementSlots fans per-node values out to element slots through
// the connectivity: out[e][s] = nodeValues[connectivity[e][s]].
func ExpandNodeToElementSlots[T any](nodeValues []T, connectivity [][]int) (out [][]T, err error) {
	out = make([][]T, len(connectivity))
	for e, con := range connectivity {
		out[e] = make([]T, len(con))
		for s, node := range con {
			if node < 0 || node >= len(nodeValues) {
				err = &types.ConfigurationError{Op: "expand node values",
					Msg: fmt.Sprintf("element %d slot %d references node %d, have %d node values",
						e, s, node, len(nodeValues))}
				return nil, err
			}
			out[e][s] = nodeValues[node]
		}
	}
	return
}

// UniformSurface holds properties broadcast to every element slot of a mesh.
type UniformSurface struct {
	Chord, Twist, Sweep, ElasticAxis float64
	Panels                           int
	Distribution                     string
	// Airfoil is the single camber line [point][x,y]. A flat line of
	// CamberPoints points is used when empty.
	Airfoil      [][]float64
	CamberPoints int
}

// CreateUniform builds a single aerodynamic surface covering every element of
// mesh with constant properties.
func CreateUniform(mesh *structure.Mesh, us UniformSurface) (s *Surface, err error) {
	if us.Panels < 0 {
		err = &types.ConfigurationError{Op: "uniform surface",
			Msg: fmt.Sprintf("negative chordwise panel count %d", us.Panels)}
		return
	}
	var (
		ne  = mesh.NumElem
		npe = mesh.NodesPerElem
	)
	s = &Surface{
		NodesPerElem:        npe,
		AeroNode:            make([]bool, mesh.NumNode),
		Chord:               constSlots(ne, npe, us.Chord),
		Twist:               constSlots(ne, npe, us.Twist),
		Sweep:               constSlots(ne, npe, us.Sweep),
		ElasticAxis:         constSlots(ne, npe, us.ElasticAxis),
		AirfoilDistribution: zeroSlots[int](ne, npe),
		SurfaceDistribution: make([]int, ne),
		SurfaceM:            []int{us.Panels},
		MDistribution:       us.Distribution,
	}
	for i := range s.AeroNode {
		s.AeroNode[i] = true
	}
	if s.MDistribution == "" {
		s.MDistribution = DefaultDistribution
	}
	if len(us.Airfoil) == 0 {
		np := us.CamberPoints
		if np == 0 {
			np = DefaultCamberPoints
		}
		s.Airfoils = [][][]float64{FlatCamber(np)}
	} else {
		s.Airfoils = [][][]float64{types.CloneRows(us.Airfoil)}
	}
	return
}

// PerNodeSurface holds properties authored per node, stored per element slot
// after expansion through the mesh connectivity.
type PerNodeSurface struct {
	AeroNode     []bool
	Chord        []float64
	Twist        []float64
	Sweep        []float64
	ElasticAxis  []float64
	AirfoilIndex []int

	SurfaceM            []int
	SurfaceDistribution []int // Per element
	Distribution        string
	Airfoils            [][][]float64
}

func CreateFromPerNodeVectors(mesh *structure.Mesh, pn PerNodeSurface) (s *Surface, err error) {
	var (
		con = mesh.Connectivity
		nn  = mesh.NumNode
	)
	names := []string{"aero node", "chord", "twist", "sweep", "elastic axis", "airfoil index"}
	for i, l := range []int{len(pn.AeroNode), len(pn.Chord), len(pn.Twist),
		len(pn.Sweep), len(pn.ElasticAxis), len(pn.AirfoilIndex)} {
		if l != nn {
			err = &types.ConfigurationError{Op: "per node surface",
				Msg: fmt.Sprintf("%s has %d values for %d nodes", names[i], l, nn)}
			return
		}
	}
	s = &Surface{
		NodesPerElem:        mesh.NodesPerElem,
		AeroNode:            append([]bool(nil), pn.AeroNode...),
		SurfaceDistribution: append([]int(nil), pn.SurfaceDistribution...),
		SurfaceM:            append([]int(nil), pn.SurfaceM...),
		MDistribution:       pn.Distribution,
		Airfoils:            types.CloneSlabs(pn.Airfoils),
	}
	if s.MDistribution == "" {
		s.MDistribution = DefaultDistribution
	}
	if s.Chord, err = ExpandNodeToElementSlots(pn.Chord, con); err != nil {
		return nil, err
	}
	if s.Twist, err = ExpandNodeToElementSlots(pn.Twist, con); err != nil {
		return nil, err
	}
	if s.Sweep, err = ExpandNodeToElementSlots(pn.Sweep, con); err != nil {
		return nil, err
	}
	if s.ElasticAxis, err = ExpandNodeToElementSlots(pn.ElasticAxis, con); err != nil {
		return nil, err
	}
	if s.AirfoilDistribution, err = ExpandNodeToElementSlots(pn.AirfoilIndex, con); err != nil {
		return nil, err
	}
	return
}

func (s *Surface) Copy() (c *Surface) {
	c = &Surface{
		NodesPerElem:        s.NodesPerElem,
		AeroNode:            append([]bool(nil), s.AeroNode...),
		Chord:               types.CloneRows(s.Chord),
		Twist:               types.CloneRows(s.Twist),
		Sweep:               types.CloneRows(s.Sweep),
		ElasticAxis:         types.CloneRows(s.ElasticAxis),
		AirfoilDistribution: types.CloneRows(s.AirfoilDistribution),
		SurfaceDistribution: append([]int(nil), s.SurfaceDistribution...),
		SurfaceM:            append([]int(nil), s.SurfaceM...),
		MDistribution:       s.MDistribution,
		Airfoils:            types.CloneSlabs(s.Airfoils),
	}
	return
}
