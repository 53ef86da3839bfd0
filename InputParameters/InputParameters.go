package InputParameters

import (
	"fmt"
	"math"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/aerocase/aero"
	"github.com/notargets/aerocase/aeroelastic"
	"github.com/notargets/aerocase/bundle"
	"github.com/notargets/aerocase/settings"
	"github.com/notargets/aerocase/structure"
	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

// Parameters obtained from the YAML case definition file
type CaseParameters struct {
	Title         string                `json:"Title"`
	Route         string                `json:"Route"`
	Case          string                `json:"Case"`
	Tolerance     float64               `json:"Tolerance"`
	Beams         []BeamParameters      `json:"Beams"`
	BCs           map[int]string        `json:"BCs"`           // Post assembly, negative nodes count from the end
	AppliedForces map[int][]float64     `json:"AppliedForces"` // Post assembly follower force and moment
	LumpedMasses  []LumpedMassParameter `json:"LumpedMasses"`  // Post assembly
	Solvers       SolverParameters      `json:"Solvers"`
	Dynamic       *DynamicParameters    `json:"Dynamic"`
}

// BeamParameters describes one uniform beam, either by explicit node
// positions or by a straight line from Start along Direction.
type BeamParameters struct {
	Name          string                `json:"Name"`
	Nodes         [][]float64           `json:"Nodes"`
	NumNode       int                   `json:"NumNode"`
	Start         [3]float64            `json:"Start"`
	Direction     [3]float64            `json:"Direction"`
	Length        float64               `json:"Length"`
	NodesPerElem  int                   `json:"NodesPerElem"`
	MassPerLength float64               `json:"MassPerLength"`
	Inertia       [3]float64            `json:"Inertia"`
	CGOffset      [3]float64            `json:"CGOffset"`
	EA            float64               `json:"EA"`
	GA            [2]float64            `json:"GA"`
	GJ            float64               `json:"GJ"`
	EI            [2]float64            `json:"EI"`
	LocalAxis     string                `json:"LocalAxis"`
	Rotation      *RotationSpec         `json:"Rotation"`
	Translation   [3]float64            `json:"Translation"`
	BCs           map[int]string        `json:"BCs"`
	LumpedMasses  []LumpedMassParameter `json:"LumpedMasses"`
	Aero          *AeroParameters       `json:"Aero"`
}

// RotationSpec rotates a beam about an axis through the origin, applied
// before the translation.
type RotationSpec struct {
	Axis     [3]float64 `json:"Axis"`
	AngleDeg float64    `json:"AngleDeg"`
}

type LumpedMassParameter struct {
	Node     int           `json:"Node"`
	Mass     float64       `json:"Mass"`
	Inertia  [3][3]float64 `json:"Inertia"`
	Position [3]float64    `json:"Position"`
}

// AeroParameters attaches a lifting surface to a beam. Type is none, uniform
// or pernode; pernode takes the per node vectors of PerNode.
type AeroParameters struct {
	Type         string               `json:"Type"`
	Chord        float64              `json:"Chord"`
	Twist        float64              `json:"Twist"`
	Sweep        float64              `json:"Sweep"`
	ElasticAxis  float64              `json:"ElasticAxis"`
	Panels       int                  `json:"Panels"`
	Distribution string               `json:"Distribution"`
	CamberPoints int                  `json:"CamberPoints"`
	Airfoil      [][]float64          `json:"Airfoil"`
	PerNode      *aero.PerNodeSurface `json:"PerNode"`
}

type SolverParameters struct {
	Flow     []string                          `json:"Flow"`
	SetAll   map[string]interface{}            `json:"SetAll"`
	Settings map[string]map[string]interface{} `json:"Settings"`
	Uinf     *struct {
		Direction [3]float64 `json:"Direction"`
		Speed     float64    `json:"Speed"`
	} `json:"Uinf"`
	NumSteps int `json:"NumSteps"`
}

type DynamicParameters struct {
	NumSteps     int  `json:"NumSteps"`
	ForcedMotion bool `json:"ForcedMotion"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%s]\t\t= Case\n", cp.Case)
	fmt.Printf("[%s]\t\t= Route\n", cp.Route)
	fmt.Printf("%8.2e\t\t= Tolerance\n", cp.Tolerance)
	for i, b := range cp.Beams {
		aeroType := "none"
		if b.Aero != nil && b.Aero.Type != "" {
			aeroType = b.Aero.Type
		}
		fmt.Printf("Beam[%d] %q: %d nodes, aero %s\n", i, b.Name, b.numNode(), aeroType)
	}
	keys := make([]int, 0, len(cp.BCs))
	for k := range cp.BCs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%d] = %s\n", key, cp.BCs[key])
	}
	fmt.Printf("%v\t= Flow\n", cp.Solvers.Flow)
}

func (b *BeamParameters) numNode() int {
	if len(b.Nodes) != 0 {
		return len(b.Nodes)
	}
	return b.NumNode
}

func (b *BeamParameters) nodePositions() (pos [][]float64, err error) {
	if len(b.Nodes) != 0 {
		return types.CloneRows(b.Nodes), nil
	}
	norm := math.Sqrt(b.Direction[0]*b.Direction[0] + b.Direction[1]*b.Direction[1] + b.Direction[2]*b.Direction[2])
	if b.NumNode < 2 || norm == 0 {
		err = &types.ConfigurationError{Op: "beam " + b.Name,
			Msg: "need explicit Nodes or NumNode >= 2 with a non zero Direction"}
		return
	}
	s := utils.Linspace(0, b.Length, b.NumNode)
	pos = make([][]float64, b.NumNode)
	for i := range pos {
		pos[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			pos[i][j] = b.Start[j] + s[i]*b.Direction[j]/norm
		}
	}
	return
}

// BuildPart builds the structure of a beam in its final position with its
// boundary conditions, lumped masses and aerodynamic surface.
func (b *BeamParameters) BuildPart() (p aeroelastic.Part, err error) {
	var pos [][]float64
	if pos, err = b.nodePositions(); err != nil {
		return
	}
	var m *structure.Mesh
	if m, err = structure.GenerateUniformBeam(structure.UniformBeam{
		NodePositions: pos,
		MassPerLength: b.MassPerLength,
		Inertia:       b.Inertia,
		CGOffset:      b.CGOffset,
		EA:            b.EA,
		GA:            b.GA,
		GJ:            b.GJ,
		EI:            b.EI,
		NodesPer:      b.NodesPerElem,
		LocalAxis:     b.LocalAxis,
	}); err != nil {
		return
	}
	if r := b.Rotation; r != nil {
		if err = m.RotateAroundOrigin(r.Axis, r.AngleDeg*math.Pi/180); err != nil {
			return
		}
	}
	m.Translate(b.Translation)
	if err = applyBCs(b.BCs, m.NodeIndex, func(node int, bc types.BCTAG) error {
		m.BoundaryConditions[node] = bc
		return nil
	}); err != nil {
		return
	}
	for _, lm := range b.LumpedMasses {
		var node int
		if node, err = m.NodeIndex(lm.Node); err != nil {
			return
		}
		if err = m.AddLumpedMass(node, lm.Mass, lm.Inertia, lm.Position); err != nil {
			return
		}
	}
	p.Structure = m
	if b.Aero == nil {
		return
	}
	switch b.Aero.Type {
	case "", "none":
	case "uniform":
		p.Aero, err = aero.CreateUniform(m, aero.UniformSurface{
			Chord:        b.Aero.Chord,
			Twist:        b.Aero.Twist,
			Sweep:        b.Aero.Sweep,
			ElasticAxis:  b.Aero.ElasticAxis,
			Panels:       b.Aero.Panels,
			Distribution: b.Aero.Distribution,
			Airfoil:      b.Aero.Airfoil,
			CamberPoints: b.Aero.CamberPoints,
		})
	case "pernode":
		if b.Aero.PerNode == nil {
			err = &types.ConfigurationError{Op: "beam " + b.Name, Msg: "pernode aero without PerNode vectors"}
			return
		}
		p.Aero, err = aero.CreateFromPerNodeVectors(m, *b.Aero.PerNode)
	default:
		err = &types.ConfigurationError{Op: "beam " + b.Name, Msg: fmt.Sprintf("unknown aero type %q", b.Aero.Type)}
	}
	return
}

// applyBCs resolves node references in sorted order so errors are stable.
func applyBCs(bcs map[int]string, index func(int) (int, error), set func(int, types.BCTAG) error) (err error) {
	refs := make([]int, 0, len(bcs))
	for ref := range bcs {
		refs = append(refs, ref)
	}
	sort.Ints(refs)
	for _, ref := range refs {
		var (
			bc   types.BCTAG
			node int
		)
		if bc, err = types.NewBCTAG(bcs[ref]); err != nil {
			return
		}
		if node, err = index(ref); err != nil {
			return
		}
		if err = set(node, bc); err != nil {
			return
		}
	}
	return
}

// BuildCase assembles every beam, applies the post assembly conditions,
// collapses coincident nodes and validates the result.
func (cp *CaseParameters) BuildCase() (c *aeroelastic.Case, err error) {
	if len(cp.Beams) == 0 {
		err = &types.ConfigurationError{Op: "case " + cp.Case, Msg: "no beams"}
		return
	}
	parts := make([]aeroelastic.Part, len(cp.Beams))
	for i := range cp.Beams {
		if parts[i], err = cp.Beams[i].BuildPart(); err != nil {
			return
		}
	}
	if c, err = aeroelastic.NewCase(parts[0]); err != nil {
		return
	}
	if len(parts) > 1 {
		if err = c.Assemble(parts[1:]...); err != nil {
			return
		}
	}
	if err = applyBCs(cp.BCs, c.Structure.NodeIndex, func(node int, bc types.BCTAG) error {
		return c.SetBoundaryCondition(node, bc)
	}); err != nil {
		return
	}
	refs := make([]int, 0, len(cp.AppliedForces))
	for ref := range cp.AppliedForces {
		refs = append(refs, ref)
	}
	sort.Ints(refs)
	for _, ref := range refs {
		f := cp.AppliedForces[ref]
		if len(f) != 6 {
			return nil, types.NewSchemaViolation("applied forces", 6, len(f))
		}
		if err = c.SetAppliedForce(ref, [6]float64{f[0], f[1], f[2], f[3], f[4], f[5]}); err != nil {
			return
		}
	}
	for _, lm := range cp.LumpedMasses {
		if err = c.AddLumpedMass(lm.Node, lm.Mass, lm.Inertia, lm.Position); err != nil {
			return
		}
	}
	if _, err = c.CollapseCoincidentNodes(cp.Tolerance); err != nil {
		return
	}
	err = c.Validate()
	return
}

// SolverSettings returns the registry defaults overlaid with the solver
// section of the case definition.
func (cp *CaseParameters) SolverSettings() (s *settings.Settings, err error) {
	s = settings.New()
	if cp.Case != "" {
		if err = s.Set(settings.Main, "case", cp.Case); err != nil {
			return nil, err
		}
	}
	if cp.Route != "" {
		if err = s.Set(settings.Main, "route", cp.Route); err != nil {
			return nil, err
		}
	}
	sp := cp.Solvers
	if len(sp.Flow) != 0 {
		if err = s.Set(settings.Main, "flow", sp.Flow); err != nil {
			return nil, err
		}
	}
	keys := make([]string, 0, len(sp.SetAll))
	for k := range sp.SetAll {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err = s.SetAll(k, sp.SetAll[k]); err != nil {
			return nil, err
		}
	}
	if sp.Uinf != nil {
		if err = s.DefineUinf(sp.Uinf.Direction, sp.Uinf.Speed); err != nil {
			return nil, err
		}
	}
	if sp.NumSteps > 0 {
		if err = s.DefineNumSteps(sp.NumSteps); err != nil {
			return nil, err
		}
	}
	solvers := make([]string, 0, len(sp.Settings))
	for name := range sp.Settings {
		solvers = append(solvers, name)
	}
	sort.Strings(solvers)
	for _, name := range solvers {
		var solver settings.SolverName
		if solver, err = settings.ParseSolverName(name); err != nil {
			return nil, err
		}
		opts := sp.Settings[name]
		keys = keys[:0]
		for k := range opts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err = s.Set(solver, k, opts[k]); err != nil {
				return nil, err
			}
		}
	}
	return
}

// Forcing returns a zero dynamic forcing for numNode nodes, nil when the case
// has no dynamic section.
func (cp *CaseParameters) Forcing(numNode int) *bundle.Forcing {
	if cp.Dynamic == nil {
		return nil
	}
	return bundle.NewForcing(cp.Dynamic.NumSteps, numNode, cp.Dynamic.ForcedMotion)
}
