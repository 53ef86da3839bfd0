package aeroelastic

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/aerocase/aero"
	"github.com/notargets/aerocase/structure"
	"github.com/notargets/aerocase/types"
)

// CheckStructure returns a SchemaViolation for the first structural table
// that breaks a shape or reference bound, nil when the mesh is consistent.
func CheckStructure(m *structure.Mesh) (err error) {
	if m == nil {
		return types.NewSchemaViolation("coordinates", "a structure", "none")
	}
	var (
		nn = m.NumNode
		ne = m.NumElem
	)
	if err = checkCoordinates(m); err != nil {
		return
	}
	if err = checkConnectivity(m); err != nil {
		return
	}
	if err = checkDatabase("stiffness database", m.StiffnessDB); err != nil {
		return
	}
	if err = checkReferences("stiffness index", m.ElemStiffness, ne, m.StiffnessDB.Len()); err != nil {
		return
	}
	if err = checkDatabase("mass database", m.MassDB); err != nil {
		return
	}
	if err = checkReferences("mass index", m.ElemMass, ne, m.MassDB.Len()); err != nil {
		return
	}
	if err = checkFrameOfReferenceDelta(m); err != nil {
		return
	}
	if err = checkPerNode("structural twist", len(m.StructuralTwist), nn); err != nil {
		return
	}
	if err = checkPerNode("boundary conditions", len(m.BoundaryConditions), nn); err != nil {
		return
	}
	for i, bc := range m.BoundaryConditions {
		if !bc.Valid() {
			return types.NewSchemaViolation("boundary conditions", "tags in {-1, 0, 1}",
				fmt.Sprintf("%d at node %d", bc, i))
		}
	}
	if len(m.BeamNumber) != ne {
		return types.NewSchemaViolation("beam number", fmt.Sprintf("%d entries", ne), len(m.BeamNumber))
	}
	if err = checkAppliedForces(m); err != nil {
		return
	}
	return checkLumpedMass(m)
}

// CheckAerodynamics returns a SchemaViolation for the first aerodynamic
// table that does not fit the mesh it describes.
func CheckAerodynamics(s *aero.Surface, m *structure.Mesh) (err error) {
	if s == nil {
		return types.NewSchemaViolation("aero node", "an aerodynamic descriptor", "none")
	}
	if err = checkPerNode("aero node", len(s.AeroNode), m.NumNode); err != nil {
		return
	}
	if err = checkSlotTables(s, m); err != nil {
		return
	}
	if err = checkAirfoils(s); err != nil {
		return
	}
	var na = s.NumAirfoils()
	for e, row := range s.AirfoilDistribution {
		for j, a := range row {
			if a < 0 || a >= na {
				return types.NewSchemaViolation("airfoil distribution",
					fmt.Sprintf("airfoil index in [0,%d)", na),
					fmt.Sprintf("%d at element %d slot %d", a, e, j))
			}
		}
	}
	var ns = s.NumSurfaces()
	if len(s.SurfaceDistribution) != m.NumElem {
		return types.NewSchemaViolation("surface distribution",
			fmt.Sprintf("%d entries", m.NumElem), len(s.SurfaceDistribution))
	}
	for e, k := range s.SurfaceDistribution {
		if k < aero.NoSurface || k >= ns {
			return types.NewSchemaViolation("surface distribution",
				fmt.Sprintf("surface in [%d,%d)", aero.NoSurface, ns),
				fmt.Sprintf("%d at element %d", k, e))
		}
	}
	for k, panels := range s.SurfaceM {
		if panels < 0 {
			return types.NewSchemaViolation("surface panels", "a non negative panel count",
				fmt.Sprintf("%d for surface %d", panels, k))
		}
	}
	return
}

func checkPerNode(array string, got, numNode int) (err error) {
	if got != numNode {
		err = types.NewSchemaViolation(array, fmt.Sprintf("%d entries, one per node", numNode), got)
	}
	return
}

func checkCoordinates(m *structure.Mesh) (err error) {
	if len(m.Coordinates) != m.NumNode {
		return types.NewSchemaViolation("coordinates", fmt.Sprintf("%d nodes", m.NumNode), len(m.Coordinates))
	}
	for i, x := range m.Coordinates {
		if len(x) != 3 {
			return types.NewSchemaViolation("coordinates", "3 components per node",
				fmt.Sprintf("%d at node %d", len(x), i))
		}
	}
	return
}

func checkConnectivity(m *structure.Mesh) (err error) {
	if m.NodesPerElem < 2 {
		return types.NewSchemaViolation("connectivity", "at least 2 nodes per element", m.NodesPerElem)
	}
	if len(m.Connectivity) != m.NumElem {
		return types.NewSchemaViolation("connectivity", fmt.Sprintf("%d elements", m.NumElem), len(m.Connectivity))
	}
	for e, row := range m.Connectivity {
		if len(row) != m.NodesPerElem {
			return types.NewSchemaViolation("connectivity", fmt.Sprintf("%d nodes per element", m.NodesPerElem),
				fmt.Sprintf("%d at element %d", len(row), e))
		}
		for j, node := range row {
			if node < 0 || node >= m.NumNode {
				return types.NewSchemaViolation("connectivity", fmt.Sprintf("node in [0,%d)", m.NumNode),
					fmt.Sprintf("%d at element %d slot %d", node, e, j))
			}
		}
	}
	return
}

func checkDatabase(array string, db *structure.PropertyDatabase) (err error) {
	if db == nil {
		return
	}
	for k, row := range db.Rows {
		if row == nil || row.SymmetricDim() != structure.SectionDOF {
			var dim int
			if row != nil {
				dim = row.SymmetricDim()
			}
			return types.NewSchemaViolation(array,
				fmt.Sprintf("%dx%d matrices", structure.SectionDOF, structure.SectionDOF),
				fmt.Sprintf("%dx%d at row %d", dim, dim, k))
		}
	}
	return
}

func checkReferences(array string, refs []int, numElem, dbLen int) (err error) {
	if len(refs) != numElem {
		return types.NewSchemaViolation(array, fmt.Sprintf("%d entries, one per element", numElem), len(refs))
	}
	for e, r := range refs {
		if r < 0 || r >= dbLen {
			return types.NewSchemaViolation(array, fmt.Sprintf("database row in [0,%d)", dbLen),
				fmt.Sprintf("%d at element %d", r, e))
		}
	}
	return
}

func checkFrameOfReferenceDelta(m *structure.Mesh) (err error) {
	const array = "frame of reference delta"
	var expected = fmt.Sprintf("shape (%d, %d, 3)", m.NumElem, m.NodesPerElem)
	if len(m.FrameOfReferenceDelta) != m.NumElem {
		return types.NewSchemaViolation(array, expected, fmt.Sprintf("%d elements", len(m.FrameOfReferenceDelta)))
	}
	for e, slots := range m.FrameOfReferenceDelta {
		if len(slots) != m.NodesPerElem {
			return types.NewSchemaViolation(array, expected, fmt.Sprintf("%d slots at element %d", len(slots), e))
		}
		for j, d := range slots {
			if len(d) != 3 {
				return types.NewSchemaViolation(array, expected,
					fmt.Sprintf("%d components at element %d slot %d", len(d), e, j))
			}
		}
	}
	return
}

func checkAppliedForces(m *structure.Mesh) (err error) {
	if err = checkPerNode("applied forces", len(m.AppForces), m.NumNode); err != nil {
		return
	}
	for i, f := range m.AppForces {
		if len(f) != 6 {
			return types.NewSchemaViolation("applied forces", "6 components per node",
				fmt.Sprintf("%d at node %d", len(f), i))
		}
	}
	return
}

func checkLumpedMass(m *structure.Mesh) (err error) {
	const array = "lumped mass"
	var (
		lm = m.Lumped
		n  = len(lm.Nodes)
	)
	if len(lm.Mass) != n || len(lm.Inertia) != n || len(lm.Position) != n {
		return types.NewSchemaViolation(array, fmt.Sprintf("%d entries in every table", n),
			fmt.Sprintf("mass %d, inertia %d, position %d", len(lm.Mass), len(lm.Inertia), len(lm.Position)))
	}
	for i := 0; i < n; i++ {
		if node := lm.Nodes[i]; node < 0 || node >= m.NumNode {
			return types.NewSchemaViolation(array, fmt.Sprintf("node in [0,%d)", m.NumNode),
				fmt.Sprintf("%d for mass %d", node, i))
		}
		if r, c := denseShape(lm.Inertia[i]); r != 3 || c != 3 {
			return types.NewSchemaViolation(array, "3x3 inertia", fmt.Sprintf("%dx%d for mass %d", r, c, i))
		}
		if len(lm.Position[i]) != 3 {
			return types.NewSchemaViolation(array, "3 component position",
				fmt.Sprintf("%d for mass %d", len(lm.Position[i]), i))
		}
	}
	return
}

func denseShape(d *mat.Dense) (r, c int) {
	if d == nil {
		return
	}
	return d.Dims()
}

// checkSlotTables checks the per element slot tables against the mesh
// connectivity shape.
func checkSlotTables(s *aero.Surface, m *structure.Mesh) (err error) {
	var (
		ne       = m.NumElem
		npe      = m.NodesPerElem
		expected = fmt.Sprintf("shape (%d, %d)", ne, npe)
	)
	check := func(array string, rows []int) error {
		if len(rows) != ne {
			return types.NewSchemaViolation(array, expected, fmt.Sprintf("%d elements", len(rows)))
		}
		for e, l := range rows {
			if l != npe {
				return types.NewSchemaViolation(array, expected, fmt.Sprintf("%d slots at element %d", l, e))
			}
		}
		return nil
	}
	for _, t := range []struct {
		array string
		rows  [][]float64
	}{
		{"chord", s.Chord},
		{"twist", s.Twist},
		{"sweep", s.Sweep},
		{"elastic axis", s.ElasticAxis},
	} {
		if err = check(t.array, rowLengths(t.rows)); err != nil {
			return
		}
	}
	return check("airfoil distribution", rowLengths(s.AirfoilDistribution))
}

func rowLengths[T any](rows [][]T) (l []int) {
	l = make([]int, len(rows))
	for i, row := range rows {
		l[i] = len(row)
	}
	return
}

// checkAirfoils requires every camber line to share one point count with
// (x, y) points.
func checkAirfoils(s *aero.Surface) (err error) {
	if len(s.Airfoils) == 0 {
		return
	}
	var np = len(s.Airfoils[0])
	for a, line := range s.Airfoils {
		if len(line) != np {
			return types.NewSchemaViolation("airfoils", fmt.Sprintf("%d points per camber line", np),
				fmt.Sprintf("%d for airfoil %d", len(line), a))
		}
		for p, pt := range line {
			if len(pt) != 2 {
				return types.NewSchemaViolation("airfoils", "(x, y) points",
					fmt.Sprintf("%d components at airfoil %d point %d", len(pt), a, p))
			}
		}
	}
	return
}
