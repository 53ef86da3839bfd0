package aeroelastic

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

// CollapseCoincidentNodes merges nodes closer than tolerance into the first
// earlier surviving node, then renumbers the case densely. Element slots that
// referenced a removed node take the aerodynamic properties of the first slot
// of the surviving node. Lumped masses and applied forces move to the
// surviving node, whose aero flag is set when any merged node had it. The case
// is not modified when an error is returned.
func (c *Case) CollapseCoincidentNodes(tolerance float64) (removed int, err error) {
	if err = c.mutable("collapse"); err != nil {
		return
	}
	if c.Structure == nil {
		err = &types.ConfigurationError{Op: "collapse", Msg: "case has no structure"}
		return
	}
	if tolerance < 0 {
		err = &types.ConfigurationError{Op: "collapse", Msg: fmt.Sprintf("negative tolerance %g", tolerance)}
		return
	}
	if err = checkIndexable(c); err != nil {
		return
	}
	var im *utils.IndexMap
	if im, err = c.coincidentNodeMap(tolerance); err != nil {
		return
	}
	if removed = im.Dropped(); removed != 0 {
		c.applyNodeMap(im)
	}
	c.stage = Collapsed
	zap.S().Infow("collapsed coincident nodes", "removed", removed, "nodes", c.Structure.NumNode,
		"tolerance", tolerance)
	return
}

// coincidentNodeMap decides the canonical node of every node without touching
// the case.
func (c *Case) coincidentNodeMap(tolerance float64) (im *utils.IndexMap, err error) {
	var (
		X         = c.Structure.Coordinates
		n         = len(X)
		canonical = utils.NewRange(0, n-1)
		kept      = make([]int, 0, n)
	)
	for i := 0; i < n; i++ {
		for _, j := range kept {
			if d := floats.Distance(X[i], X[j], 2); d < tolerance {
				canonical[i] = j
				zap.S().Debugw("merging coincident node", "node", i, "into", j, "distance", d)
				break
			}
		}
		if canonical[i] == i {
			kept = append(kept, i)
		}
	}
	if im, err = utils.NewMergeMap(canonical); err != nil {
		err = fmt.Errorf("collapse: %w", err)
	}
	return
}

// applyNodeMap rewrites node references and compacts per-node tables. All
// tables are rebuilt into fresh storage and committed together.
func (c *Case) applyNodeMap(im *utils.IndexMap) {
	var (
		m   = c.Structure
		s   = c.Aero
		n   = len(im.Map)
		con = m.Connectivity
	)
	// Rewrite element slots referencing removed nodes
	firstSlot := make([][2]int, n)
	for i := range firstSlot {
		firstSlot[i] = [2]int{-1, -1}
	}
	for e, row := range con {
		for j, node := range row {
			if firstSlot[node][0] < 0 {
				firstSlot[node] = [2]int{e, j}
			}
		}
	}
	var (
		canonical           = canonicalOf(im)
		chord               = types.CloneRows(s.Chord)
		twist               = types.CloneRows(s.Twist)
		sweep               = types.CloneRows(s.Sweep)
		elasticAxis         = types.CloneRows(s.ElasticAxis)
		airfoilDistribution = types.CloneRows(s.AirfoilDistribution)
		connectivity        = make([][]int, len(con))
	)
	for e, row := range con {
		for j, node := range row {
			if im.Keep[node] {
				continue
			}
			src := firstSlot[canonical[node]]
			if src[0] < 0 {
				continue
			}
			se, sj := src[0], src[1]
			chord[e][j] = s.Chord[se][sj]
			twist[e][j] = s.Twist[se][sj]
			sweep[e][j] = s.Sweep[se][sj]
			elasticAxis[e][j] = s.ElasticAxis[se][sj]
			airfoilDistribution[e][j] = s.AirfoilDistribution[se][sj]
		}
		connectivity[e] = im.Apply(row)
	}
	lumpedNodes := im.Apply(m.Lumped.Nodes)

	// Fold removed node contributions into the surviving nodes
	var (
		appForces = make([][]float64, im.Len)
		aeroNode  = make([]bool, im.Len)
	)
	for i := 0; i < n; i++ {
		k := im.Map[i]
		if appForces[k] == nil {
			appForces[k] = make([]float64, len(m.AppForces[i]))
		}
		floats.Add(appForces[k], m.AppForces[i])
		aeroNode[k] = aeroNode[k] || s.AeroNode[i]
	}

	// Compact
	m.Coordinates = types.KeepRows(m.Coordinates, im.Keep)
	m.StructuralTwist = types.KeepRows(m.StructuralTwist, im.Keep)
	m.BoundaryConditions = types.KeepRows(m.BoundaryConditions, im.Keep)
	m.AppForces = appForces
	m.Connectivity = connectivity
	m.Lumped.Nodes = lumpedNodes
	m.NumNode = im.Len
	s.AeroNode = aeroNode
	s.Chord, s.Twist, s.Sweep = chord, twist, sweep
	s.ElasticAxis, s.AirfoilDistribution = elasticAxis, airfoilDistribution
}

// canonicalOf returns the old index of the survivor each old node maps to.
func canonicalOf(im *utils.IndexMap) (canonical utils.Index) {
	var (
		survivor = make(utils.Index, im.Len)
	)
	for i, keep := range im.Keep {
		if keep {
			survivor[im.Map[i]] = i
		}
	}
	canonical = make(utils.Index, len(im.Map))
	for i, k := range im.Map {
		canonical[i] = survivor[k]
	}
	return
}

// checkIndexable verifies the tables the collapse reads so that the rewrite
// cannot index out of range.
func checkIndexable(c *Case) (err error) {
	var (
		m  = c.Structure
		nn = len(m.Coordinates)
	)
	if err = checkCoordinates(m); err != nil {
		return
	}
	if err = checkConnectivity(m); err != nil {
		return
	}
	if err = checkLumpedMass(m); err != nil {
		return
	}
	if err = checkPerNode("structural twist", len(m.StructuralTwist), nn); err != nil {
		return
	}
	if err = checkPerNode("boundary conditions", len(m.BoundaryConditions), nn); err != nil {
		return
	}
	if err = checkAppliedForces(m); err != nil {
		return
	}
	if c.Aero == nil {
		return types.NewSchemaViolation("aero node", "an aerodynamic descriptor", "none")
	}
	if err = checkPerNode("aero node", len(c.Aero.AeroNode), nn); err != nil {
		return
	}
	return checkSlotTables(c.Aero, m)
}
