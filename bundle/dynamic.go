package bundle

import (
	"fmt"

	"github.com/notargets/aerocase/types"
)

// Forcing is the time history applied during a dynamic simulation. Forces
// are indexed [step][node][6]; the prescribed frame of reference velocity and
// acceleration [step][6] are given together or not at all.
type Forcing struct {
	NumSteps      int
	DynamicForces [][][]float64
	ForVel        [][]float64
	ForAcc        [][]float64
}

// NewForcing returns a zero forcing of numSteps steps for numNode nodes,
// with or without prescribed frame of reference motion.
func NewForcing(numSteps, numNode int, forcedMotion bool) (f *Forcing) {
	f = &Forcing{
		NumSteps:      numSteps,
		DynamicForces: make([][][]float64, numSteps),
	}
	for k := range f.DynamicForces {
		f.DynamicForces[k] = make([][]float64, numNode)
		for i := range f.DynamicForces[k] {
			f.DynamicForces[k][i] = make([]float64, 6)
		}
	}
	if forcedMotion {
		f.ForVel = rows(numSteps, 6)
		f.ForAcc = rows(numSteps, 6)
	}
	return
}

func rows(n, width int) (r [][]float64) {
	r = make([][]float64, n)
	for i := range r {
		r[i] = make([]float64, width)
	}
	return
}

// Check verifies the forcing tables against the step count and the node
// count of the case.
func (f *Forcing) Check(numNode int) (err error) {
	if f.NumSteps < 0 {
		return &types.ConfigurationError{Op: "forcing", Msg: fmt.Sprintf("negative step count %d", f.NumSteps)}
	}
	if f.DynamicForces != nil {
		if len(f.DynamicForces) != f.NumSteps {
			return types.NewSchemaViolation("dynamic forces", fmt.Sprintf("%d steps", f.NumSteps), len(f.DynamicForces))
		}
		for k, step := range f.DynamicForces {
			if len(step) != numNode {
				return types.NewSchemaViolation("dynamic forces", fmt.Sprintf("%d nodes per step", numNode),
					fmt.Sprintf("%d at step %d", len(step), k))
			}
			for i, force := range step {
				if len(force) != 6 {
					return types.NewSchemaViolation("dynamic forces", "6 components per node",
						fmt.Sprintf("%d at step %d node %d", len(force), k, i))
				}
			}
		}
	}
	if (f.ForVel == nil) != (f.ForAcc == nil) {
		return &types.ConfigurationError{Op: "forcing",
			Msg: "frame of reference velocity and acceleration must be given together"}
	}
	for _, t := range []struct {
		array string
		rows  [][]float64
	}{
		{"for velocity", f.ForVel},
		{"for acceleration", f.ForAcc},
	} {
		if t.rows == nil {
			continue
		}
		if len(t.rows) != f.NumSteps {
			return types.NewSchemaViolation(t.array, fmt.Sprintf("%d steps", f.NumSteps), len(t.rows))
		}
		for k, r := range t.rows {
			if len(r) != 6 {
				return types.NewSchemaViolation(t.array, "6 components per step",
					fmt.Sprintf("%d at step %d", len(r), k))
			}
		}
	}
	return
}

func (f *Forcing) document(buildID string) *DynamicDocument {
	return &DynamicDocument{
		BuildID:       buildID,
		DynamicForces: f.DynamicForces,
		ForVel:        f.ForVel,
		ForAcc:        f.ForAcc,
		NumSteps:      f.NumSteps,
	}
}
