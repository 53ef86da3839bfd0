package structure

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/aerocase/types"
	"github.com/notargets/aerocase/utils"
)

// SectionDOF is the size of a beam section property matrix: three
// translational and three rotational degrees of freedom.
const SectionDOF = 6

// PropertyDatabase is an indexed table of symmetric 6x6 section matrices,
// either stiffness or mass, referenced per element by index.
type PropertyDatabase struct {
	Rows []*mat.SymDense
}

func NewPropertyDatabase(N int) (db *PropertyDatabase) {
	db = &PropertyDatabase{Rows: make([]*mat.SymDense, N)}
	for i := range db.Rows {
		db.Rows[i] = mat.NewSymDense(SectionDOF, nil)
	}
	return
}

func (db *PropertyDatabase) Len() int {
	if db == nil {
		return 0
	}
	return len(db.Rows)
}

func (db *PropertyDatabase) Copy() (c *PropertyDatabase) {
	c = &PropertyDatabase{Rows: make([]*mat.SymDense, db.Len())}
	if db == nil {
		return
	}
	for i, row := range db.Rows {
		c.Rows[i] = mat.NewSymDense(row.SymmetricDim(), nil)
		c.Rows[i].CopySym(row)
	}
	return
}

// Concat returns the rows of every database in order, without merging
// identical matrices.
func Concat(dbs ...*PropertyDatabase) (c *PropertyDatabase) {
	c = &PropertyDatabase{}
	for _, db := range dbs {
		c.Rows = append(c.Rows, db.Copy().Rows...)
	}
	return
}

// Raw returns the table as nested slices, [row][6][6].
func (db *PropertyDatabase) Raw() (r [][][]float64) {
	r = make([][][]float64, db.Len())
	for k, row := range db.Rows {
		n := row.SymmetricDim()
		r[k] = make([][]float64, n)
		for i := 0; i < n; i++ {
			r[k][i] = make([]float64, n)
			for j := 0; j < n; j++ {
				r[k][i][j] = row.At(i, j)
			}
		}
	}
	return
}

// StiffnessDBFromVectors builds one diagonal stiffness matrix per entry:
// diag(EA, GAy, GAz, GJ, EIy, EIz).
func StiffnessDBFromVectors(EA, GAy, GAz, GJ, EIy, EIz []float64) (db *PropertyDatabase, err error) {
	var N = len(EA)
	for _, v := range [][]float64{GAy, GAz, GJ, EIy, EIz} {
		if len(v) != N {
			err = &types.ConfigurationError{Op: "stiffness database",
				Msg: fmt.Sprintf("property vectors differ in length: %d and %d", N, len(v))}
			return
		}
	}
	db = NewPropertyDatabase(N)
	for i := 0; i < N; i++ {
		for j, val := range []float64{EA[i], GAy[i], GAz[i], GJ[i], EIy[i], EIz[i]} {
			db.Rows[i].SetSym(j, j, val)
		}
	}
	return
}

// MassDBFromVectors builds one section mass matrix per entry from the mass per
// unit length m, the section inertias and the centre of gravity offset cg:
//
//	| m*I        -m*skew(cg) |
//	| m*skew(cg)  diag(Ix,Iy,Iz) |
func MassDBFromVectors(m, Ix, Iy, Iz []float64, cg [][3]float64) (db *PropertyDatabase, err error) {
	var N = len(m)
	if len(Ix) != N || len(Iy) != N || len(Iz) != N || len(cg) != N {
		err = &types.ConfigurationError{Op: "mass database",
			Msg: fmt.Sprintf("property vectors differ in length: m=%d Ix=%d Iy=%d Iz=%d cg=%d",
				N, len(Ix), len(Iy), len(Iz), len(cg))}
		return
	}
	db = NewPropertyDatabase(N)
	for k := 0; k < N; k++ {
		var (
			row = db.Rows[k]
			S   = utils.Skew(cg[k])
		)
		for i := 0; i < 3; i++ {
			row.SetSym(i, i, m[k])
			for j := 0; j < 3; j++ {
				row.SetSym(i, 3+j, -m[k]*S.At(i, j))
			}
		}
		row.SetSym(3, 3, Ix[k])
		row.SetSym(4, 4, Iy[k])
		row.SetSym(5, 5, Iz[k])
	}
	return
}
