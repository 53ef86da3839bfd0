package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Boundary condition labels
		tokens := []string{"Clamped", "free", "FREE-TIP", " tip ", "fixed", "none"}
		tags := []BCTAG{BC_Clamped, BC_Free, BC_FreeTip, BC_FreeTip, BC_Clamped, BC_Free}
		for i, token := range tokens {
			bc, err := NewBCTAG(token)
			require.NoError(t, err)
			fmt.Printf("bc = %s, value = %d\n", bc, bc)
			assert.Equal(t, tags[i], bc)
			assert.True(t, bc.Valid())
		}
		_, err := NewBCTAG("pinned")
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.False(t, BCTAG(2).Valid())
		assert.Equal(t, "BCTAG(2)", BCTAG(2).String())
	}
	{ // Local axis keywords
		axis, ok := ParseLocalAxis("local-z")
		assert.True(t, ok)
		assert.Equal(t, LocalZ, axis)
		assert.Equal(t, [3]float64{0, 0, 1}, axis.UnitVector())

		axis, ok = ParseLocalAxis("x_AFoR")
		assert.True(t, ok)
		assert.Equal(t, LocalX, axis)

		axis, ok = ParseLocalAxis("diagonal")
		assert.False(t, ok)
		assert.Equal(t, LocalY, axis)
		assert.Equal(t, "local-y", axis.String())
	}
}

func TestErrorClasses(t *testing.T) {
	var err error = &ShapeMismatchError{Op: "merge", Msg: "nodes per element 3 vs 2"}
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.NotErrorIs(t, err, ErrConfiguration)

	err = fmt.Errorf("validate: %w", NewSchemaViolation("applied forces", "width 6", 5))
	assert.ErrorIs(t, err, ErrSchemaViolation)
	var sv *SchemaViolation
	require.True(t, errors.As(err, &sv))
	assert.Equal(t, "applied forces", sv.Array)
	assert.Contains(t, err.Error(), "applied forces")

	base := errors.New("disk full")
	err = &IOError{Path: "case.fem.bson", Err: base}
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, base)
}

func TestSlices(t *testing.T) {
	rows := [][]int{{0, 2, 1}, {2, 4, 3}}
	c := CloneRows(rows)
	c[0][0] = 7
	assert.Equal(t, 0, rows[0][0])

	assert.Equal(t, []int{1, 2, 3}, ConcatSlices([]int{1}, nil, []int{2, 3}))
	assert.Equal(t, []int{-1, 5, 6}, OffsetIndex([]int{-1, 0, 1}, 5, 0))
	assert.Equal(t, [][]int{{10, 12, 11}}, OffsetRows([][]int{{0, 2, 1}}, 10, 0))
	assert.Equal(t, []string{"a", "c"}, KeepRows([]string{"a", "b", "c"}, []bool{true, false, true}))
	assert.Panics(t, func() { KeepRows([]int{1}, []bool{}) })
	assert.Equal(t, 4, MaxInt([]int{3, 4, 0}, -1))
	assert.Equal(t, -1, MaxInt(nil, -1))
}
