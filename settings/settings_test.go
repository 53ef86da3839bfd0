package settings

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/aerocase/types"
)

func TestCoerce(t *testing.T) {
	{
		for raw, want := range map[interface{}]bool{"on": true, " OFF ": false, "true": true, false: false, 1: true} {
			v, err := Coerce(KindBool, raw)
			require.NoError(t, err, "%v", raw)
			assert.Equal(t, want, v.Bool(), "%v", raw)
		}
		_, err := Coerce(KindBool, "maybe")
		assert.ErrorIs(t, err, types.ErrConfiguration)
	}
	{
		v, err := Coerce(KindInt, " 13")
		require.NoError(t, err)
		assert.Equal(t, 13, v.Int())
		v, err = Coerce(KindInt, 20.)
		require.NoError(t, err)
		assert.Equal(t, 20, v.Int())
		_, err = Coerce(KindInt, "thirteen")
		assert.ErrorIs(t, err, types.ErrConfiguration)
	}
	{
		v, err := Coerce(KindFloat, "0.05")
		require.NoError(t, err)
		assert.Equal(t, 0.05, v.Float())
		v, err = Coerce(KindFloatArray, "1.0, 0, 0,0")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0, 0, 0}, v.Floats())
		v, err = Coerce(KindFloatArray, []interface{}{-1., 2, "3"})
		require.NoError(t, err)
		assert.Equal(t, []float64{-1, 2, 3}, v.Floats())
		v, err = Coerce(KindFloatArray, 4.)
		require.NoError(t, err)
		assert.Equal(t, []float64{4}, v.Floats())
		_, err = Coerce(KindFloatArray, "1, x")
		assert.ErrorIs(t, err, types.ErrConfiguration)
	}
	{
		v, err := Coerce(KindStringArray, "BeamLoader, AerogridLoader")
		require.NoError(t, err)
		assert.Equal(t, []string{"BeamLoader", "AerogridLoader"}, v.Strings())
		v, err = Coerce(KindStringArray, "")
		require.NoError(t, err)
		assert.Empty(t, v.Strings())
		v, err = Coerce(KindString, " ")
		require.NoError(t, err)
		assert.Equal(t, " ", v.Str())
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "on", Bool(true).String())
	assert.Equal(t, "off", Bool(false).String())
	assert.Equal(t, "100", Int(100).String())
	assert.Equal(t, "0.00001", Float(1e-5).String())
	assert.Equal(t, "1, 0, 0, 0", FloatArray(1, 0, 0, 0).String())
	assert.Equal(t, "-1", FloatArray(-1).String())
	assert.Equal(t, "BeamPlot, AerogridPlot", StringArray("BeamPlot", "AerogridPlot").String())
	assert.Equal(t, "", StringArray().String())
	assert.True(t, Float(9.81).Equal(Float(9.81)))
	assert.False(t, Int(1).Equal(Float(1)))
}

func TestRegistry(t *testing.T) {
	for _, name := range Solvers() {
		sc, err := SchemaOf(name)
		require.NoError(t, err)
		assert.NotEmpty(t, sc, string(name))
	}
	_, err := ParseSolverName("Modal")
	assert.ErrorIs(t, err, types.ErrConfiguration)

	sc, err := SchemaOf(NonLinearStatic)
	require.NoError(t, err)
	opt, ok := sc.lookup("min_delta")
	require.True(t, ok)
	assert.Equal(t, 1e-7, opt.Default.Float())
	// The returned schema is a copy
	sc[0].Default = Int(7)
	sc2, _ := SchemaOf(NonLinearStatic)
	assert.Equal(t, KindBool, sc2[0].Default.Kind)

	assert.Contains(t, Keys(), "dt")
}

func TestSettings(t *testing.T) {
	s := New()
	v, err := s.Get(AerogridLoader, "mstar")
	require.NoError(t, err)
	assert.Equal(t, 10, v.Int())

	require.NoError(t, s.Set(AerogridLoader, "mstar", 13))
	require.NoError(t, s.Set(BeamLoader, "unsteady", "on"))
	v, _ = s.Get(BeamLoader, "unsteady")
	assert.True(t, v.Bool())

	assert.ErrorIs(t, s.Set(BeamLoader, "mstar", 1), types.ErrConfiguration)
	assert.ErrorIs(t, s.Set(SolverName("Modal"), "dt", 1), types.ErrConfiguration)
	assert.ErrorIs(t, s.Set(AerogridLoader, "mstar", "many"), types.ErrConfiguration)

	n, err := s.SetAll("dt", 0.05)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	for _, name := range []SolverName{AerogridPlot, NonLinearDynamicCoupledStep, NonLinearDynamicMultibody, StepUvlm, DynamicCoupled} {
		v, err := s.Get(name, "dt")
		require.NoError(t, err)
		assert.Equal(t, 0.05, v.Float(), string(name))
	}
	_, err = s.SetAll("no_such_key", 1)
	assert.ErrorIs(t, err, types.ErrConfiguration)

	require.NoError(t, s.SetFlow([]SolverName{BeamLoader, AerogridLoader, StaticCoupled}))
	assert.Equal(t, []SolverName{BeamLoader, AerogridLoader, StaticCoupled}, s.Flow())
	assert.ErrorIs(t, s.SetFlow([]SolverName{Main}), types.ErrConfiguration)
	assert.ErrorIs(t, s.Set(Main, "flow", "BeamLoader, Modal"), types.ErrConfiguration)
	assert.Equal(t, []SolverName{BeamLoader, AerogridLoader, StaticCoupled}, s.Flow())

	require.NoError(t, s.DefineUinf([3]float64{0, 1, 0}, 10))
	v, _ = s.Get(AerogridPlot, "u_inf")
	assert.Equal(t, 10., v.Float())
	require.NoError(t, s.DefineNumSteps(20))
	v, _ = s.Get(DynamicCoupled, "n_time_steps")
	assert.Equal(t, 20, v.Int())
	v, _ = s.Get(NonLinearDynamicCoupledStep, "num_steps")
	assert.Equal(t, 20, v.Int())

	// Defaults of a new overlay are untouched
	v, _ = New().Get(AerogridLoader, "mstar")
	assert.Equal(t, 10, v.Int())
}

func TestSolverFile(t *testing.T) {
	s := New()
	require.NoError(t, s.SetFlow([]SolverName{BeamLoader, AerogridLoader, StaticCoupled, DynamicCoupled}))
	require.NoError(t, s.Set(Main, "case", "test_01"))
	require.NoError(t, s.Set(AerogridLoader, "mstar", 13))
	require.NoError(t, s.Set(StaticCoupled, "structural_solver", "NonLinearStatic"))
	require.NoError(t, s.Set(StaticCoupled, "aero_solver", "StaticUvlm"))
	require.NoError(t, s.Set(NonLinearStatic, "max_iterations", 150))
	require.NoError(t, s.Set(DynamicCoupled, "post_processors", []string{"BeamPlot", "WriteVariablesTime"}))
	require.NoError(t, s.Set(BeamPlot, "include_rbm", "off"))

	var buf bytes.Buffer
	require.NoError(t, s.WriteSolverFile(&buf))
	text := buf.String()
	assert.True(t, strings.Index(text, "[SHARPy]") < strings.Index(text, "[BeamLoader]"))
	assert.True(t, strings.Index(text, "[BeamLoader]") < strings.Index(text, "[AerogridLoader]"))
	assert.Contains(t, text, "[StaticCoupled.structural_solver_settings]")
	assert.Contains(t, text, "[DynamicCoupled.post_processor_settings.BeamPlot]")
	assert.NotContains(t, text, "[AerogridPlot]")
	assert.Contains(t, text, "BeamLoader, AerogridLoader, StaticCoupled, DynamicCoupled")

	r, err := ReadSolverFile(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, s.Flow(), r.Flow())
	for _, name := range []SolverName{Main, BeamLoader, AerogridLoader, StaticCoupled, DynamicCoupled,
		NonLinearStatic, BeamPlot, WriteVariablesTime} {
		for _, o := range registry[name] {
			want, _ := s.Get(name, o.Key)
			got, err := r.Get(name, o.Key)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "%s.%s: want %q got %q", name, o.Key, want, got)
		}
	}

	_, err = ReadSolverFile([]byte("[SHARPy]\nflow = BeamLoader\n[Modal]\nx = 1\n"))
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = ReadSolverFile([]byte("[BeamLoader]\nmstar = 1\n"))
	assert.ErrorIs(t, err, types.ErrConfiguration)
	_, err = ReadSolverFile([]byte("[StaticCoupled.aero_solver_settings]\nrho = 1\n"))
	assert.ErrorIs(t, err, types.ErrConfiguration)
}
