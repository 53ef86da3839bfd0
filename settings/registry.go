package settings

import (
	"fmt"
	"sort"

	"github.com/notargets/aerocase/types"
)

// SolverName identifies a section of the solver settings file.
type SolverName string

const (
	Main                        SolverName = "SHARPy"
	BeamLoader                  SolverName = "BeamLoader"
	AerogridLoader              SolverName = "AerogridLoader"
	AerogridPlot                SolverName = "AerogridPlot"
	WriteVariablesTime          SolverName = "WriteVariablesTime"
	BeamPlot                    SolverName = "BeamPlot"
	NonLinearStatic             SolverName = "NonLinearStatic"
	StaticUvlm                  SolverName = "StaticUvlm"
	NonLinearDynamicCoupledStep SolverName = "NonLinearDynamicCoupledStep"
	NonLinearDynamicMultibody   SolverName = "NonLinearDynamicMultibody"
	StepUvlm                    SolverName = "StepUvlm"
	StaticCoupled               SolverName = "StaticCoupled"
	DynamicCoupled              SolverName = "DynamicCoupled"
)

var solverNames = []SolverName{
	Main, BeamLoader, AerogridLoader, AerogridPlot, WriteVariablesTime, BeamPlot,
	NonLinearStatic, StaticUvlm, NonLinearDynamicCoupledStep, NonLinearDynamicMultibody,
	StepUvlm, StaticCoupled, DynamicCoupled,
}

// Solvers lists every known section, the main section first.
func Solvers() []SolverName {
	return append([]SolverName(nil), solverNames...)
}

func ParseSolverName(name string) (sn SolverName, err error) {
	if _, ok := registry[SolverName(name)]; !ok {
		err = &types.ConfigurationError{Op: "solver name", Msg: fmt.Sprintf("unknown solver %q", name)}
		return
	}
	return SolverName(name), nil
}

// Option is one typed key of a solver section with its default value.
type Option struct {
	Key     string
	Default Value
}

// Schema is the ordered option list of a solver section.
type Schema []Option

func (sc Schema) lookup(key string) (opt Option, ok bool) {
	for _, o := range sc {
		if o.Key == key {
			return o, true
		}
	}
	return
}

func (sc Schema) clone() (c Schema) {
	c = make(Schema, len(sc))
	for i, o := range sc {
		c[i] = Option{Key: o.Key, Default: o.Default.clone()}
	}
	return
}

// SchemaOf returns a copy of the options of a solver section.
func SchemaOf(name SolverName) (sc Schema, err error) {
	reg, ok := registry[name]
	if !ok {
		err = &types.ConfigurationError{Op: "schema", Msg: fmt.Sprintf("unknown solver %q", name)}
		return
	}
	return reg.clone(), nil
}

// Keys returns every option key known to any solver, sorted.
func Keys() (keys []string) {
	seen := make(map[string]bool)
	for _, sc := range registry {
		for _, o := range sc {
			if !seen[o.Key] {
				seen[o.Key] = true
				keys = append(keys, o.Key)
			}
		}
	}
	sort.Strings(keys)
	return
}

// Keys of coupled solvers that name another solver, and the child section
// written with that solver's settings.
var nestedSettings = []struct {
	Key, Section string
}{
	{"structural_solver", "structural_solver_settings"},
	{"aero_solver", "aero_solver_settings"},
	{"post_processors", "post_processor_settings"},
}

var registry map[SolverName]Schema

func init() {
	registry = map[SolverName]Schema{
		Main: {
			{"flow", StringArray()},
			{"case", String("default_case_name")},
			{"route", String("")},
			{"write_screen", Bool(true)},
			{"write_log", Bool(false)},
			{"log_folder", String("")},
			{"log_file", String("log")},
		},
		BeamLoader: {
			{"unsteady", Bool(false)},
			{"orientation", FloatArray(1, 0, 0, 0)},
		},
		AerogridLoader: {
			{"unsteady", Bool(false)},
			{"aligned_grid", Bool(true)},
			{"freestream_dir", FloatArray(0, 1, 0)},
			{"mstar", Int(10)},
		},
		AerogridPlot: {
			{"folder", String("./output")},
			{"include_rbm", Bool(true)},
			{"include_forward_motion", Bool(false)},
			{"include_applied_forces", Bool(true)},
			{"include_unsteady_applied_forces", Bool(false)},
			{"minus_m_star", Int(0)},
			{"name_prefix", String("")},
			{"u_inf", Float(0)},
			{"dt", Float(0)},
		},
		WriteVariablesTime: {
			{"delimiter", String(" ")},
			{"FoR_variables", StringArray()},
			{"FoR_number", FloatArray(0)},
			{"structure_variables", StringArray()},
			{"structure_nodes", FloatArray(-1)},
			{"aero_panels_variables", StringArray()},
			{"aero_panels_isurf", FloatArray(0)},
			{"aero_panels_im", FloatArray(0)},
			{"aero_panels_in", FloatArray(0)},
			{"aero_nodes_variables", StringArray()},
			{"aero_nodes_isurf", FloatArray(0)},
			{"aero_nodes_im", FloatArray(0)},
			{"aero_nodes_in", FloatArray(0)},
		},
		BeamPlot: {
			{"folder", String("./output")},
			{"include_rbm", Bool(true)},
			{"include_applied_forces", Bool(true)},
			{"include_applied_moments", Bool(true)},
			{"name_prefix", String("")},
			{"output_rbm", Bool(true)},
		},
		NonLinearStatic: {
			{"print_info", Bool(true)},
			{"max_iterations", Int(100)},
			{"num_load_steps", Int(5)},
			{"delta_curved", Float(1e-5)},
			{"gravity_on", Bool(false)},
			{"gravity", Float(9.81)},
			{"min_delta", Float(1e-7)},
		},
		StaticUvlm: {
			{"print_info", Bool(true)},
			{"horseshoe", Bool(false)},
			{"num_cores", Int(0)},
			{"n_rollup", Int(1)},
			{"rollup_dt", Float(0.1)},
			{"rollup_aic_refresh", Int(1)},
			{"rollup_tolerance", Float(1e-4)},
			{"iterative_solver", Bool(false)},
			{"iterative_tol", Float(1e-4)},
			{"iterative_precond", Bool(false)},
			{"velocity_field_generator", String("SteadyVelocityField")},
			{"rho", Float(1.225)},
		},
		NonLinearDynamicCoupledStep: dynamicStructural(),
		NonLinearDynamicMultibody:   dynamicStructural(),
		StepUvlm: {
			{"print_info", Bool(true)},
			{"num_cores", Int(0)},
			{"n_time_steps", Int(100)},
			{"convection_scheme", Int(3)},
			{"dt", Float(0.1)},
			{"iterative_solver", Bool(false)},
			{"iterative_tol", Float(1e-4)},
			{"iterative_precond", Bool(false)},
			{"velocity_field_generator", String("SteadyVelocityField")},
			{"rho", Float(1.225)},
		},
		StaticCoupled: {
			{"print_info", Bool(true)},
			{"structural_solver", String("")},
			{"aero_solver", String("")},
			{"max_iter", Int(100)},
			{"n_load_steps", Int(1)},
			{"tolerance", Float(1e-5)},
			{"relaxation_factor", Float(0)},
		},
		DynamicCoupled: {
			{"print_info", Bool(true)},
			{"structural_solver", String("")},
			{"aero_solver", String("")},
			{"n_time_steps", Int(100)},
			{"dt", Float(0.05)},
			{"structural_substeps", Int(1)},
			{"fsi_substeps", Int(70)},
			{"fsi_tolerance", Float(1e-5)},
			{"relaxation_factor", Float(0.2)},
			{"final_relaxation_factor", Float(0)},
			{"minimum_steps", Int(3)},
			{"relaxation_steps", Int(100)},
			{"dynamic_relaxation", Bool(true)},
			{"post_processors", StringArray()},
			{"cleanup_previous_solution", Bool(true)},
			{"include_unsteady_force_contribution", Bool(false)},
		},
	}
}

func dynamicStructural() Schema {
	return Schema{
		{"print_info", Bool(true)},
		{"max_iterations", Int(100)},
		{"num_load_steps", Int(5)},
		{"delta_curved", Float(1e-5)},
		{"min_delta", Float(1e-5)},
		{"newmark_damp", Float(1e-4)},
		{"dt", Float(0.01)},
		{"num_steps", Int(500)},
		{"gravity_on", Bool(false)},
		{"gravity", Float(9.81)},
		{"initial_velocity_direction", FloatArray(-1, 0, 0)},
		{"initial_velocity", Float(0)},
	}
}
