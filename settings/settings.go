package settings

import (
	"fmt"

	"github.com/notargets/aerocase/types"
)

// Settings is the per case overlay of solver options, initialized from the
// registry defaults. The solver flow is kept in the flow key of the main
// section.
type Settings struct {
	values map[SolverName]map[string]Value
}

func New() (s *Settings) {
	s = &Settings{values: make(map[SolverName]map[string]Value, len(registry))}
	for name, sc := range registry {
		s.values[name] = make(map[string]Value, len(sc))
		for _, o := range sc {
			s.values[name][o.Key] = o.Default.clone()
		}
	}
	return
}

func (s *Settings) option(solver SolverName, key string) (opt Option, err error) {
	sc, ok := registry[solver]
	if !ok {
		err = &types.ConfigurationError{Op: "settings", Msg: fmt.Sprintf("unknown solver %q", solver)}
		return
	}
	if opt, ok = sc.lookup(key); !ok {
		err = &types.ConfigurationError{Op: "settings", Msg: fmt.Sprintf("solver %s has no option %q", solver, key)}
	}
	return
}

// Set coerces raw to the kind of the option and stores it.
func (s *Settings) Set(solver SolverName, key string, raw interface{}) (err error) {
	var (
		opt Option
		v   Value
	)
	if opt, err = s.option(solver, key); err != nil {
		return
	}
	if v, err = Coerce(opt.Default.Kind, raw); err != nil {
		return fmt.Errorf("%s.%s: %w", solver, key, err)
	}
	if solver == Main && key == "flow" {
		if _, err = parseFlow(v.Strings()); err != nil {
			return
		}
	}
	s.values[solver][key] = v
	return
}

// SetAll sets key in every solver that has it and returns how many did.
func (s *Settings) SetAll(key string, raw interface{}) (n int, err error) {
	for _, name := range solverNames {
		if _, ok := registry[name].lookup(key); !ok {
			continue
		}
		if err = s.Set(name, key, raw); err != nil {
			return
		}
		n++
	}
	if n == 0 {
		err = &types.ConfigurationError{Op: "settings", Msg: fmt.Sprintf("no solver has option %q", key)}
	}
	return
}

func (s *Settings) Get(solver SolverName, key string) (v Value, err error) {
	if _, err = s.option(solver, key); err != nil {
		return
	}
	return s.values[solver][key].clone(), nil
}

// SetFlow sets the ordered list of solvers run on the case.
func (s *Settings) SetFlow(flow []SolverName) (err error) {
	names := make([]string, len(flow))
	for i, f := range flow {
		names[i] = string(f)
	}
	if _, err = parseFlow(names); err != nil {
		return
	}
	s.values[Main]["flow"] = StringArray(names...)
	return
}

func (s *Settings) Flow() (flow []SolverName) {
	flow, _ = parseFlow(s.values[Main]["flow"].Strings())
	return
}

func parseFlow(names []string) (flow []SolverName, err error) {
	flow = make([]SolverName, len(names))
	for i, name := range names {
		if flow[i], err = ParseSolverName(name); err != nil {
			return nil, err
		}
		if flow[i] == Main {
			return nil, &types.ConfigurationError{Op: "flow", Msg: "the main section cannot be part of the flow"}
		}
	}
	return
}

// DefineUinf sets the free stream direction and speed wherever a solver
// uses them.
func (s *Settings) DefineUinf(direction [3]float64, speed float64) (err error) {
	if err = s.Set(AerogridLoader, "freestream_dir", direction[:]); err != nil {
		return
	}
	_, err = s.SetAll("u_inf", speed)
	return
}

// DefineNumSteps sets the number of time steps of every time marching solver.
func (s *Settings) DefineNumSteps(n int) (err error) {
	if _, err = s.SetAll("num_steps", n); err != nil {
		return
	}
	_, err = s.SetAll("n_time_steps", n)
	return
}

// nested returns the child sections of a coupled solver: the section name
// and the solver whose settings it carries.
func (s *Settings) nested(solver SolverName) (children []child) {
	for _, ns := range nestedSettings {
		v, ok := s.values[solver][ns.Key]
		if !ok {
			continue
		}
		switch v.Kind {
		case KindString:
			if target, err := ParseSolverName(v.Str()); err == nil && target != Main {
				children = append(children, child{section: string(solver) + "." + ns.Section, solver: target})
			}
		case KindStringArray:
			for _, name := range v.Strings() {
				if target, err := ParseSolverName(name); err == nil && target != Main {
					children = append(children, child{
						section: string(solver) + "." + ns.Section + "." + name,
						solver:  target,
					})
				}
			}
		}
	}
	return
}

type child struct {
	section string
	solver  SolverName
}
