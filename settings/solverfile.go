package settings

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/notargets/aerocase/types"
)

// WriteSolverFile writes the main section followed by every solver of the
// flow, in flow order. Coupled solvers carry the settings of the solvers they
// name as child sections.
func (s *Settings) WriteSolverFile(w io.Writer) (err error) {
	cfg := ini.Empty()
	if err = s.writeSection(cfg, string(Main), Main); err != nil {
		return
	}
	for _, solver := range s.Flow() {
		if err = s.writeSection(cfg, string(solver), solver); err != nil {
			return
		}
		for _, ch := range s.nested(solver) {
			if err = s.writeSection(cfg, ch.section, ch.solver); err != nil {
				return
			}
		}
	}
	if _, err = cfg.WriteTo(w); err != nil {
		err = fmt.Errorf("write solver file: %w", err)
	}
	return
}

func (s *Settings) writeSection(cfg *ini.File, section string, solver SolverName) (err error) {
	var sec *ini.Section
	if sec, err = cfg.NewSection(section); err != nil {
		return fmt.Errorf("solver file section %s: %w", section, err)
	}
	for _, o := range registry[solver] {
		val := s.values[solver][o.Key].String()
		if strings.TrimSpace(val) != val {
			val = `"` + val + `"`
		}
		if _, err = sec.NewKey(o.Key, val); err != nil {
			return fmt.Errorf("solver file key %s.%s: %w", section, o.Key, err)
		}
	}
	return
}

// ReadSolverFile loads a solver file written by WriteSolverFile. Every key is
// coerced against the registry; child sections of coupled solvers are loaded
// into the solver they name.
func ReadSolverFile(data []byte) (s *Settings, err error) {
	var cfg *ini.File
	if cfg, err = ini.LoadSources(ini.LoadOptions{UnescapeValueDoubleQuotes: true}, data); err != nil {
		err = &types.ConfigurationError{Op: "solver file", Msg: err.Error()}
		return
	}
	s = New()
	// Top level sections first, so child sections resolve against the
	// coupled solver settings just read.
	var children []*ini.Section
	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			if len(sec.Keys()) != 0 {
				return nil, &types.ConfigurationError{Op: "solver file", Msg: "keys outside of any section"}
			}
			continue
		}
		if strings.Contains(name, ".") {
			children = append(children, sec)
			continue
		}
		var solver SolverName
		if solver, err = ParseSolverName(name); err != nil {
			return nil, err
		}
		if err = s.readSection(sec, solver); err != nil {
			return nil, err
		}
	}
	for _, sec := range children {
		var solver SolverName
		if solver, err = s.childSolver(sec.Name()); err != nil {
			return nil, err
		}
		if err = s.readSection(sec, solver); err != nil {
			return nil, err
		}
	}
	return
}

func (s *Settings) readSection(sec *ini.Section, solver SolverName) (err error) {
	for _, key := range sec.Keys() {
		if err = s.Set(solver, key.Name(), key.String()); err != nil {
			return
		}
	}
	return
}

// childSolver resolves the solver a child section such as
// StaticCoupled.structural_solver_settings or
// DynamicCoupled.post_processor_settings.BeamPlot carries.
func (s *Settings) childSolver(section string) (solver SolverName, err error) {
	parts := strings.Split(section, ".")
	if len(parts) < 2 {
		return "", &types.ConfigurationError{Op: "solver file", Msg: fmt.Sprintf("bad section %q", section)}
	}
	for _, ch := range s.nested(SolverName(parts[0])) {
		if ch.section == section {
			return ch.solver, nil
		}
	}
	return "", &types.ConfigurationError{Op: "solver file",
		Msg: fmt.Sprintf("section %q does not match a solver named by %s", section, parts[0])}
}
