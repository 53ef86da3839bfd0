/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/aerocase/InputParameters"
	"github.com/notargets/aerocase/bundle"
)

// Overrides replace values of the case definition when set.
type Overrides struct {
	Route     string
	Case      string
	Tolerance *float64
}

// BuildCmd represents the build command
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble, validate and export a case from a YAML definition",
	Long: `
Reads a case definition, builds every beam with its lifting surface, merges
them, applies the case boundary conditions and forces, collapses coincident
nodes, validates the result and writes the case files after removing those of
any earlier build.

aerocase build -I case.yaml --route output`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var inputFile string
		if inputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			return
		}
		if len(inputFile) == 0 {
			return fmt.Errorf("must supply a case definition file (-I, --inputFile)")
		}
		_, err = RunBuild(afero.NewOsFs(), inputFile, overridesFromConfig())
		return
	},
}

func init() {
	rootCmd.AddCommand(BuildCmd)
	BuildCmd.Flags().StringP("inputFile", "I", "", "YAML case definition file")
}

func overridesFromConfig() (o Overrides) {
	o.Route = viper.GetString("route")
	o.Case = viper.GetString("case")
	if viper.IsSet("tolerance") {
		tol := viper.GetFloat64("tolerance")
		o.Tolerance = &tol
	}
	return
}

// RunBuild builds the case of inputFile and writes its files, returning the
// build id shared by them.
func RunBuild(fs afero.Fs, inputFile string, o Overrides) (buildID string, err error) {
	var data []byte
	if data, err = afero.ReadFile(fs, inputFile); err != nil {
		return "", fmt.Errorf("read case definition: %w", err)
	}
	cp := &InputParameters.CaseParameters{}
	if err = cp.Parse(data); err != nil {
		return "", fmt.Errorf("parse %s: %w", inputFile, err)
	}
	if o.Route != "" {
		cp.Route = o.Route
	}
	if o.Case != "" {
		cp.Case = o.Case
	}
	if o.Tolerance != nil {
		cp.Tolerance = *o.Tolerance
	}
	if cp.Case == "" {
		cp.Case = strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	}
	if cp.Route == "" {
		cp.Route = "."
	}
	log := zap.S().With("case", cp.Case)
	log.Debugw("building case", "beams", len(cp.Beams), "tolerance", cp.Tolerance)

	c, err := cp.BuildCase()
	if err != nil {
		return
	}
	s, err := cp.SolverSettings()
	if err != nil {
		return
	}
	if _, err = bundle.Clean(fs, cp.Route, cp.Case); err != nil {
		return
	}
	if buildID, err = bundle.NewExporter(fs, cp.Route, cp.Case).Export(c, s, cp.Forcing(c.Structure.NumNode)); err != nil {
		return
	}
	log.Infow("case written", "route", cp.Route, "build_id", buildID,
		"nodes", c.Structure.NumNode, "elements", c.Structure.NumElem)
	return
}
