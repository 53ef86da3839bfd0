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
	"io"

	"github.com/spf13/cobra"

	"github.com/notargets/aerocase/settings"
)

// SettingsCmd represents the settings command
var SettingsCmd = &cobra.Command{
	Use:   "settings [solver...]",
	Short: "Print the default options of the solvers",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var names []settings.SolverName
		if len(args) == 0 {
			names = settings.Solvers()
		}
		for _, arg := range args {
			var name settings.SolverName
			if name, err = settings.ParseSolverName(arg); err != nil {
				return
			}
			names = append(names, name)
		}
		return PrintDefaults(cmd.OutOrStdout(), names...)
	},
}

func init() {
	rootCmd.AddCommand(SettingsCmd)
}

func PrintDefaults(w io.Writer, names ...settings.SolverName) (err error) {
	for i, name := range names {
		var sc settings.Schema
		if sc, err = settings.SchemaOf(name); err != nil {
			return
		}
		if i != 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s]\n", name)
		for _, o := range sc {
			fmt.Fprintf(w, "%-32s = %s\t(%s)\n", o.Key, o.Default, o.Default.Kind)
		}
	}
	return
}
