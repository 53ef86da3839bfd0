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

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/aerocase/bundle"
)

// CleanCmd represents the clean command
var CleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the case files of a case",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		route, caseName := viper.GetString("route"), viper.GetString("case")
		if caseName == "" {
			return fmt.Errorf("must supply a case name (-c, --case)")
		}
		if route == "" {
			route = "."
		}
		n, err := bundle.Clean(afero.NewOsFs(), route, caseName)
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d files\n", n)
		return
	},
}

func init() {
	rootCmd.AddCommand(CleanCmd)
}
