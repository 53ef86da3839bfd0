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
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aerocase",
	Short: "Assembles aeroelastic cases from beams and lifting surfaces",
	Long: `
Builds beam structures and their lifting surfaces, merges them into one case,
collapses coincident nodes, validates every array and writes the case files
read by the aeroelastic solver.

aerocase build -I case.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if err = initLogger(viper.GetBool("debug")); err != nil {
			return
		}
		if viper.GetBool("profile") {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aerocase.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "verbose development logging")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile to the working directory")
	rootCmd.PersistentFlags().StringP("route", "r", "", "directory the case files are written to")
	rootCmd.PersistentFlags().StringP("case", "c", "", "case name, the stem of every case file")
	rootCmd.PersistentFlags().Float64P("tolerance", "t", 0, "distance below which nodes are merged")
	for _, key := range []string{"debug", "profile", "route", "case", "tolerance"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".aerocase" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".aerocase")
	}
	viper.SetEnvPrefix("aerocase")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger(debug bool) (err error) {
	var logger *zap.Logger
	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return
}
