/*
Copyright © 2025 riad@rsworld.eu

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
	"github.com/spf13/viper"
	"os"

	"github.com/spf13/cobra"
	"shiftstat/config"
	"shiftstat/internal/logging"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shiftstat",
	Short: "Analyze digitizing shift efficiency per employee and write Excel reports.",
	Long: `
**********************************************
*              SHIFT STAT                    *
**********************************************

This CLI reads one shift file per employee (Excel, CSV), computes hours worked and
efficiency (hours digitized / hours worked) per shift, ranks employees, and writes
two Excel workbooks: a date analysis of the most recent shifts and a format analysis.

Supported input formats:
- Excel: .xlsx, .xlsm
- CSV: .csv
`,
	Example: `
  # Create configuration file
  shiftstat config create

  # Enter employees interactively
  shiftstat analyze

  # Analyze two employees without prompting
  shiftstat analyze --employee "Jane Doe=./jane.xlsx" --employee "Bob=./bob.csv"

  # Also export the ranking
  shiftstat analyze --employee "Jane Doe=./jane.xlsx" --ranking-output ./ranking.csv

  # List stored sessions (requires storage.enabled)
  shiftstat history
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(os.Stderr, viper.GetString(config.KeyLogLevel))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.shiftstat.yaml, then ./.shiftstat.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|warning|error (overrides log.level)")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".shiftstat" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shiftstat")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Using defaults. Create one with: shiftstat config create")
	}
}
