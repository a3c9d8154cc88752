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
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"xlsxweb/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xlsxweb",
	Short: "Convert Excel workbooks into self-contained, searchable HTML pages.",
	Long: `
**********************************************
*                 XLSXWEB                    *
**********************************************

This CLI reads Excel workbooks and writes one standalone HTML file per workbook.
Every sheet becomes a tab with a table that can be searched and sorted in the
browser without any network access.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv (single file only)
`,
	Example: `
  # Create configuration file
  xlsxweb config create

  # Convert one workbook next to itself
  xlsxweb convert ./report.xlsx

  # Convert all workbooks of a directory into ./site
  xlsxweb convert ./exports --output-dir ./site

  # Convert a directory with four workers and report all failures at the end
  xlsxweb convert ./exports --jobs 4 --keep-going
`,
	SilenceUsage: true,
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

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.xlsxweb.yaml, then ./.xlsxweb.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
}

// initConfig reads in the config file if one exists. Running without a
// config file is fine; defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".xlsxweb")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}
		cobra.CheckErr(err)
	}
}
