package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"xlsxweb/config"
)

var configCreateOutputDir string

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

An existing configuration file is never overwritten. With --output-dir the template
presets output.dir; the directory must exist or be creatable and writable.`,
	Example: `
  # Create default config at $HOME/.xlsxweb.yaml
  xlsxweb config create

  # Create config at a custom path
  xlsxweb --configFile ./xlsxweb.yaml config create

  # Create config that writes all HTML files into ./site
  xlsxweb config create --output-dir ./site
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(cmd.OutOrStdout(), configCreateOutputDir)
	},
}

func saveDefaultConfig(w io.Writer, outputDir string) error {
	if err := checkOutputDir(outputDir); err != nil {
		return err
	}

	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	template := config.ExampleYAMLWithOutputDir(strings.TrimSpace(outputDir))
	created, err := ensureConfigFileWithTemplate(configPath, template)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(w, "New config file created at: %s\n", configPath)
		return nil
	}

	fmt.Fprintf(w, "Config file already exists at: %s\n", configPath)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringVarP(&configCreateOutputDir, "output-dir", "o", "", "Preset output.dir in the new config file")
}
