package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage xlsxweb configuration file values.",
	Long: `Create, edit, display, and delete the xlsxweb configuration file.

The configuration stores defaults for the convert command:
- output.dir
- convert.jobs / convert.keep_going
- render.empty_message / render.search_placeholder
- xls.charset
- log.level`,
	Example: `
  # Create default config in $HOME/.xlsxweb.yaml
  xlsxweb config create

  # Show active config and source file
  xlsxweb config show

  # Open active config in editor (creates example if missing)
  xlsxweb config edit

  # Delete active config file
  xlsxweb config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
