package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"xlsxweb/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a
config file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  xlsxweb config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		printConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), *cfg)
		return nil
	},
}

func printConfig(w io.Writer, configPath string, cfg config.Config) {
	if configPath != "" {
		fmt.Fprintln(w, "Config file loaded from:", configPath)
	} else {
		fmt.Fprintln(w, "No config file found, using defaults.")
	}
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "%s: %s\n", config.KeyOutputDir, cfg.Output.Dir)
	if err := checkOutputDir(cfg.Output.Dir); err != nil {
		fmt.Fprintf(w, "  warning: %v\n", err)
	}
	fmt.Fprintf(w, "%s: %d\n", config.KeyConvertJobs, cfg.Convert.Jobs)
	fmt.Fprintf(w, "%s: %t\n", config.KeyConvertKeepGoing, cfg.Convert.KeepGoing)
	fmt.Fprintf(w, "%s: %s\n", config.KeyRenderEmptyMessage, cfg.Render.EmptyMessage)
	fmt.Fprintf(w, "%s: %s\n", config.KeyRenderSearchPlaceholder, cfg.Render.SearchPlaceholder)
	fmt.Fprintf(w, "%s: %s\n", config.KeyXLSCharset, cfg.XLS.Charset)
	fmt.Fprintf(w, "%s: %s\n", config.KeyLogLevel, cfg.Log.Level)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
