package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"xlsxweb/config"
	"xlsxweb/convert"
	"xlsxweb/importer"
	"xlsxweb/output"
)

var (
	convertOutputDir string
	convertJobs      int
	convertKeepGoing bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert a workbook, or every workbook of a directory, to HTML",
	Long: `Read an Excel workbook and write <stem>.html with one tab per sheet.

When <input> is a directory, every direct child ending in .xlsx or .xls is converted
(case-sensitive, hidden files included). Without --output-dir (or output.dir in config)
each HTML file is written next to its workbook.

A directory without workbooks is reported and exits successfully. A missing input
or an unreadable workbook fails the command; with --keep-going the remaining files
of a directory are still converted and all failures are reported at the end.`,
	Example: `
  # Convert one workbook
  xlsxweb convert ./report.xlsx

  # Convert a directory into ./site
  xlsxweb convert ./exports -o ./site

  # Convert with four workers, continue after failures
  xlsxweb convert ./exports --jobs 4 --keep-going

  # Convert with custom config file
  xlsxweb --configFile ./custom-xlsxweb.yaml convert ./exports
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		options, err := buildConvertOptions(cmd, *cfg)
		if err != nil {
			return err
		}
		options.Logger = newLogger(cmd.ErrOrStderr(), cfg.Log, verbose)
		options.Progress = cmd.OutOrStdout()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		input := args[0]
		result, err := convert.Run(ctx, input, options)
		if result != nil && (err == nil || len(result.Failures) > 0) {
			printConvertSummary(cmd.OutOrStdout(), input, result)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutputDir, "output-dir", "o", "", "Output directory (default: output.dir from config, else next to each input)")
	convertCmd.Flags().IntVar(&convertJobs, "jobs", 1, "Number of workbooks converted concurrently in directory mode, 1-64 (default: convert.jobs from config)")
	convertCmd.Flags().BoolVar(&convertKeepGoing, "keep-going", false, "Continue with remaining files after a failure (default: convert.keep_going from config)")
}

// buildConvertOptions merges flags over config values. Flags only win when
// they were set explicitly; the merged values are validated like the config.
func buildConvertOptions(cmd *cobra.Command, cfg config.Config) (convert.Options, error) {
	options := convert.Options{
		OutputDir: cfg.Output.Dir,
		Jobs:      cfg.Convert.Jobs,
		KeepGoing: cfg.Convert.KeepGoing,
		Reader:    importer.ReaderOptions{XLSCharset: cfg.XLS.Charset},
		Render: output.RenderOptions{
			EmptyMessage:      cfg.Render.EmptyMessage,
			SearchPlaceholder: cfg.Render.SearchPlaceholder,
		},
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		options.OutputDir = strings.TrimSpace(convertOutputDir)
	}
	if flags.Changed("jobs") {
		options.Jobs = convertJobs
	}
	if flags.Changed("keep-going") {
		options.KeepGoing = convertKeepGoing
	}

	merged := config.ConvertConfig{Jobs: options.Jobs, KeepGoing: options.KeepGoing}
	if err := merged.Validate(); err != nil {
		return convert.Options{}, fmt.Errorf("--jobs must be between 1 and 64, got %d: %w", options.Jobs, err)
	}
	return options, nil
}

func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printConvertSummary(w io.Writer, input string, result *convert.Result) {
	if result.NoMatchingFiles {
		fmt.Fprintf(w, "No Excel files found in %s\n", input)
		return
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(w, "Failed: %s: %v\n", failure.Input, failure.Err)
	}
	fmt.Fprintf(w, "Conversion completed. Files: %d, Sheets: %d, Rows: %d\n",
		result.FilesProcessed,
		result.SheetsRendered,
		result.RowsRendered,
	)
}
