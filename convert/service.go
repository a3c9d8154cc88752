// Package convert resolves an input path to workbooks and turns each into a
// standalone HTML file.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"xlsxweb/importer"
	"xlsxweb/output"
)

// directoryExtensions are matched case-sensitively against direct children
// of an input directory.
var directoryExtensions = []string{".xlsx", ".xls"}

type Options struct {
	// OutputDir receives the HTML files; empty means next to each input.
	OutputDir string
	// Jobs bounds concurrent conversions in directory mode; values below 1
	// mean sequential.
	Jobs int
	// KeepGoing converts the remaining files after a failure and reports
	// all failures at the end instead of aborting on the first one.
	KeepGoing bool

	Reader importer.ReaderOptions
	// ReaderFor picks the reader for a path; defaults to importer.ReaderForPath.
	ReaderFor func(path string, options importer.ReaderOptions) (importer.Reader, error)
	Render    output.RenderOptions
	Writer    output.Writer

	Logger *slog.Logger
	// Progress receives "Converting:" and "->" lines; nil discards them.
	Progress io.Writer
	Now      func() time.Time
}

type FileResult struct {
	Input  string
	Output string
	Sheets int
	Rows   int
}

type Failure struct {
	Input string
	Err   error
}

type Result struct {
	FilesProcessed  int
	SheetsRendered  int
	RowsRendered    int
	Files           []FileResult
	Failures        []Failure
	NoMatchingFiles bool
}

func (r *Result) add(file FileResult) {
	r.FilesProcessed++
	r.SheetsRendered += file.Sheets
	r.RowsRendered += file.Rows
	r.Files = append(r.Files, file)
}

// Run converts input, which may be a single workbook or a directory of
// workbooks. A directory without workbooks is not an error; the result has
// NoMatchingFiles set.
func Run(ctx context.Context, input string, options Options) (*Result, error) {
	options = withDefaults(options)

	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, input)
		}
		return nil, fmt.Errorf("stat input %s: %w", input, err)
	}

	if info.IsDir() {
		paths, err := ListWorkbooks(input)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			options.Logger.Info("no workbooks found", "dir", input)
			return &Result{NoMatchingFiles: true}, nil
		}
		return runBatch(ctx, paths, options)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, input)
	}

	progress := &progressWriter{out: options.Progress}
	file, err := convertWithProgress(input, options, progress)
	if err != nil {
		return nil, err
	}
	result := &Result{}
	result.add(file)
	return result, nil
}

// ListWorkbooks returns the direct children of dir whose names end in .xlsx
// or .xls, in directory order. Subdirectories are skipped.
func ListWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !hasWorkbookExtension(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}

func hasWorkbookExtension(name string) bool {
	for _, extension := range directoryExtensions {
		if strings.HasSuffix(name, extension) {
			return true
		}
	}
	return false
}

func runBatch(ctx context.Context, paths []string, options Options) (*Result, error) {
	files := make([]FileResult, len(paths))
	failures := make([]error, len(paths))
	progress := &progressWriter{out: options.Progress}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(options.Jobs, 1))
	for i, path := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			file, err := convertWithProgress(path, options, progress)
			if err != nil {
				if options.KeepGoing {
					failures[i] = err
					return nil
				}
				return err
			}
			files[i] = file
			return nil
		})
	}
	waitErr := group.Wait()

	result := &Result{}
	joined := make([]error, 0)
	for i, path := range paths {
		if failures[i] != nil {
			result.Failures = append(result.Failures, Failure{Input: path, Err: failures[i]})
			joined = append(joined, failures[i])
			continue
		}
		if files[i].Output != "" {
			result.add(files[i])
		}
	}

	if waitErr != nil {
		return result, waitErr
	}
	if len(joined) > 0 {
		return result, errors.Join(joined...)
	}
	return result, nil
}

func convertWithProgress(path string, options Options, progress *progressWriter) (FileResult, error) {
	progress.printf("Converting: %s\n", filepath.Base(path))
	file, err := ConvertFile(path, options)
	if err != nil {
		return FileResult{}, err
	}
	progress.printf("  -> %s\n", file.Output)
	return file, nil
}

// ConvertFile reads one workbook and writes <stem>.html into the output
// directory, creating the directory when needed.
func ConvertFile(path string, options Options) (FileResult, error) {
	options = withDefaults(options)
	logger := options.Logger.With("file", path)

	reader, err := options.ReaderFor(path, options.Reader)
	if err != nil {
		return FileResult{}, &UnreadableWorkbookError{Path: path, Err: err}
	}
	wb, err := reader.Read(path)
	if err != nil {
		logger.Debug("read workbook failed", "error", err)
		return FileResult{}, &UnreadableWorkbookError{Path: path, Err: err}
	}
	logger.Debug("workbook read", "sheets", len(wb.Sheets))

	tables := importer.ExtractWorkbook(wb)
	doc := output.NewDocument(path, tables, options.Now())

	outputDir := options.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return FileResult{}, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	outputPath := filepath.Join(outputDir, OutputName(path))
	if err := options.Writer.Write(outputPath, doc); err != nil {
		return FileResult{}, err
	}
	logger.Debug("html written", "output", outputPath, "sheets", len(tables), "rows", doc.TotalRows())

	return FileResult{
		Input:  path,
		Output: outputPath,
		Sheets: len(tables),
		Rows:   doc.TotalRows(),
	}, nil
}

// OutputName returns the HTML file name for a workbook path.
func OutputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

func withDefaults(options Options) Options {
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.ReaderFor == nil {
		options.ReaderFor = importer.ReaderForPath
	}
	if options.Writer == nil {
		options.Writer = &output.HTMLWriter{Options: options.Render}
	}
	return options
}

// progressWriter serializes progress lines from concurrent conversions.
type progressWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *progressWriter) printf(format string, args ...any) {
	if p.out == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}
