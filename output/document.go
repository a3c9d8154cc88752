package output

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"xlsxweb/importer"
	"xlsxweb/internal/timeutil"
)

//go:embed assets/*
var assetFS embed.FS

const (
	DefaultEmptyMessage      = "No data"
	DefaultSearchPlaceholder = "Search..."
)

// Document is everything rendered into one HTML file.
type Document struct {
	Title     string
	Source    string
	Converted time.Time
	Tables    []importer.Table
}

// NewDocument names the document after the source file: the title is the
// file stem and the source is the base name.
func NewDocument(sourcePath string, tables []importer.Table, converted time.Time) Document {
	base := filepath.Base(sourcePath)
	return Document{
		Title:     strings.TrimSuffix(base, filepath.Ext(base)),
		Source:    base,
		Converted: converted,
		Tables:    tables,
	}
}

func (d Document) TotalRows() int {
	total := 0
	for _, table := range d.Tables {
		total += table.RowCount()
	}
	return total
}

type RenderOptions struct {
	EmptyMessage      string
	SearchPlaceholder string
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		EmptyMessage:      DefaultEmptyMessage,
		SearchPlaceholder: DefaultSearchPlaceholder,
	}
}

type sheetView struct {
	ID       string
	Name     string
	Active   bool
	Empty    bool
	Columns  []string
	Rows     [][]string
	RowCount int
}

type documentView struct {
	Title             string
	Source            string
	Converted         string
	TotalRows         int
	SearchPlaceholder string
	EmptyMessage      string
	Sheets            []sheetView
	Style             string
	Script            string
}

// Render produces the complete HTML document. Style and script are inlined
// so the output makes no requests.
func Render(doc Document, options RenderOptions) (string, error) {
	if options.EmptyMessage == "" {
		options.EmptyMessage = DefaultEmptyMessage
	}
	if options.SearchPlaceholder == "" {
		options.SearchPlaceholder = DefaultSearchPlaceholder
	}

	style, err := assetFS.ReadFile("assets/style.css")
	if err != nil {
		return "", fmt.Errorf("read stylesheet: %w", err)
	}
	script, err := assetFS.ReadFile("assets/table.js")
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}

	view := documentView{
		Title:             doc.Title,
		Source:            doc.Source,
		Converted:         timeutil.FormatMinute(doc.Converted),
		TotalRows:         doc.TotalRows(),
		SearchPlaceholder: options.SearchPlaceholder,
		EmptyMessage:      options.EmptyMessage,
		Sheets:            make([]sheetView, 0, len(doc.Tables)),
		Style:             string(style),
		Script:            string(script),
	}
	for i, table := range doc.Tables {
		view.Sheets = append(view.Sheets, buildSheetView(table, i == 0))
	}

	tmpl, err := template.New("document.html.tmpl").Funcs(template.FuncMap{
		"escape": Escape,
	}).ParseFS(assetFS, "assets/document.html.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse document template: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, view); err != nil {
		return "", fmt.Errorf("render document %s: %w", doc.Source, err)
	}
	return out.String(), nil
}

func buildSheetView(table importer.Table, active bool) sheetView {
	view := sheetView{
		ID:       SheetID(table.Name),
		Name:     table.Name,
		Active:   active,
		Empty:    table.RowCount() == 0,
		RowCount: table.RowCount(),
	}
	if view.Empty {
		return view
	}

	view.Columns = table.Columns()
	view.Rows = make([][]string, 0, len(table.Records))
	for _, record := range table.Records {
		cells := make([]string, len(view.Columns))
		for i, column := range view.Columns {
			cells[i] = record.Text(column)
		}
		view.Rows = append(view.Rows, cells)
	}
	return view
}
