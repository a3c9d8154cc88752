package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"xlsxweb/workbook"
)

type Reader interface {
	Read(path string) (*workbook.Workbook, error)
}

// ReaderOptions carries settings for readers that need them.
type ReaderOptions struct {
	XLSCharset string
}

func ReaderForFormat(format string, options ReaderOptions) (Reader, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVReader{}, nil
	case "tsv", "tab":
		return &CSVReader{Comma: '\t'}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	case "xls":
		return &XLSReader{Charset: options.XLSCharset}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// ReaderForPath picks a reader from the file extension.
func ReaderForPath(path string, options ReaderOptions) (Reader, error) {
	extension := strings.TrimPrefix(filepath.Ext(path), ".")
	if extension == "" {
		return nil, fmt.Errorf("unsupported file extension for %s", path)
	}
	reader, err := ReaderForFormat(extension, options)
	if err != nil {
		return nil, fmt.Errorf("unsupported file extension for %s", path)
	}
	return reader, nil
}

func normalizeFormat(input string) string {
	return strings.TrimSpace(strings.ToLower(input))
}

// padRows extends every row to the width of the widest row with absent
// cells, the way a grid reader reports a sheet's used range.
func padRows(rows [][]workbook.Value) [][]workbook.Value {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]workbook.Value, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}

func trimTrailingAbsentRows(rows [][]workbook.Value) [][]workbook.Value {
	end := len(rows)
	for end > 0 && workbook.RowIsAbsent(rows[end-1]) {
		end--
	}
	return rows[:end]
}
