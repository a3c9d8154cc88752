package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"xlsxweb/workbook"
)

// CSVReader reads a delimited text file as a workbook with a single sheet
// named after the file. Empty fields are absent; ragged rows stay ragged.
// A UTF-8 or UTF-16 byte order mark is honored, so spreadsheet exports saved
// as "Unicode text" read the same as plain CSV.
type CSVReader struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

func (r *CSVReader) Read(path string) (*workbook.Workbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(file, decoder))
	if r.Comma != 0 {
		reader.Comma = r.Comma
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows := make([][]workbook.Value, 0, 128)
	rowNumber := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber, err)
		}

		values := make([]workbook.Value, len(record))
		for i, field := range record {
			if field != "" {
				values[i] = workbook.Text(field)
			}
		}
		rows = append(rows, values)
		rowNumber++
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &workbook.Workbook{Sheets: []workbook.Sheet{{Name: name, Rows: rows}}}, nil
}
