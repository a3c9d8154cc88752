package importer

import (
	"strconv"

	"xlsxweb/workbook"
)

// Table is the extracted form of one sheet: headers from the first row and
// one record per remaining non-empty row.
type Table struct {
	Name    string
	Headers []string
	Records []Record
}

// Columns returns the headers with repeats collapsed onto their first
// position, matching the keys a record can hold.
func (t Table) Columns() []string {
	columns := make([]string, 0, len(t.Headers))
	seen := make(map[string]struct{}, len(t.Headers))
	for _, header := range t.Headers {
		if _, ok := seen[header]; ok {
			continue
		}
		seen[header] = struct{}{}
		columns = append(columns, header)
	}
	return columns
}

func (t Table) RowCount() int {
	return len(t.Records)
}

// Headers derives column headers from a header row. An absent cell at
// 1-based position i becomes "Col_i".
func Headers(row []workbook.Value) []string {
	headers := make([]string, len(row))
	for i, cell := range row {
		if cell.IsAbsent() {
			headers[i] = "Col_" + strconv.Itoa(i+1)
			continue
		}
		headers[i] = cell.String()
	}
	return headers
}

// Extract turns a sheet into a table. Rows where every cell is absent are
// dropped. A row shorter than the headers leaves its trailing headers unset;
// cells beyond the last header are discarded.
func Extract(sheet workbook.Sheet) Table {
	table := Table{Name: sheet.Name, Records: []Record{}}
	if len(sheet.Rows) == 0 {
		return table
	}

	table.Headers = Headers(sheet.Rows[0])
	for _, row := range sheet.Rows[1:] {
		if workbook.RowIsAbsent(row) {
			continue
		}

		width := min(len(row), len(table.Headers))
		record := Record{Fields: make([]Field, 0, width)}
		for col := 0; col < width; col++ {
			record.Set(table.Headers[col], workbook.Normalize(row[col]))
		}
		table.Records = append(table.Records, record)
	}

	return table
}

// ExtractWorkbook extracts every sheet in workbook order.
func ExtractWorkbook(wb *workbook.Workbook) []Table {
	tables := make([]Table, 0, len(wb.Sheets))
	for _, sheet := range wb.Sheets {
		tables = append(tables, Extract(sheet))
	}
	return tables
}
