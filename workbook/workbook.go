// Package workbook holds the in-memory grid read from a spreadsheet file.
package workbook

// Workbook is the ordered collection of sheets read from one source file.
type Workbook struct {
	Sheets []Sheet
}

// Sheet is one named grid. Rows keep their original order; a row may be
// shorter or longer than its neighbours.
type Sheet struct {
	Name string
	Rows [][]Value
}

// SheetNames returns the sheet names in workbook order.
func (w Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, sheet := range w.Sheets {
		names = append(names, sheet.Name)
	}
	return names
}

// RowIsAbsent reports whether every cell of row is absent. An empty row is
// absent as well.
func RowIsAbsent(row []Value) bool {
	for _, cell := range row {
		if !cell.IsAbsent() {
			return false
		}
	}
	return true
}
