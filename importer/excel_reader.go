package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"xlsxweb/internal/classify"
	"xlsxweb/internal/timeutil"
	"xlsxweb/workbook"
)

// ExcelReader reads .xlsx/.xlsm workbooks with their cached cell values, so
// formulas contribute their last computed result.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (*workbook.Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetNames := file.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("excel file has no sheets: %s", path)
	}

	date1904 := false
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	sheetReader := &excelSheetReader{
		file:     file,
		date1904: date1904,
		formats:  make(map[int]classify.Format),
	}

	result := &workbook.Workbook{Sheets: make([]workbook.Sheet, 0, len(sheetNames))}
	for _, sheetName := range sheetNames {
		rows, err := sheetReader.rows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
		}
		result.Sheets = append(result.Sheets, workbook.Sheet{Name: sheetName, Rows: rows})
	}

	return result, nil
}

type excelSheetReader struct {
	file     *excelize.File
	date1904 bool
	// number format per style id, shared by all sheets of the file
	formats map[int]classify.Format
}

func (r *excelSheetReader) rows(sheetName string) ([][]workbook.Value, error) {
	raw, err := r.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rows := make([][]workbook.Value, len(raw))
	for rowIdx, rawRow := range raw {
		values := make([]workbook.Value, len(rawRow))
		for colIdx, rawValue := range rawRow {
			if rawValue == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			values[colIdx] = r.cellValue(sheetName, cell, rawValue)
		}
		rows[rowIdx] = values
	}

	return padRows(rows), nil
}

func (r *excelSheetReader) cellValue(sheetName, cell, raw string) workbook.Value {
	cellType, err := r.file.GetCellType(sheetName, cell)
	if err != nil {
		return workbook.Text(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return workbook.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		return parseISODate(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return workbook.Text(raw)
	}

	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return workbook.Text(raw)
	}

	format := r.numberFormat(sheetName, cell)
	if format == classify.Plain {
		return workbook.Number(number)
	}

	at, err := excelize.ExcelDateToTime(number, r.date1904)
	if err != nil {
		return workbook.Number(number)
	}
	at = at.Round(time.Second)

	switch format {
	case classify.DateOnly:
		return workbook.Date(at)
	case classify.DateTime:
		return workbook.DateTime(at)
	default:
		return workbook.Text(at.Format("15:04:05"))
	}
}

func (r *excelSheetReader) numberFormat(sheetName, cell string) classify.Format {
	styleID, err := r.file.GetCellStyle(sheetName, cell)
	if err != nil || styleID == 0 {
		return classify.Plain
	}
	if format, ok := r.formats[styleID]; ok {
		return format
	}

	format := classify.Plain
	if style, err := r.file.GetStyle(styleID); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		format = classify.NumberFormat(style.NumFmt, custom)
	}
	r.formats[styleID] = format
	return format
}

// parseISODate handles cells stored with the ISO 8601 date type.
func parseISODate(raw string) workbook.Value {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		timeutil.DateLayout,
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if timeutil.HasClock(parsed) {
			return workbook.DateTime(parsed)
		}
		return workbook.Date(parsed)
	}
	return workbook.Text(raw)
}
