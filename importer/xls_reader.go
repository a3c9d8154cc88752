package importer

import (
	"fmt"

	"github.com/extrame/xls"
	"xlsxweb/workbook"
)

const defaultXLSCharset = "utf-8"

// XLSReader reads legacy BIFF (.xls) workbooks. The library hands out
// display strings, so every non-empty cell becomes text.
type XLSReader struct {
	Charset string
}

func (r *XLSReader) Read(path string) (result *workbook.Workbook, err error) {
	charset := r.Charset
	if charset == "" {
		charset = defaultXLSCharset
	}

	// The BIFF parser panics on some malformed files.
	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = fmt.Errorf("parse xls file %s: %v", path, recovered)
		}
	}()

	file, err := xls.Open(path, charset)
	if err != nil {
		return nil, fmt.Errorf("open xls file %s: %w", path, err)
	}

	result = &workbook.Workbook{Sheets: make([]workbook.Sheet, 0, file.NumSheets())}
	for i := 0; i < file.NumSheets(); i++ {
		sheet := file.GetSheet(i)
		if sheet == nil {
			continue
		}
		result.Sheets = append(result.Sheets, workbook.Sheet{
			Name: sheet.Name,
			Rows: readXLSRows(sheet),
		})
	}
	if len(result.Sheets) == 0 {
		return nil, fmt.Errorf("xls file has no sheets: %s", path)
	}

	return result, nil
}

func readXLSRows(sheet *xls.WorkSheet) [][]workbook.Value {
	rows := make([][]workbook.Value, 0, int(sheet.MaxRow)+1)
	for rowIdx := 0; rowIdx <= int(sheet.MaxRow); rowIdx++ {
		row := sheet.Row(rowIdx)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		values := make([]workbook.Value, row.LastCol())
		for colIdx := row.FirstCol(); colIdx < row.LastCol(); colIdx++ {
			if text := row.Col(colIdx); text != "" {
				values[colIdx] = workbook.Text(text)
			}
		}
		rows = append(rows, values)
	}
	return padRows(trimTrailingAbsentRows(rows))
}
