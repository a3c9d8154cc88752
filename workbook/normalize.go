package workbook

import "xlsxweb/internal/timeutil"

// Normalize maps a raw cell value to its display value. Dates become text
// in YYYY-MM-DD, date-times become text in YYYY-MM-DD HH:MM, and every other
// kind is returned unchanged. Absent stays absent and renders as "".
func Normalize(v Value) Value {
	switch v.kind {
	case KindDate:
		return Text(timeutil.FormatDate(v.at))
	case KindDateTime:
		return Text(timeutil.FormatMinute(v.at))
	default:
		return v
	}
}
