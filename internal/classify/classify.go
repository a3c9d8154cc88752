// Package classify decides whether a spreadsheet number format renders its
// value as a date, a time, both, or a plain number.
package classify

import "strings"

type Format int

const (
	Plain Format = iota
	DateOnly
	DateTime
	TimeOnly
)

func (f Format) String() string {
	switch f {
	case DateOnly:
		return "date"
	case DateTime:
		return "datetime"
	case TimeOnly:
		return "time"
	default:
		return "plain"
	}
}

// NumberFormat classifies a cell's number format. A non-empty custom code
// takes precedence over the built-in id.
func NumberFormat(builtinID int, customCode string) Format {
	if strings.TrimSpace(customCode) != "" {
		return CustomCode(customCode)
	}
	return Builtin(builtinID)
}

// Builtin classifies the built-in number format ids of the OOXML standard,
// including the East Asian date ids.
func Builtin(id int) Format {
	switch {
	case id >= 14 && id <= 17:
		return DateOnly
	case id >= 18 && id <= 21:
		return TimeOnly
	case id == 22:
		return DateTime
	case id >= 27 && id <= 31, id >= 34 && id <= 36, id >= 50 && id <= 58:
		return DateOnly
	case id == 32 || id == 33:
		return TimeOnly
	case id >= 45 && id <= 47:
		return TimeOnly
	default:
		return Plain
	}
}

// CustomCode classifies a format code such as "yyyy-mm-dd hh:mm". Only the
// first section (positive numbers) is inspected; quoted literals, escaped
// characters and bracketed colors/conditions are ignored.
func CustomCode(code string) Format {
	section := strings.ToLower(firstSection(code))
	if section == "" || section == "general" || section == "@" {
		return Plain
	}

	hasDate := false
	hasTime := false
	if strings.Contains(section, "am/pm") || strings.Contains(section, "a/p") {
		hasTime = true
		section = strings.ReplaceAll(section, "am/pm", "")
		section = strings.ReplaceAll(section, "a/p", "")
	}

	sawMonthOrMinute := false
	for _, r := range section {
		switch r {
		case 'y', 'd':
			hasDate = true
		case 'h', 's':
			hasTime = true
		case 'm':
			sawMonthOrMinute = true
		}
	}
	if sawMonthOrMinute && !hasDate && !hasTime {
		hasDate = true
	}

	switch {
	case hasDate && hasTime:
		return DateTime
	case hasDate:
		return DateOnly
	case hasTime:
		return TimeOnly
	default:
		return Plain
	}
}

// firstSection strips literals and returns the part of code before the first
// unquoted section separator.
func firstSection(code string) string {
	var b strings.Builder
	var bracket strings.Builder
	inQuote := false
	inBracket := false
	escaped := false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r != ']' {
				bracket.WriteRune(r)
				continue
			}
			inBracket = false
			if isElapsed(bracket.String()) {
				b.WriteRune('h')
			}
			bracket.Reset()
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == ';':
			return b.String()
		case r == '_' || r == '*':
			escaped = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isElapsed matches elapsed-time tokens such as [h], [mm] or [ss].
func isElapsed(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range strings.ToLower(token) {
		if r != 'h' && r != 'm' && r != 's' {
			return false
		}
	}
	return true
}
