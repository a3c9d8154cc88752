package workbook

import (
	"strconv"
	"time"

	"xlsxweb/internal/timeutil"
)

type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindBool
	KindDate
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Value is a single raw cell value. The zero Value is absent, which is
// distinct from Text("").
type Value struct {
	kind   Kind
	text   string
	number float64
	flag   bool
	at     time.Time
}

func Absent() Value { return Value{} }

func Text(s string) Value { return Value{kind: KindText, text: s} }

func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

func Date(t time.Time) Value { return Value{kind: KindDate, at: t} }

func DateTime(t time.Time) Value { return Value{kind: KindDateTime, at: t} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Float returns the numeric payload; ok is false for non-number kinds.
func (v Value) Float() (float64, bool) {
	return v.number, v.kind == KindNumber
}

// Time returns the date payload; ok is false unless the kind is a date kind.
func (v Value) Time() (time.Time, bool) {
	return v.at, v.kind == KindDate || v.kind == KindDateTime
}

// String returns the canonical text form of the value.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return formatNumber(v.number)
	case KindBool:
		if v.flag {
			return "True"
		}
		return "False"
	case KindDate:
		return timeutil.FormatDate(v.at)
	case KindDateTime:
		return timeutil.FormatMinute(v.at)
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
