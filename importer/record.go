package importer

import "xlsxweb/workbook"

type Field struct {
	Header string
	Value  workbook.Value
}

// Record is one data row keyed by header. Fields keep header order; setting
// a header that already exists replaces the value in place, so with duplicate
// headers the last cell wins.
type Record struct {
	Fields []Field
}

func (r *Record) Set(header string, value workbook.Value) {
	for i := range r.Fields {
		if r.Fields[i].Header == header {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Header: header, Value: value})
}

// Get returns the value stored under header. A missing header yields an
// absent value and ok == false.
func (r Record) Get(header string) (workbook.Value, bool) {
	for _, field := range r.Fields {
		if field.Header == header {
			return field.Value, true
		}
	}
	return workbook.Absent(), false
}

// Text returns the display text stored under header, or "" if missing.
func (r Record) Text(header string) string {
	value, _ := r.Get(header)
	return value.String()
}

func (r Record) Headers() []string {
	headers := make([]string, 0, len(r.Fields))
	for _, field := range r.Fields {
		headers = append(headers, field.Header)
	}
	return headers
}
