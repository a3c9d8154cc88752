package importer

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeTextFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeUTF16LEFile writes content as UTF-16LE with a byte order mark.
func writeUTF16LEFile(t *testing.T, path, content string) {
	t.Helper()

	runes := []rune(content)
	buf := make([]byte, 0, 2+len(runes)*2)
	buf = append(buf, 0xFF, 0xFE)
	for _, r := range runes {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(r))
		buf = append(buf, b[:]...)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCSVReader_SingleSheetNamedAfterFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "people.csv")
	writeTextFile(t, path, "Name,Age\nAnn,30\n,\nBo\n")

	wb, err := (&CSVReader{}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "people" {
		t.Fatalf("unexpected sheets: %v", wb.SheetNames())
	}

	table := Extract(wb.Sheets[0])
	if table.RowCount() != 2 {
		t.Fatalf("expected 2 records, got %d", table.RowCount())
	}
	if _, ok := table.Records[1].Get("Age"); ok {
		t.Fatalf("expected ragged row to miss Age")
	}
}

func TestCSVReader_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := (&CSVReader{}).Read(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCSVReader_UTF16TabSeparated(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "einträge.tsv")
	writeUTF16LEFile(t, path, "Beginn\tKunde\tNotiz\n03.03.2026 08:30\tVirtual7\tFahrt \"Büro\n")

	wb, err := (&CSVReader{Comma: '\t'}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wb.Sheets[0].Name != "einträge" {
		t.Fatalf("expected sheet einträge, got %q", wb.Sheets[0].Name)
	}

	table := Extract(wb.Sheets[0])
	if table.RowCount() != 1 {
		t.Fatalf("expected 1 record, got %d", table.RowCount())
	}
	if got := table.Records[0].Text("Kunde"); got != "Virtual7" {
		t.Fatalf("expected Virtual7, got %q", got)
	}
	if got := table.Records[0].Text("Notiz"); got != "Fahrt \"Büro" {
		t.Fatalf("expected lazy quote kept, got %q", got)
	}
}

func TestCSVReader_UTF8BOMStripped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bom.csv")
	writeTextFile(t, path, "\uFEFFName\nAnn\n")

	wb, err := (&CSVReader{}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	headers := Extract(wb.Sheets[0]).Headers
	if len(headers) != 1 || headers[0] != "Name" {
		t.Fatalf("expected BOM-free header, got %q", headers)
	}
}
