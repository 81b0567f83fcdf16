package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var (
	testHeader = []string{"Name", "Count", "Percentage", "Films"}
	testRows   = [][]string{
		{"Mickey", "4", "80.00%", "Fantasia, Fantasia 2000"},
		{"Goofy", "1", "20.00%", "A Goofy Movie"},
	}
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"xlsx": FormatXLSX, ".CSV": FormatCSV, " pdf ": FormatPDF} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, "ignored", testHeader, testRows); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 || records[0][2] != "Percentage" || records[1][3] != "Fantasia, Fantasia 2000" {
		t.Fatalf("unexpected csv: %v", records)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, "Films", testHeader, testRows); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(DefaultSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Name" || rows[1][0] != "Mickey" || rows[1][1] != "4" || rows[2][2] != "20.00%" {
		t.Fatalf("unexpected sheet: %v", rows)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatPDF, "Films Participation - Page 1", testHeader, testRows); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Fatalf("expected pdf output")
	}
}

func TestToFileReplacesAtomically(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := ToFile(dir, "Films Participation - Page 2", FormatCSV, testHeader, testRows)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "Films Participation - Page 2.csv" {
		t.Fatalf("unexpected path: %s", path)
	}
	if _, err := ToFile(dir, "Films Participation - Page 2", FormatCSV, testHeader, testRows[:1]); err != nil {
		t.Fatalf("second export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Fatalf("expected replaced file, got %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no temp files left, got %d entries", len(entries))
	}
}

func TestWriteXLSXKeepsNumericNamesAsText(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"101", "2", "100.00%", "101 Dalmatians"}}
	if err := Write(&buf, FormatXLSX, "Films", testHeader, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	nameType, err := f.GetCellType(DefaultSheet, "A2")
	if err != nil {
		t.Fatalf("cell type: %v", err)
	}
	if nameType != excelize.CellTypeSharedString {
		t.Fatalf("expected name stored as text, got %v", nameType)
	}
	countType, err := f.GetCellType(DefaultSheet, "B2")
	if err != nil {
		t.Fatalf("cell type: %v", err)
	}
	if countType == excelize.CellTypeSharedString || countType == excelize.CellTypeInlineString {
		t.Fatalf("expected count stored as a number, got %v", countType)
	}
	if got, _ := f.GetCellValue(DefaultSheet, "A2"); got != "101" {
		t.Fatalf("unexpected name value %q", got)
	}
}
