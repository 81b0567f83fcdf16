// Package export writes tabular data as XLSX, CSV or PDF files.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// DefaultSheet is the worksheet name used for XLSX exports.
const DefaultSheet = "Sheet1"

// ParseFormat maps a name or file extension to a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "."))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want xlsx, csv or pdf)", value)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Write encodes header and rows to w. Title names the sheet for XLSX and
// heads the page for PDF; CSV ignores it.
func Write(w io.Writer, format Format, title string, header []string, rows [][]string) error {
	switch format {
	case FormatXLSX:
		return writeXLSX(w, header, rows)
	case FormatCSV:
		return writeCSV(w, header, rows)
	case FormatPDF:
		return writePDF(w, title, header, rows)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ToFile writes an export named base plus the format extension into dir
// and returns its path. The file is replaced atomically.
func ToFile(dir, base string, format Format, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, base+format.Ext())
	tmpFile, err := os.CreateTemp(dir, "export-*"+format.Ext())
	if err != nil {
		return "", fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := Write(writer, format, base, header, rows); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeXLSX(w io.Writer, header []string, rows [][]string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := setRow(f, 1, header, false); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row, true); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

// countColumn is the only column written as a number; names such as
// "101" stay text.
const countColumn = 1

func setRow(f *excelize.File, rowNum int, row []string, data bool) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]any, len(row))
	for i, v := range row {
		if data && i == countColumn {
			if n, convErr := strconv.Atoi(v); convErr == nil {
				values[i] = n
				continue
			}
		}
		values[i] = v
	}
	return f.SetSheetRow(DefaultSheet, cell, &values)
}

const (
	pdfMargin     = 10.0
	pdfLineHeight = 7.0
	pdfPageWidth  = 277.0
)

func writePDF(w io.Writer, title string, header []string, rows [][]string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	widths := columnWidths(header, rows, pdfPageWidth)
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range header {
		pdf.CellFormat(widths[i], pdfLineHeight, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], pdfLineHeight, fitText(pdf, tr(cell), widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// columnWidths shares the page width proportionally to the longest cell
// of each column.
func columnWidths(header []string, rows [][]string, total float64) []float64 {
	longest := make([]int, len(header))
	sum := 0
	for i, h := range header {
		longest[i] = len(h)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > longest[i] {
				longest[i] = len(row[i])
			}
		}
		sum += longest[i]
	}
	widths := make([]float64, len(header))
	for i := range header {
		if sum == 0 {
			widths[i] = total / float64(len(header))
			continue
		}
		widths[i] = total * float64(longest[i]) / float64(sum)
	}
	return widths
}

// fitText truncates already translated single-byte text to fit a cell.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > limit {
		text = text[:len(text)-1]
	}
	return text + "..."
}
