// Package films computes how the characters of one page share their
// film appearances and renders that breakdown as text.
package films

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/disneydash/internal/model"
)

// Header is the column header of exported participation rows.
var Header = []string{"Name", "Count", "Percentage", "Films"}

// Entry is one character's share of film appearances on a page.
type Entry struct {
	Name       string
	Count      int
	Percentage float64
	Films      []string
}

// Aggregate groups records by name, skipping characters without films.
// Entries keep the order in which names first appear.
func Aggregate(records []model.Character) []Entry {
	index := make(map[string]int)
	entries := make([]Entry, 0, len(records))
	total := 0
	for _, rec := range records {
		if len(rec.Films) == 0 {
			continue
		}
		i, ok := index[rec.Name]
		if !ok {
			i = len(entries)
			index[rec.Name] = i
			entries = append(entries, Entry{Name: rec.Name})
		}
		entries[i].Count += len(rec.Films)
		entries[i].Films = append(entries[i].Films, rec.Films...)
		total += len(rec.Films)
	}
	for i := range entries {
		entries[i].Percentage = float64(entries[i].Count) * 100 / float64(total)
	}
	return entries
}

// Total returns the number of film appearances across entries.
func Total(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}

// Rows formats entries for export, matching Header.
func Rows(entries []Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Name,
			strconv.Itoa(e.Count),
			FormatPercent(e.Percentage),
			strings.Join(e.Films, ", "),
		})
	}
	return rows
}

// FormatPercent renders a share with two decimals, e.g. "12.34%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// Title names the participation view of a page.
func Title(page int) string {
	return fmt.Sprintf("Films Participation - Page %d", page)
}

// FileBase is the export file name without extension.
func FileBase(page int) string {
	return Title(page)
}
