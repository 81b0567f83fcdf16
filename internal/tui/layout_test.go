package tui

import (
	"strings"
	"testing"
)

func TestFitLinesPadsAndClips(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	if out != "ab  \ncd  " {
		t.Fatalf("unexpected fit: %q", out)
	}
	out = fitLines("ab", 3, 2)
	if out != "ab \n   " {
		t.Fatalf("unexpected fit: %q", out)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("Mickey Mouse", 8); got != "Micke..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("Goofy", 10); got != "Goofy" {
		t.Fatalf("short lines must not change: %q", got)
	}
}

func TestModalWidth(t *testing.T) {
	if got := modalWidth(20); got != 40 {
		t.Fatalf("expected minimum width, got %d", got)
	}
	if got := modalWidth(200); got != 90 {
		t.Fatalf("expected maximum width, got %d", got)
	}
	if got := modalInnerWidth(200); got != 84 {
		t.Fatalf("unexpected inner width, got %d", got)
	}
}

func TestBuildRowsUsesDashForEmptyLists(t *testing.T) {
	rows, ids := buildRows(sampleRecords())
	if len(rows) != 3 || ids[0] != 2 {
		t.Fatalf("unexpected rows: %v %v", rows, ids)
	}
	if rows[0][1] != "1" || rows[0][3] != "-" || rows[1][3] != "Max" {
		t.Fatalf("unexpected row cells: %v", rows)
	}
}

func TestBuildColumnsRespectMinimums(t *testing.T) {
	cols := buildColumns(20)
	for i, c := range cols {
		if c.Width < characterColumns[i].min {
			t.Fatalf("column %s below minimum: %d", c.Title, c.Width)
		}
	}
	wide := buildColumns(200)
	if !strings.EqualFold(wide[0].Title, "Name") || wide[0].Width <= wide[1].Width {
		t.Fatalf("expected name column widest, got %+v", wide)
	}
}
