package films

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/disneydash/internal/model"
)

func sample() []model.Character {
	return []model.Character{
		{ID: 1, Name: "Mickey", Films: []string{"Fantasia", "Fun and Fancy Free", "Fantasia 2000"}},
		{ID: 2, Name: "Pete"},
		{ID: 3, Name: "Goofy", Films: []string{"A Goofy Movie"}},
		{ID: 4, Name: "Mickey", Films: []string{"Mickey's Christmas Carol"}},
	}
}

func TestAggregate(t *testing.T) {
	entries := Aggregate(sample())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Mickey" || entries[0].Count != 4 || len(entries[0].Films) != 4 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Name != "Goofy" || entries[1].Count != 1 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if entries[0].Percentage != 80 || entries[1].Percentage != 20 {
		t.Fatalf("unexpected percentages: %v %v", entries[0].Percentage, entries[1].Percentage)
	}
	if Total(entries) != 5 {
		t.Fatalf("expected total 5, got %d", Total(entries))
	}
}

func TestAggregateWithoutFilms(t *testing.T) {
	if got := Aggregate([]model.Character{{Name: "Pete"}}); len(got) != 0 {
		t.Fatalf("expected no entries, got %+v", got)
	}
}

func TestRows(t *testing.T) {
	rows := Rows([]Entry{{Name: "Goofy", Count: 1, Percentage: 100.0 / 3, Films: []string{"A", "B"}}})
	want := []string{"Goofy", "1", "33.33%", "A, B"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Fatalf("unexpected row: %q", rows[0])
		}
	}
}

func TestFileBase(t *testing.T) {
	if got := FileBase(3); got != "Films Participation - Page 3" {
		t.Fatalf("unexpected file base: %q", got)
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	entries := []Entry{
		{Name: "Mickey", Count: 12, Percentage: 92.3077, Films: []string{"Fantasia"}},
		{Name: "Abu", Count: 1, Percentage: 7.6923, Films: []string{"Aladdin"}},
	}
	if err := RenderTable(&buf, entries); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Name    Count  Percentage  Films" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Mickey     12      92.31%  Fantasia" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Abu         1       7.69%  Aladdin" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestChartLinesScaleToLargest(t *testing.T) {
	entries := []Entry{
		{Name: "Mickey", Count: 4, Percentage: 80},
		{Name: "Goofy", Count: 1, Percentage: 20},
	}
	lines := ChartLines(entries, 60)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	long := strings.Count(lines[0], string(barRune))
	short := strings.Count(lines[1], string(barRune))
	if long <= short || short < 1 {
		t.Fatalf("unexpected bar lengths: %d %d", long, short)
	}
	if !strings.HasPrefix(lines[1], "Goofy  │ ") {
		t.Fatalf("expected padded label, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[0], "80.00% (4)") {
		t.Fatalf("unexpected suffix: %q", lines[0])
	}
}

func TestChartLinesMinimumWidth(t *testing.T) {
	lines := ChartLines([]Entry{{Name: "Stitch", Count: 2, Percentage: 100}}, 1)
	if got := strings.Count(lines[0], string(barRune)); got != minBarWidth {
		t.Fatalf("expected min bar width %d, got %d", minBarWidth, got)
	}
}

func TestChartLinesEmpty(t *testing.T) {
	if lines := ChartLines(nil, 80); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
