package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/disneydash/internal/model"
)

type tableLayout struct {
	width  int
	height int
}

type columnSpec struct {
	title string
	share int
	min   int
}

var characterColumns = []columnSpec{
	{title: "Name", share: 35, min: 12},
	{title: "TV Shows", share: 10, min: 8},
	{title: "Video Games", share: 10, min: 11},
	{title: "Allies", share: 20, min: 8},
	{title: "Enemies", share: 20, min: 8},
}

func newCharacterTable() table.Model {
	return table.New(
		table.WithColumns(buildColumns(80)),
		table.WithFocused(true),
		table.WithStyles(characterTableStyles()),
	)
}

func characterTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// buildColumns shares width between the columns, one cell of padding each.
func buildColumns(width int) []table.Column {
	total := 0
	for _, c := range characterColumns {
		total += c.share
	}
	avail := width - len(characterColumns)
	cols := make([]table.Column, len(characterColumns))
	for i, c := range characterColumns {
		w := maxInt(c.min, avail*c.share/total)
		cols[i] = table.Column{Title: c.title, Width: w}
	}
	return cols
}

// buildRows renders records in order and returns the id behind each row.
func buildRows(records []model.Character) ([]table.Row, []int) {
	rows := make([]table.Row, 0, len(records))
	ids := make([]int, 0, len(records))
	for _, rec := range records {
		rows = append(rows, table.Row{
			rec.Name,
			strconv.Itoa(len(rec.TVShows)),
			strconv.Itoa(len(rec.VideoGames)),
			joinOrDash(rec.Allies),
			joinOrDash(rec.Enemies),
		})
		ids = append(ids, rec.ID)
	}
	return rows, ids
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func (m *Model) setTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.layout.width == width && m.layout.height == viewportHeight {
		return
	}
	m.layout.width = width
	m.layout.height = viewportHeight
	m.table.SetColumns(buildColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(viewportHeight)
	viewportHeight = m.adjustTableHeight(height)
	if m.layout.height != viewportHeight {
		m.layout.height = viewportHeight
		m.table.SetHeight(viewportHeight)
	}
}

func (m *Model) adjustTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.table.Height()
	viewHeight := lipgloss.Height(m.table.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.table.SetHeight(height)
	viewHeight = lipgloss.Height(m.table.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}
