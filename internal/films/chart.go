package films

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	barRune             = '█'
	minBarWidth         = 10
	maxLabelWidth       = 24
	terminalWidthBackup = 80
)

// ChartLines renders entries as horizontal bars scaled to the largest
// count. Width is the total line width; non-positive widths use the
// terminal width.
func ChartLines(entries []Entry, width int) []string {
	if len(entries) == 0 {
		return nil
	}
	if width <= 0 {
		width = TerminalWidth()
	}

	labelWidth := 0
	maxCount := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Name); w > labelWidth {
			labelWidth = w
		}
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	// label, " │ ", bar, " " and the widest suffix "100.00% (NNN)".
	suffixWidth := len(fmt.Sprintf(" %s (%d)", FormatPercent(100), maxCount))
	barWidth := width - labelWidth - 3 - suffixWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		label := runewidth.FillRight(runewidth.Truncate(e.Name, labelWidth, "…"), labelWidth)
		n := 0
		if maxCount > 0 {
			n = e.Count * barWidth / maxCount
		}
		if n == 0 && e.Count > 0 {
			n = 1
		}
		bar := strings.Repeat(string(barRune), n)
		lines = append(lines, fmt.Sprintf("%s │ %s %s (%d)", label, bar, FormatPercent(e.Percentage), e.Count))
	}
	return lines
}

// RenderChart writes the bar chart to w.
func RenderChart(w io.Writer, entries []Entry, width int) error {
	for _, line := range ChartLines(entries, width) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth returns the width of stdout, or 80 when it is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
