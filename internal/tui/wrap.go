package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type textRune struct {
	s       string
	width   int
	isSpace bool
}

func toTextRunes(s string) []textRune {
	out := make([]textRune, 0, len(s))
	for _, r := range s {
		out = append(out, textRune{
			s:       string(r),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

// wrapText breaks s at spaces so no line is wider than width. Words
// wider than width are split. Existing newlines are kept.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	paragraphs := strings.Split(s, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapTextRunes(toTextRunes(p), width)
	}
	return strings.Join(paragraphs, "\n")
}

func renderTextRunes(runes []textRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapTextRunes(runes []textRune, width int) string {
	var out strings.Builder
	line := make([]textRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			switch {
			case item.isSpace:
				out.WriteString(renderTextRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				i++
			case lastSpaceIdx >= 0:
				out.WriteString(renderTextRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]textRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			default:
				out.WriteString(renderTextRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		if item.isSpace && len(line) == 0 && out.Len() > 0 {
			i++
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderTextRunes(line))
	return out.String()
}

func lineWidthOf(line []textRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []textRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
