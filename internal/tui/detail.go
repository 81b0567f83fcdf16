package tui

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/disneydash/internal/films"
	"github.com/verte-zerg/disneydash/internal/model"
)

type detailSection struct {
	label  string
	values []string
}

func renderDetail(c model.Character, width int) string {
	lines := []string{cardValueStyle.Render(wrapText(c.Name, width))}
	if c.SourceURL != "" {
		lines = append(lines, mutedStyle.Render(truncateLine(c.SourceURL, width)))
	}
	if c.ImageURL != "" {
		lines = append(lines, mutedStyle.Render(truncateLine("Image: "+c.ImageURL, width)))
	}
	sections := []detailSection{
		{label: "TV Shows", values: c.TVShows},
		{label: "Video Games", values: c.VideoGames},
		{label: "Films", values: c.Films},
		{label: "Short Films", values: c.ShortFilms},
		{label: "Park Attractions", values: c.ParkAttractions},
		{label: "Allies", values: c.Allies},
		{label: "Enemies", values: c.Enemies},
	}
	for _, s := range sections {
		if len(s.values) == 0 {
			continue
		}
		lines = append(lines, "", cardTitleStyle.Render(s.label), wrapText(strings.Join(s.values, ", "), width))
	}
	return strings.Join(lines, "\n")
}

func renderChart(records []model.Character, width int) string {
	entries := films.Aggregate(records)
	if len(entries) == 0 {
		return mutedStyle.Render("No film appearances on this page.")
	}
	lines := films.ChartLines(entries, width)
	lines = append(lines, "", headerStyle.Render(fmt.Sprintf("%d film appearances across %d characters", films.Total(entries), len(entries))))
	return strings.Join(lines, "\n")
}
