package bbref

import (
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/scoutline/internal/store"
)

// ParseHTML converts raw HTML to a goquery Document for parsing.
func ParseHTML(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParseRoster extracts roster rows from a rendered team page. The
// roster table carries data-stat attributes per cell, which is far
// more stable across layout changes than positional columns.
func ParseRoster(doc *goquery.Document, teamAbbr string) ([]store.RawRosterRow, error) {
	table := doc.Find("table#roster")
	if table.Length() == 0 {
		return nil, fmt.Errorf("no roster table found for %s", teamAbbr)
	}

	var rows []store.RawRosterRow
	table.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		row := parseRosterRow(tr, teamAbbr)
		if row != nil {
			rows = append(rows, *row)
		}
	})

	log.Printf("[bbref-parser] Parsed %d roster rows for %s", len(rows), teamAbbr)
	return rows, nil
}

// parseRosterRow extracts one player from a roster table row.
func parseRosterRow(tr *goquery.Selection, teamAbbr string) *store.RawRosterRow {
	name := cellText(tr, "player")
	if name == "" {
		return nil
	}

	return &store.RawRosterRow{
		Name:       name,
		Position:   cellText(tr, "pos"),
		Height:     cellText(tr, "height"),
		Weight:     cellText(tr, "weight"),
		Experience: cellText(tr, "years_experience"),
		Team:       teamAbbr,
	}
}

// cellText returns the trimmed text of the cell with the given
// data-stat attribute, checking both td and th cells.
func cellText(tr *goquery.Selection, stat string) string {
	sel := tr.Find(fmt.Sprintf(`td[data-stat=%q], th[data-stat=%q]`, stat, stat))
	return strings.TrimSpace(sel.First().Text())
}
