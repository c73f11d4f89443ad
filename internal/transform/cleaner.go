// Package transform normalizes raw source-shaped rows into the
// canonical schema and joins statistics onto roster data. Cleaning is
// field-scoped: a bad value coerces to its documented default and
// never fails the row.
package transform

import (
	"math"
	"strconv"
	"strings"

	"github.com/fortuna/scoutline/internal/store"
)

// CleanStats converts raw stat rows to cleaned records. Every numeric
// field is present afterwards; unparsable or missing input yields 0.
func CleanStats(raw []store.RawStatRow) []store.PlayerStatRecord {
	cleaned := make([]store.PlayerStatRecord, 0, len(raw))
	for _, row := range raw {
		cleaned = append(cleaned, store.PlayerStatRecord{
			PlayerName:     row.Player.DisplayName(),
			PlayerPosition: row.Player.DisplayPosition(),
			GameID:         row.GameID,
			TeamID:         row.TeamID,
			Points:         ParseStat(row.Points),
			Rebounds:       ParseStat(row.Rebounds),
			Assists:        ParseStat(row.Assists),
			Steals:         ParseStat(row.Steals),
			Blocks:         ParseStat(row.Blocks),
			Turnovers:      ParseStat(row.Turnovers),
			MinutesPlayed:  ParseMinutes(row.Minutes),
		})
	}
	return cleaned
}

// CleanRoster converts raw roster rows to cleaned entries.
func CleanRoster(raw []store.RawRosterRow) []store.RosterEntry {
	cleaned := make([]store.RosterEntry, 0, len(raw))
	for _, row := range raw {
		cleaned = append(cleaned, store.RosterEntry{
			Name:         row.Name,
			Position:     row.Position,
			Height:       row.Height,
			HeightInches: HeightToInches(row.Height),
			Weight:       ParseStat(row.Weight),
			Experience:   ParseStat(row.Experience),
			Team:         row.Team,
		})
	}
	return cleaned
}

// ParseStat coerces a counting stat token to a non-negative finite
// number. Missing or unparsable input yields 0. ParseFloat accepts
// "NaN" and "Inf" tokens, so those are rejected explicitly.
func ParseStat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ParseMinutes parses a minutes token that is either a decimal number
// or a "minutes:seconds" string. Any failure yields 0.0.
func ParseMinutes(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		mins, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0.0
		}
		secs, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0.0
		}
		if mins < 0 || secs < 0 {
			return 0.0
		}
		return float64(mins) + float64(secs)/60.0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0.0
	}
	return f
}

// HeightToInches converts a "feet-inches" token to total inches. Any
// structural mismatch (no separator, non-integer parts) yields 0.
func HeightToInches(s string) int {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0
	}

	feet, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	inches, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	return feet*12 + inches
}
