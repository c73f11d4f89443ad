package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fortuna/scoutline/internal/store"
)

func TestParseStat(t *testing.T) {
	assert.Equal(t, 20.0, ParseStat("20"))
	assert.Equal(t, 7.5, ParseStat("7.5"))
	assert.Equal(t, 3.0, ParseStat(" 3 "))
	assert.Equal(t, 0.0, ParseStat(""))
	assert.Equal(t, 0.0, ParseStat("bad"))
	assert.Equal(t, 0.0, ParseStat("-4"))

	// ParseFloat happily parses these; cleaning must not let them through.
	assert.Equal(t, 0.0, ParseStat("NaN"))
	assert.Equal(t, 0.0, ParseStat("nan"))
	assert.Equal(t, 0.0, ParseStat("+Inf"))
	assert.Equal(t, 0.0, ParseStat("-Inf"))
}

func TestParseMinutes(t *testing.T) {
	assert.Equal(t, 5.5, ParseMinutes("5:30"))
	assert.Equal(t, 12.0, ParseMinutes("12"))
	assert.Equal(t, 0.0, ParseMinutes("bad"))
	assert.Equal(t, 0.0, ParseMinutes(""))
	assert.Equal(t, 30.0, ParseMinutes("30:00"))
	assert.Equal(t, 0.0, ParseMinutes(":30"))
	assert.Equal(t, 0.0, ParseMinutes("12:xx"))
	assert.Equal(t, 0.0, ParseMinutes("NaN"))
	assert.Equal(t, 0.0, ParseMinutes("Inf"))
	assert.InDelta(t, 34.75, ParseMinutes("34:45"), 1e-9)
}

func TestHeightToInches(t *testing.T) {
	assert.Equal(t, 75, HeightToInches("6-3"))
	assert.Equal(t, 77, HeightToInches("6-5"))
	assert.Equal(t, 84, HeightToInches("7-0"))
	assert.Equal(t, 0, HeightToInches("unknown"))
	assert.Equal(t, 0, HeightToInches(""))
	assert.Equal(t, 0, HeightToInches("6-x"))
}

func TestCleanStatsResolvesPlayerVariants(t *testing.T) {
	raw := []store.RawStatRow{
		{
			GameID:  "101",
			TeamID:  14,
			Player:  store.StructuredPlayerRef("LeBron", "James", "F"),
			Points:  "28",
			Minutes: "35:30",
		},
		{
			GameID: "101",
			TeamID: 14,
			Player: store.PlainPlayerRef("Austin Reaves"),
			Points: "15",
		},
		{
			GameID: "101",
			TeamID: 14,
			Player: store.StructuredPlayerRef("", "Vincent", ""),
		},
	}

	cleaned := CleanStats(raw)
	assert.Len(t, cleaned, 3)

	assert.Equal(t, "LeBron James", cleaned[0].PlayerName)
	assert.Equal(t, "F", cleaned[0].PlayerPosition)
	assert.Equal(t, 28.0, cleaned[0].Points)
	assert.InDelta(t, 35.5, cleaned[0].MinutesPlayed, 1e-9)

	assert.Equal(t, "Austin Reaves", cleaned[1].PlayerName)
	assert.Equal(t, "Unknown", cleaned[1].PlayerPosition)
	assert.Equal(t, 0.0, cleaned[1].MinutesPlayed)

	// Missing name parts are treated as empty strings and trimmed.
	assert.Equal(t, "Vincent", cleaned[2].PlayerName)
	assert.Equal(t, "Unknown", cleaned[2].PlayerPosition)
}

func TestCleanStatsNoMissingValuesSurvive(t *testing.T) {
	raw := []store.RawStatRow{{Player: store.PlainPlayerRef("Empty Row")}}

	cleaned := CleanStats(raw)
	assert.Len(t, cleaned, 1)

	row := cleaned[0]
	for _, v := range []float64{row.Points, row.Rebounds, row.Assists, row.Steals, row.Blocks, row.Turnovers, row.MinutesPlayed} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Equal(t, 0.0, v)
	}
}

func TestCleanRoster(t *testing.T) {
	raw := []store.RawRosterRow{
		{Name: "LeBron James", Position: "F", Height: "6-9", Weight: "250", Experience: "21", Team: "LAL"},
		{Name: "Rookie Guy", Position: "G", Height: "bad", Weight: "oops", Experience: "R", Team: "BOS"},
	}

	cleaned := CleanRoster(raw)
	assert.Len(t, cleaned, 2)

	assert.Equal(t, 81, cleaned[0].HeightInches)
	assert.Equal(t, "6-9", cleaned[0].Height)
	assert.Equal(t, 250.0, cleaned[0].Weight)
	assert.Equal(t, 21.0, cleaned[0].Experience)

	assert.Equal(t, 0, cleaned[1].HeightInches)
	assert.Equal(t, 0.0, cleaned[1].Weight)
	assert.Equal(t, 0.0, cleaned[1].Experience)
}
