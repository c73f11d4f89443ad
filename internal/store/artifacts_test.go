package store

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestNewArtifactWriterBootstrapsDirectories(t *testing.T) {
	dir := t.TempDir()

	w, err := NewArtifactWriter(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, w.RunID())

	for _, sub := range []string{"data/raw", "data/enriched", "examples"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestWriteMergedRosterFieldsAbsent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir)
	require.NoError(t, err)

	merged := []MergedPerformance{
		{
			PlayerStatRecord: PlayerStatRecord{PlayerName: "A", GameID: "g1", Points: 20, MinutesPlayed: 30},
			Roster:           &RosterEntry{Name: "A", Height: "6-5", HeightInches: 77, Weight: 210, Experience: 3, Team: "LAL"},
		},
		{
			PlayerStatRecord: PlayerStatRecord{PlayerName: "B", GameID: "g1", Points: 10},
		},
	}

	require.NoError(t, w.WriteMerged(merged))

	records := readCSV(t, filepath.Join(dir, MergedCleanFile))
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, MergedHeader(), records[0])

	rowA := records[1]
	assert.Equal(t, "A", rowA[0])
	assert.Equal(t, "20", rowA[4])
	assert.Equal(t, "77", rowA[14])

	rowB := records[2]
	assert.Equal(t, "B", rowB[0])
	for _, col := range rowB[11:] {
		assert.Empty(t, col)
	}
}

func TestWriteEnrichedAppendsAnalysisColumns(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir)
	require.NoError(t, err)

	enriched := []EnrichedPerformance{
		{
			MergedPerformance: MergedPerformance{PlayerStatRecord: PlayerStatRecord{PlayerName: "A", Points: 20}},
			Analysis: AIAnalysis{
				RoleTag:       "STAR_PERFORMER",
				ScoutingBlurb: "Carried the offense.",
				ImpactScore:   91,
			},
		},
	}

	require.NoError(t, w.WriteEnriched(enriched))

	records := readCSV(t, filepath.Join(dir, EnrichedFile))
	require.Len(t, records, 2)

	header := records[0]
	n := len(header)
	assert.Equal(t, []string{"role_tag", "scouting_blurb", "impact_score"}, header[n-3:])

	row := records[1]
	assert.Equal(t, "STAR_PERFORMER", row[n-3])
	assert.Equal(t, "Carried the offense.", row[n-2])
	assert.Equal(t, "91", row[n-1])
}

func TestManifestRecordsArtifacts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteRawRoster([]RawRosterRow{{Name: "A", Team: "LAL"}}))
	require.NoError(t, w.WriteManifest())

	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)

	var manifest RunManifest
	require.NoError(t, json.Unmarshal(data, &manifest))

	assert.Equal(t, w.RunID(), manifest.RunID)
	require.Len(t, manifest.Artifacts, 1)
	assert.Equal(t, RosterRawFile, manifest.Artifacts[0].Path)
	assert.Equal(t, 1, manifest.Artifacts[0].Rows)
	assert.False(t, manifest.FinishedAt.IsZero())
}

func TestWriteGamesAndRawStats(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir)
	require.NoError(t, err)

	games := []GameRecord{{ExternalID: "g1", Season: 2025, HomeTeamID: 14, VisitorTeamID: 2, ExtractedTeamID: 14}}
	require.NoError(t, w.WriteGames(games))

	stats := []RawStatRow{{
		GameID: "g1", TeamID: 14,
		Player: StructuredPlayerRef("LeBron", "James", "F"),
		Points: "28", Minutes: "35:30",
	}}
	require.NoError(t, w.WriteRawStats(stats))

	gameRecords := readCSV(t, filepath.Join(dir, GamesRawFile))
	require.Len(t, gameRecords, 2)
	assert.Equal(t, "g1", gameRecords[1][0])

	statRecords := readCSV(t, filepath.Join(dir, PlayerStatsFile))
	require.Len(t, statRecords, 2)
	assert.Equal(t, "LeBron James", statRecords[1][2])
	assert.Equal(t, "35:30", statRecords[1][10])
}
