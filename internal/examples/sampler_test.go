package examples

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/scoutline/internal/store"
)

func buildTables(n int) ([]store.MergedPerformance, []store.EnrichedPerformance) {
	before := make([]store.MergedPerformance, 0, n)
	after := make([]store.EnrichedPerformance, 0, n)
	for i := 0; i < n; i++ {
		m := store.MergedPerformance{
			PlayerStatRecord: store.PlayerStatRecord{
				PlayerName: string(rune('A' + i)),
				Points:     float64(10 + i),
				Assists:    float64(i),
				Rebounds:   float64(5 + i),
			},
		}
		before = append(before, m)
		after = append(after, store.EnrichedPerformance{
			MergedPerformance: m,
			Analysis:          store.AIAnalysis{RoleTag: "ROLE_PLAYER", ScoutingBlurb: "ok", ImpactScore: 50},
		})
	}
	return before, after
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCreateExamplesCapsAtFive(t *testing.T) {
	dir := t.TempDir()
	writer, err := store.NewArtifactWriter(dir)
	require.NoError(t, err)

	before, after := buildTables(8)
	require.NoError(t, NewSampler(writer).CreateExamples(before, after))

	beforeRecords := readCSV(t, filepath.Join(dir, store.ExamplesDir, BeforeFile))
	assert.Len(t, beforeRecords, 6) // header + 5 rows

	afterRecords := readCSV(t, filepath.Join(dir, store.ExamplesDir, AfterFile))
	assert.Len(t, afterRecords, 6)

	comparison := readCSV(t, filepath.Join(dir, store.ExamplesDir, ComparisonFile))
	require.Len(t, comparison, 6)
	assert.Equal(t, []string{"player_name", "points", "assists", "rebounds", "ai_role_tag", "ai_scouting_blurb", "ai_impact_score"}, comparison[0])
	assert.Equal(t, []string{"A", "10", "0", "5", "ROLE_PLAYER", "ok", "50"}, comparison[1])
}

func TestCreateExamplesShortTables(t *testing.T) {
	dir := t.TempDir()
	writer, err := store.NewArtifactWriter(dir)
	require.NoError(t, err)

	before, after := buildTables(2)
	require.NoError(t, NewSampler(writer).CreateExamples(before, after))

	records := readCSV(t, filepath.Join(dir, store.ExamplesDir, ComparisonFile))
	assert.Len(t, records, 3)
}

func TestCreateExamplesEmptyInputEmitsNothing(t *testing.T) {
	dir := t.TempDir()
	writer, err := store.NewArtifactWriter(dir)
	require.NoError(t, err)

	before, _ := buildTables(3)
	require.NoError(t, NewSampler(writer).CreateExamples(before, nil))

	for _, name := range []string{BeforeFile, AfterFile, ComparisonFile} {
		_, err := os.Stat(filepath.Join(dir, store.ExamplesDir, name))
		assert.True(t, os.IsNotExist(err), "%s should not exist", name)
	}
}
