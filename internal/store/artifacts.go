package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Artifact file names, relative to the base data directory.
const (
	GamesRawFile    = "data/raw/games_raw.csv"
	PlayerStatsFile = "data/raw/player_stats_raw.csv"
	RosterRawFile   = "data/raw/roster_raw.csv"
	MergedCleanFile = "data/raw/merged_clean.csv"
	EnrichedFile    = "data/enriched/nba_data_enriched.csv"
	ManifestFile    = "data/run_manifest.json"
	ExamplesDir     = "examples"
)

// ArtifactWriter persists pipeline tables as flat CSV files, one write
// per stage after that stage's full table is assembled. Each run gets
// a manifest recording what was written and how many rows.
type ArtifactWriter struct {
	baseDir  string
	manifest *RunManifest
}

// RunManifest versions one pipeline run's artifact set.
type RunManifest struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Artifacts  []ArtifactInfo `json:"artifacts"`
}

// ArtifactInfo records one persisted table.
type ArtifactInfo struct {
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	WrittenAt time.Time `json:"written_at"`
}

// NewArtifactWriter creates the output directory layout and starts a
// fresh run manifest.
func NewArtifactWriter(baseDir string) (*ArtifactWriter, error) {
	for _, dir := range []string{"data/raw", "data/enriched", ExamplesDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return &ArtifactWriter{
		baseDir: baseDir,
		manifest: &RunManifest{
			RunID:     uuid.NewString(),
			StartedAt: time.Now().UTC(),
		},
	}, nil
}

// RunID returns the identifier assigned to this run's artifact set.
func (w *ArtifactWriter) RunID() string {
	return w.manifest.RunID
}

// WriteGames persists the raw game table.
func (w *ArtifactWriter) WriteGames(games []GameRecord) error {
	header := []string{"external_id", "date", "season", "status", "home_team_id", "visitor_team_id", "home_score", "visitor_score", "extracted_team_id"}
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			g.ExternalID, g.Date, strconv.Itoa(g.Season), g.Status,
			strconv.Itoa(g.HomeTeamID), strconv.Itoa(g.VisitorTeamID),
			strconv.Itoa(g.HomeScore), strconv.Itoa(g.VisitorScore),
			strconv.Itoa(g.ExtractedTeamID),
		})
	}
	return w.WriteCSV(GamesRawFile, header, rows)
}

// WriteRawStats persists the raw per-game statistics table.
func (w *ArtifactWriter) WriteRawStats(stats []RawStatRow) error {
	header := []string{"game_id", "team_id", "player_name", "player_position", "pts", "reb", "ast", "stl", "blk", "turnover", "min"}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.GameID, strconv.Itoa(s.TeamID),
			s.Player.DisplayName(), s.Player.DisplayPosition(),
			s.Points, s.Rebounds, s.Assists, s.Steals, s.Blocks, s.Turnovers, s.Minutes,
		})
	}
	return w.WriteCSV(PlayerStatsFile, header, rows)
}

// WriteRawRoster persists the raw roster table.
func (w *ArtifactWriter) WriteRawRoster(roster []RawRosterRow) error {
	header := []string{"name", "position", "height", "weight", "experience", "team"}
	rows := make([][]string, 0, len(roster))
	for _, r := range roster {
		rows = append(rows, []string{r.Name, r.Position, r.Height, r.Weight, r.Experience, r.Team})
	}
	return w.WriteCSV(RosterRawFile, header, rows)
}

// WriteMerged persists the merged/cleaned table.
func (w *ArtifactWriter) WriteMerged(merged []MergedPerformance) error {
	rows := make([][]string, 0, len(merged))
	for _, m := range merged {
		rows = append(rows, MergedColumns(m))
	}
	return w.WriteCSV(MergedCleanFile, MergedHeader(), rows)
}

// WriteEnriched persists the final enriched table: the merged columns
// plus the three analysis fields.
func (w *ArtifactWriter) WriteEnriched(enriched []EnrichedPerformance) error {
	header := append(MergedHeader(), "role_tag", "scouting_blurb", "impact_score")
	rows := make([][]string, 0, len(enriched))
	for _, e := range enriched {
		row := MergedColumns(e.MergedPerformance)
		row = append(row, e.Analysis.RoleTag, e.Analysis.ScoutingBlurb, strconv.Itoa(e.Analysis.ImpactScore))
		rows = append(rows, row)
	}
	return w.WriteCSV(EnrichedFile, header, rows)
}

// WriteManifest finalizes and persists the run manifest.
func (w *ArtifactWriter) WriteManifest() error {
	w.manifest.FinishedAt = time.Now().UTC()

	data, err := json.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	path := filepath.Join(w.baseDir, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	log.Printf("[store] ✓ Wrote run manifest %s (run %s)", path, w.manifest.RunID)
	return nil
}

// WriteCSV writes one table (header row + one row per record) to a
// path relative to the base directory and records it in the manifest.
func (w *ArtifactWriter) WriteCSV(relPath string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, relPath)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", relPath, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header for %s: %w", relPath, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", relPath, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", relPath, err)
	}

	w.manifest.Artifacts = append(w.manifest.Artifacts, ArtifactInfo{
		Path:      relPath,
		Rows:      len(rows),
		WrittenAt: time.Now().UTC(),
	})

	log.Printf("[store] ✓ Wrote %s (%d rows)", relPath, len(rows))
	return nil
}

// MergedHeader returns the column set of the merged/cleaned table.
func MergedHeader() []string {
	return []string{
		"player_name", "player_position", "game_id", "team_id",
		"pts", "reb", "ast", "stl", "blk", "turnover", "minutes_played",
		"name", "position", "height", "height_inches", "weight", "experience", "team",
	}
}

// MergedColumns renders one merged row in MergedHeader order.
func MergedColumns(m MergedPerformance) []string {
	row := []string{
		m.PlayerName, m.PlayerPosition, m.GameID, strconv.Itoa(m.TeamID),
		formatFloat(m.Points), formatFloat(m.Rebounds), formatFloat(m.Assists),
		formatFloat(m.Steals), formatFloat(m.Blocks), formatFloat(m.Turnovers),
		formatFloat(m.MinutesPlayed),
	}

	// Unmatched roster fields stay absent (empty columns), never drop the row.
	if m.Roster == nil {
		return append(row, "", "", "", "", "", "", "")
	}

	r := m.Roster
	return append(row,
		r.Name, r.Position, r.Height, strconv.Itoa(r.HeightInches),
		formatFloat(r.Weight), formatFloat(r.Experience), r.Team,
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
