// Package examples emits small before/after comparison artifacts that
// illustrate what enrichment added to the merged table.
package examples

import (
	"log"
	"path/filepath"
	"strconv"

	"github.com/fortuna/scoutline/internal/store"
)

const (
	// SampleSize caps how many rows each sample table carries
	SampleSize = 5

	BeforeFile     = "before_ai_enhancement.csv"
	AfterFile      = "after_ai_enhancement.csv"
	ComparisonFile = "ai_enhancement_comparison.csv"
)

// Sampler writes head samples of the pre- and post-enrichment tables
// plus a row-aligned comparison projection.
type Sampler struct {
	writer *store.ArtifactWriter
}

// NewSampler creates a sampler writing through the artifact writer.
func NewSampler(writer *store.ArtifactWriter) *Sampler {
	return &Sampler{writer: writer}
}

// CreateExamples emits the first min(SampleSize, len(before),
// len(after)) rows of each table. Empty input produces nothing and a
// non-fatal warning.
func (s *Sampler) CreateExamples(before []store.MergedPerformance, after []store.EnrichedPerformance) error {
	log.Println("[examples] Creating before and after examples...")

	sampleSize := SampleSize
	if len(before) < sampleSize {
		sampleSize = len(before)
	}
	if len(after) < sampleSize {
		sampleSize = len(after)
	}
	if sampleSize <= 0 {
		log.Println("[examples] ⚠️  Not enough rows to create examples")
		return nil
	}

	beforeRows := make([][]string, 0, sampleSize)
	for _, m := range before[:sampleSize] {
		beforeRows = append(beforeRows, store.MergedColumns(m))
	}
	if err := s.writer.WriteCSV(filepath.Join(store.ExamplesDir, BeforeFile), store.MergedHeader(), beforeRows); err != nil {
		return err
	}

	afterHeader := append(store.MergedHeader(), "role_tag", "scouting_blurb", "impact_score")
	afterRows := make([][]string, 0, sampleSize)
	for _, e := range after[:sampleSize] {
		row := store.MergedColumns(e.MergedPerformance)
		row = append(row, e.Analysis.RoleTag, e.Analysis.ScoutingBlurb, strconv.Itoa(e.Analysis.ImpactScore))
		afterRows = append(afterRows, row)
	}
	if err := s.writer.WriteCSV(filepath.Join(store.ExamplesDir, AfterFile), afterHeader, afterRows); err != nil {
		return err
	}

	return s.writeComparison(before[:sampleSize], after[:sampleSize])
}

// writeComparison projects player identity, the three core raw stats,
// and the three analysis fields side by side.
func (s *Sampler) writeComparison(before []store.MergedPerformance, after []store.EnrichedPerformance) error {
	header := []string{"player_name", "points", "assists", "rebounds", "ai_role_tag", "ai_scouting_blurb", "ai_impact_score"}

	rows := make([][]string, 0, len(before))
	for idx := range before {
		b := before[idx]
		a := after[idx]
		rows = append(rows, []string{
			b.PlayerName,
			formatFloat(b.Points),
			formatFloat(b.Assists),
			formatFloat(b.Rebounds),
			a.Analysis.RoleTag,
			a.Analysis.ScoutingBlurb,
			strconv.Itoa(a.Analysis.ImpactScore),
		})
	}

	return s.writer.WriteCSV(filepath.Join(store.ExamplesDir, ComparisonFile), header, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
