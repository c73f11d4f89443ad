// Package pipeline sequences the batch run: extract both sources,
// transform and merge, enrich, then sample. Stages run strictly one
// after another; a stage that degrades (empty or partial data) is a
// warning, and only failures the stages cannot classify abort the run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/scoutline/internal/enrich"
	"github.com/fortuna/scoutline/internal/examples"
	"github.com/fortuna/scoutline/internal/ingest/balldontlie"
	"github.com/fortuna/scoutline/internal/ingest/bbref"
	"github.com/fortuna/scoutline/internal/store"
	"github.com/fortuna/scoutline/internal/transform"
)

// Config holds pipeline configuration.
type Config struct {
	DataDir string
	Stats   *balldontlie.Config
	Roster  *bbref.Config
	Enrich  *enrich.Config
}

// DefaultConfig returns built-in defaults for a full run.
func DefaultConfig() *Config {
	return &Config{
		DataDir: ".",
		Stats:   balldontlie.DefaultConfig(),
		Roster:  bbref.DefaultConfig(),
		Enrich:  enrich.DefaultConfig(),
	}
}

// Summary reports what one run produced.
type Summary struct {
	RunID        string
	Games        int
	StatRows     int
	RosterRows   int
	MergedRows   int
	EnrichedRows int
	Duration     time.Duration
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	config         *Config
	statsIngester  *balldontlie.Ingester
	rosterIngester *bbref.Ingester
	enricher       *enrich.Enricher
	writer         *store.ArtifactWriter
	sampler        *examples.Sampler
}

// NewOrchestrator creates the pipeline, bootstrapping the output
// directory layout.
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	writer, err := store.NewArtifactWriter(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("prepare artifact directories: %w", err)
	}

	rosterIngester, err := bbref.NewIngester(config.Roster)
	if err != nil {
		return nil, fmt.Errorf("create roster extractor: %w", err)
	}

	return &Orchestrator{
		config:         config,
		statsIngester:  balldontlie.NewIngester(config.Stats),
		rosterIngester: rosterIngester,
		enricher:       enrich.NewEnricher(config.Enrich),
		writer:         writer,
		sampler:        examples.NewSampler(writer),
	}, nil
}

// Close releases extractor resources.
func (o *Orchestrator) Close() {
	o.rosterIngester.Close()
}

// Run executes the full pipeline once. Data flows strictly forward:
// raw tables → canonical merged table → enriched table → samples.
// Each stage's artifact is written once, after that stage's full
// table is assembled.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   Scoutline Data Pipeline              ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Run ID: %s", o.writer.RunID())

	// Extract
	games, rawStats := o.statsIngester.Extract(ctx)
	rawRoster := o.rosterIngester.Extract(ctx)

	if err := o.writer.WriteGames(games); err != nil {
		return nil, err
	}
	if err := o.writer.WriteRawStats(rawStats); err != nil {
		return nil, err
	}
	if err := o.writer.WriteRawRoster(rawRoster); err != nil {
		return nil, err
	}

	// Transform
	log.Println("[pipeline] Starting data cleaning and transformation...")
	stats := transform.CleanStats(rawStats)
	roster := transform.CleanRoster(rawRoster)
	merged := transform.Merge(stats, roster)

	if err := o.writer.WriteMerged(merged); err != nil {
		return nil, err
	}

	// Enrich
	enriched := o.enricher.EnrichAll(ctx, merged)

	if err := o.writer.WriteEnriched(enriched); err != nil {
		return nil, err
	}

	// Sample
	if err := o.sampler.CreateExamples(merged, enriched); err != nil {
		return nil, err
	}

	if err := o.writer.WriteManifest(); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:        o.writer.RunID(),
		Games:        len(games),
		StatRows:     len(rawStats),
		RosterRows:   len(rawRoster),
		MergedRows:   len(merged),
		EnrichedRows: len(enriched),
		Duration:     time.Since(start),
	}

	log.Printf("[pipeline] ✓ Pipeline completed in %v (%d enriched records)", summary.Duration.Round(time.Millisecond), summary.EnrichedRows)
	return summary, nil
}
