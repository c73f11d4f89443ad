package enrich

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/scoutline/internal/store"
)

// Enricher runs the analyzer over a merged table, one row at a time,
// building a new enriched record per input row. A fixed inter-call
// delay paces requests against the external service's usage limits.
type Enricher struct {
	analyzer *Analyzer
	delay    time.Duration
}

// NewEnricher creates an enricher from config.
func NewEnricher(config *Config) *Enricher {
	if config == nil {
		config = DefaultConfig()
	}
	return &Enricher{
		analyzer: NewAnalyzer(config),
		delay:    config.RequestDelay,
	}
}

// NewEnricherWithAnalyzer creates an enricher around an existing
// analyzer with no pacing delay.
func NewEnricherWithAnalyzer(analyzer *Analyzer) *Enricher {
	return &Enricher{analyzer: analyzer}
}

// EnrichAll analyzes every merged row sequentially. Each row completes
// fully, including its outbound call, before the next begins; per-row
// failures surface only as the default analysis on that row.
func (e *Enricher) EnrichAll(ctx context.Context, rows []store.MergedPerformance) []store.EnrichedPerformance {
	if len(rows) == 0 {
		log.Println("[enrich] ⚠️  No data to enrich")
		return []store.EnrichedPerformance{}
	}

	log.Printf("[enrich] Starting AI enrichment for %d records...", len(rows))

	enriched := make([]store.EnrichedPerformance, 0, len(rows))
	for idx, row := range rows {
		analysis := e.analyzer.Analyze(ctx, row)
		enriched = append(enriched, store.EnrichedPerformance{
			MergedPerformance: row,
			Analysis:          analysis,
		})

		if e.delay > 0 && idx < len(rows)-1 {
			select {
			case <-time.After(e.delay):
			case <-ctx.Done():
			}
		}
	}

	log.Printf("[enrich] ✓ AI enrichment complete: %d records processed", len(enriched))
	return enriched
}
