package bbref

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/scoutline/internal/store"
)

// Config holds roster extraction settings.
type Config struct {
	BaseURL           string
	TeamAbbrs         []string // Teams to scrape rosters for
	Season            int      // Season year of the team pages
	PauseBetweenTeams time.Duration
}

// DefaultConfig returns default roster extraction settings.
func DefaultConfig() *Config {
	return &Config{
		TeamAbbrs:         []string{"LAL", "BOS", "ATL"},
		Season:            2025,
		PauseBetweenTeams: time.Second,
	}
}

// Ingester scrapes team roster tables. Failures are team-scoped: a
// page that errors is skipped and extraction continues.
type Ingester struct {
	client *Client
	config *Config
}

// NewIngester creates a roster extractor. The caller owns Close.
func NewIngester(config *Config) (*Ingester, error) {
	if config == nil {
		config = DefaultConfig()
	}

	client, err := New(config.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Ingester{
		client: client,
		config: config,
	}, nil
}

// Close releases scraper resources.
func (i *Ingester) Close() {
	i.client.Close()
}

// Extract scrapes the roster table for each configured team.
func (i *Ingester) Extract(ctx context.Context) []store.RawRosterRow {
	log.Println("[bbref-ingest] Starting roster extraction...")

	var allRows []store.RawRosterRow
	for _, abbr := range i.config.TeamAbbrs {
		log.Printf("[bbref-ingest] Scraping roster for %s (%d)...", abbr, i.config.Season)

		html, err := i.client.FetchRosterPage(ctx, abbr, i.config.Season)
		if err != nil {
			log.Printf("[bbref-ingest] ⚠️  Error fetching %s: %v (skipping)", abbr, err)
			continue
		}

		doc, err := ParseHTML(html)
		if err != nil {
			log.Printf("[bbref-ingest] ⚠️  Error parsing %s: %v (skipping)", abbr, err)
			continue
		}

		rows, err := ParseRoster(doc, abbr)
		if err != nil {
			log.Printf("[bbref-ingest] ⚠️  %v (skipping)", err)
			continue
		}

		allRows = append(allRows, rows...)

		if i.config.PauseBetweenTeams > 0 {
			select {
			case <-time.After(i.config.PauseBetweenTeams):
			case <-ctx.Done():
			}
		}
	}

	log.Printf("[bbref-ingest] ✓ Extracted roster data for %d players", len(allRows))
	return allRows
}
