package balldontlie

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/scoutline/internal/store"
)

// Config holds extraction settings for the stats API source.
type Config struct {
	BaseURL           string
	TeamIDs           []int         // Default: Lakers, Celtics, Hawks
	LastNGames        int           // Games per team to fetch
	LookbackDays      int           // Date window ending today
	StatsPerPage      int           // Box score page size per game
	PauseBetweenGames time.Duration // Pacing between per-game stat calls
	PauseBetweenTeams time.Duration // Pacing between teams
}

// DefaultConfig returns default extraction settings.
func DefaultConfig() *Config {
	return &Config{
		TeamIDs:           []int{14, 2, 1}, // Lakers, Celtics, Hawks
		LastNGames:        10,
		LookbackDays:      30,
		StatsPerPage:      100,
		PauseBetweenGames: 500 * time.Millisecond,
		PauseBetweenTeams: time.Second,
	}
}

// Ingester extracts games and per-player box score lines from the
// stats API. Failures are source-scoped: a team that errors is skipped
// and the rest of the extraction continues.
type Ingester struct {
	client *Client
	config *Config
}

// NewIngester creates a stats extractor.
func NewIngester(config *Config) *Ingester {
	if config == nil {
		config = DefaultConfig()
	}

	return &Ingester{
		client: New(config.BaseURL),
		config: config,
	}
}

// Extract fetches recent games for the configured teams and the box
// score lines for each game. Output is raw, source-shaped data; the
// transform stage owns all cleaning.
func (i *Ingester) Extract(ctx context.Context) ([]store.GameRecord, []store.RawStatRow) {
	log.Println("[bdl-ingest] Starting stats API extraction...")

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -i.config.LookbackDays)

	var allGames []store.GameRecord
	var allStats []store.RawStatRow

	for _, teamID := range i.config.TeamIDs {
		log.Printf("[bdl-ingest] Fetching games for team %d...", teamID)

		gamesData, err := i.client.FetchGames(ctx, teamID, startDate, endDate, i.config.LastNGames)
		if err != nil {
			log.Printf("[bdl-ingest] ⚠️  Error fetching data for team %d: %v (skipping)", teamID, err)
			continue
		}

		games := ParseGames(gamesData, teamID)
		allGames = append(allGames, games...)

		for _, game := range games {
			i.pause(ctx, i.config.PauseBetweenGames)

			statsData, err := i.client.FetchStats(ctx, game.ExternalID, i.config.StatsPerPage)
			if err != nil {
				log.Printf("[bdl-ingest] ⚠️  Error fetching stats for game %s: %v (skipping)", game.ExternalID, err)
				continue
			}

			allStats = append(allStats, ParseStats(statsData, teamID)...)
		}

		i.pause(ctx, i.config.PauseBetweenTeams)
	}

	log.Printf("[bdl-ingest] ✓ Extracted %d games and %d player stat records", len(allGames), len(allStats))
	return allGames, allStats
}

// pause sleeps for the configured interval or until the context ends.
func (i *Ingester) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
