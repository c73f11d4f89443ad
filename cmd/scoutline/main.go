package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortuna/scoutline/internal/enrich"
	"github.com/fortuna/scoutline/internal/ingest/balldontlie"
	"github.com/fortuna/scoutline/internal/ingest/bbref"
	"github.com/fortuna/scoutline/internal/pipeline"
)

const (
	serviceName    = "scoutline"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NBA Performance Enrichment Pipeline", serviceName, serviceVersion)

	// Load .env if present (non-fatal - env vars may be set directly)
	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded .env file")
	}

	config := loadConfig()

	orch, err := pipeline.NewOrchestrator(config)
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}
	defer orch.Close()

	summary, err := orch.Run(context.Background())
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Printf("✓ Run %s finished: %d games, %d stat rows, %d roster rows → %d enriched records",
		summary.RunID, summary.Games, summary.StatRows, summary.RosterRows, summary.EnrichedRows)
}

func loadConfig() *pipeline.Config {
	statsConfig := balldontlie.DefaultConfig()
	statsConfig.BaseURL = getEnv("BDL_API_BASE", "")
	statsConfig.TeamIDs = getEnvInts("TEAM_IDS", statsConfig.TeamIDs)
	statsConfig.LastNGames = getEnvInt("LAST_N_GAMES", statsConfig.LastNGames)

	rosterConfig := bbref.DefaultConfig()
	rosterConfig.BaseURL = getEnv("BBREF_BASE", "")
	rosterConfig.TeamAbbrs = getEnvStrings("TEAM_ABBRS", rosterConfig.TeamAbbrs)
	rosterConfig.Season = getEnvInt("SEASON", rosterConfig.Season)

	enrichConfig := enrich.DefaultConfig()
	enrichConfig.APIKey = getEnv("DEEPSEEK_API_KEY", "")
	enrichConfig.BaseURL = getEnv("DEEPSEEK_API_URL", enrichConfig.BaseURL)
	enrichConfig.Model = getEnv("DEEPSEEK_MODEL", enrichConfig.Model)
	if delayMs := getEnvInt("ENRICH_DELAY_MS", 0); delayMs > 0 {
		enrichConfig.RequestDelay = time.Duration(delayMs) * time.Millisecond
	}

	return &pipeline.Config{
		DataDir: getEnv("DATA_DIR", "."),
		Stats:   statsConfig,
		Roster:  rosterConfig,
		Enrich:  enrichConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInts(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var ids []int
	for _, part := range strings.Split(value, ",") {
		if i, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids = append(ids, i)
		}
	}
	if len(ids) == 0 {
		return defaultValue
	}
	return ids
}

func getEnvStrings(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
