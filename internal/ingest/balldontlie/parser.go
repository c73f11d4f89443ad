package balldontlie

import (
	"fmt"
	"log"
	"strconv"

	"github.com/fortuna/scoutline/internal/store"
)

// ParseGames extracts game records from a /games response. The API
// wraps results in a "data" array; rows with no id are skipped with a
// warning instead of failing the whole response.
func ParseGames(gamesData map[string]interface{}, teamID int) []store.GameRecord {
	events := extractArray(gamesData, "data")

	var games []store.GameRecord
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}

		game := store.GameRecord{
			ExternalID:      rawToken(event["id"]),
			Date:            extractString(event, "date"),
			Season:          extractInt(event, "season"),
			Status:          extractString(event, "status"),
			HomeScore:       extractInt(event, "home_team_score"),
			VisitorScore:    extractInt(event, "visitor_team_score"),
			ExtractedTeamID: teamID,
		}

		if game.ExternalID == "" {
			log.Printf("[bdl-parser] Warning: skipping game with no id for team %d", teamID)
			continue
		}

		if home := extractMap(event, "home_team"); len(home) > 0 {
			game.HomeTeamID = extractInt(home, "id")
		}
		if visitor := extractMap(event, "visitor_team"); len(visitor) > 0 {
			game.VisitorTeamID = extractInt(visitor, "id")
		}

		games = append(games, game)
	}

	return games
}

// ParseStats extracts raw stat rows from a /stats response. Values stay
// in source shape (uncoerced tokens); only the player identity variant
// is resolved here, so downstream code never inspects the raw shape.
func ParseStats(statsData map[string]interface{}, teamID int) []store.RawStatRow {
	entries := extractArray(statsData, "data")

	var rows []store.RawStatRow
	for _, entryInterface := range entries {
		entry, ok := entryInterface.(map[string]interface{})
		if !ok {
			continue
		}

		row := store.RawStatRow{
			TeamID:    teamID,
			Player:    parsePlayerRef(entry["player"]),
			Points:    rawToken(entry["pts"]),
			Rebounds:  rawToken(entry["reb"]),
			Assists:   rawToken(entry["ast"]),
			Steals:    rawToken(entry["stl"]),
			Blocks:    rawToken(entry["blk"]),
			Turnovers: rawToken(entry["turnover"]),
			Minutes:   rawToken(entry["min"]),
		}

		if game := extractMap(entry, "game"); len(game) > 0 {
			row.GameID = rawToken(game["id"])
		}

		rows = append(rows, row)
	}

	return rows
}

// parsePlayerRef resolves the player field's two source shapes: a
// nested first/last name object or a bare textual value.
func parsePlayerRef(v interface{}) store.PlayerRef {
	if player, ok := v.(map[string]interface{}); ok {
		return store.StructuredPlayerRef(
			extractString(player, "first_name"),
			extractString(player, "last_name"),
			extractString(player, "position"),
		)
	}
	return store.PlainPlayerRef(rawToken(v))
}

// rawToken renders a loosely-typed JSON value as its textual form.
// Whole-number floats drop the decimal so "20" stays "20", matching
// what the API serializes.
func rawToken(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// Helper functions for loosely-typed API payloads

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		case int:
			return val
		}
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}
