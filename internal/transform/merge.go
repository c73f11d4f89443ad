package transform

import (
	"log"

	"github.com/fortuna/scoutline/internal/store"
)

// Merge left-joins cleaned stat rows onto cleaned roster entries by
// exact display-name equality. Every stat row survives: rows with no
// roster match simply carry no roster fields. When either side is
// empty the join is skipped and the stat side passes through.
func Merge(stats []store.PlayerStatRecord, roster []store.RosterEntry) []store.MergedPerformance {
	if len(stats) == 0 {
		log.Println("[transform] ⚠️  No stat rows to merge")
		return []store.MergedPerformance{}
	}

	byName := indexRoster(roster)

	merged := make([]store.MergedPerformance, 0, len(stats))
	for _, stat := range stats {
		row := store.MergedPerformance{PlayerStatRecord: stat}
		if entry, ok := byName[stat.PlayerName]; ok {
			row.Roster = entry
		}
		merged = append(merged, row)
	}

	log.Printf("[transform] ✓ Merged %d stat rows (%d roster entries available)", len(merged), len(roster))
	return merged
}

// indexRoster builds a name lookup. Duplicate display names keep the
// first entry; the collision is logged because two same-named players
// on different teams are indistinguishable by name alone.
func indexRoster(roster []store.RosterEntry) map[string]*store.RosterEntry {
	byName := make(map[string]*store.RosterEntry, len(roster))
	for i := range roster {
		entry := &roster[i]
		if existing, ok := byName[entry.Name]; ok {
			log.Printf("[transform] ⚠️  Duplicate roster name %q (%s vs %s), keeping first", entry.Name, existing.Team, entry.Team)
			continue
		}
		byName[entry.Name] = entry
	}
	return byName
}
