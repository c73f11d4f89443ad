package store

import "strings"

// GameRecord identifies one contest as returned by the stats API.
// Games only scope which stat rows get extracted; they are not carried
// into the merged schema.
type GameRecord struct {
	ExternalID    string
	Date          string
	Season        int
	Status        string
	HomeTeamID    int
	VisitorTeamID int
	HomeScore     int
	VisitorScore  int

	// ExtractedTeamID is the team the extraction pass was scoped to.
	ExtractedTeamID int
}

// PlayerRef is a player identity exactly as it appears in a raw stat
// row. The stats API usually embeds a structured first/last name
// object, but some rows carry a bare display string. Both shapes are
// resolved to one display name here, at ingestion, so nothing
// downstream has to re-inspect the raw shape.
type PlayerRef struct {
	FirstName  string
	LastName   string
	Position   string
	Raw        string
	Structured bool
}

// StructuredPlayerRef builds a PlayerRef from a nested player object.
func StructuredPlayerRef(firstName, lastName, position string) PlayerRef {
	return PlayerRef{
		FirstName:  firstName,
		LastName:   lastName,
		Position:   position,
		Structured: true,
	}
}

// PlainPlayerRef builds a PlayerRef from a bare textual value.
func PlainPlayerRef(raw string) PlayerRef {
	return PlayerRef{Raw: raw}
}

// DisplayName returns the canonical display name for the player.
// Structured refs join first and last name with a single space and
// trim the result; missing parts are treated as empty strings.
func (p PlayerRef) DisplayName() string {
	if p.Structured {
		return strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	return p.Raw
}

// DisplayPosition returns the player position, or "Unknown" when the
// source did not carry one.
func (p PlayerRef) DisplayPosition() string {
	if p.Structured && p.Position != "" {
		return p.Position
	}
	return "Unknown"
}

// RawStatRow is one player's box-score line in source shape: every
// stat holds the raw token the API returned, uncoerced.
type RawStatRow struct {
	GameID    string
	TeamID    int
	Player    PlayerRef
	Points    string
	Rebounds  string
	Assists   string
	Steals    string
	Blocks    string
	Turnovers string
	Minutes   string
}

// RawRosterRow is one scraped roster table row in source shape.
type RawRosterRow struct {
	Name       string
	Position   string
	Height     string
	Weight     string
	Experience string
	Team       string
}

// PlayerStatRecord is the cleaned form of a RawStatRow. Every numeric
// field is present after cleaning; parse failures coerce to zero.
type PlayerStatRecord struct {
	PlayerName     string
	PlayerPosition string
	GameID         string
	TeamID         int
	Points         float64
	Rebounds       float64
	Assists        float64
	Steals         float64
	Blocks         float64
	Turnovers      float64
	MinutesPlayed  float64
}

// RosterEntry is the cleaned form of a RawRosterRow. Height keeps the
// original token alongside the derived total-inch value; malformed
// heights normalize to zero inches.
type RosterEntry struct {
	Name         string
	Position     string
	Height       string
	HeightInches int
	Weight       float64
	Experience   float64
	Team         string
}

// MergedPerformance joins one cleaned stat row with at most one
// matching roster entry. Roster is nil when no roster row matched;
// the stat side is never dropped.
type MergedPerformance struct {
	PlayerStatRecord
	Roster *RosterEntry
}

// AIAnalysis is the enrichment payload attached to each merged row.
type AIAnalysis struct {
	RoleTag       string `json:"role_tag"`
	ScoutingBlurb string `json:"scouting_blurb"`
	ImpactScore   int    `json:"impact_score"`
}

// EnrichedPerformance is a merged row plus its analysis. Built fresh
// per input row; never mutated after construction.
type EnrichedPerformance struct {
	MergedPerformance
	Analysis AIAnalysis
}
