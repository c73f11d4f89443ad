// Package enrich attaches an AI-generated analysis to each merged
// player performance: a role classification from a closed vocabulary,
// a short scouting narrative, and a numeric impact score. Every
// failure path collapses to one fixed default triple so enrichment
// can never abort a run.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/fortuna/scoutline/internal/store"
)

// RoleTags is the closed vocabulary of permitted role labels. Any
// response value outside this set is replaced with FallbackRoleTag.
var RoleTags = []string{
	"PRIMARY_SCORER", "SECONDARY_SCORER", "PLAYMAKER", "FACILITATOR",
	"REBOUNDER", "DEFENDER", "ENERGY_PLAYER", "VETERAN_PRESENCE",
	"SPECIALIST", "ROLE_PLAYER", "BENCH_CONTRIBUTOR", "STAR_PERFORMER",
}

const (
	// FallbackRoleTag is the vocabulary's designated fallback value
	FallbackRoleTag = "ROLE_PLAYER"

	// DefaultScoutingBlurb is the fixed-default narrative
	DefaultScoutingBlurb = "Contributed to team effort with solid fundamentals."

	// DefaultImpactScore is the fixed-default score
	DefaultImpactScore = 50

	// absentBlurb replaces a missing blurb in an otherwise valid response
	absentBlurb = "Solid contributor."

	// DefaultMaxBlurbLength is the hard cap on blurb length
	DefaultMaxBlurbLength = 150
)

// Config holds enrichment settings. The vocabulary and blurb cap are
// part of the config so the validation contract is explicit at
// construction instead of buried in globals.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	Vocabulary     []string
	MaxBlurbLength int
	RequestDelay   time.Duration // Pacing between successive rows
}

// DefaultConfig returns default enrichment settings.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		Timeout:        30 * time.Second,
		Vocabulary:     RoleTags,
		MaxBlurbLength: DefaultMaxBlurbLength,
		RequestDelay:   400 * time.Millisecond,
	}
}

// CompletionClient is the outbound text-generation call the analyzer
// depends on.
type CompletionClient interface {
	CreateCompletion(ctx context.Context, prompt string) (string, error)
}

// Analyzer produces one AIAnalysis per merged row. It holds no
// cross-row state: the same input yields the same output regardless
// of call order.
type Analyzer struct {
	client     CompletionClient
	vocabulary map[string]bool
	vocabList  []string
	maxBlurb   int
}

// NewAnalyzer creates an analyzer with its own completion client.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	return NewAnalyzerWithClient(config, NewClient(config))
}

// NewAnalyzerWithClient creates an analyzer around an existing client.
func NewAnalyzerWithClient(config *Config, client CompletionClient) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}

	vocabList := config.Vocabulary
	if len(vocabList) == 0 {
		vocabList = RoleTags
	}
	vocabulary := make(map[string]bool, len(vocabList))
	for _, tag := range vocabList {
		vocabulary[tag] = true
	}

	maxBlurb := config.MaxBlurbLength
	if maxBlurb <= 0 {
		maxBlurb = DefaultMaxBlurbLength
	}

	return &Analyzer{
		client:     client,
		vocabulary: vocabulary,
		vocabList:  vocabList,
		maxBlurb:   maxBlurb,
	}
}

// Analyze produces exactly one analysis for one merged row. Any
// failure, from the network call to response validation, is absorbed
// here and replaced with the fixed default.
func (a *Analyzer) Analyze(ctx context.Context, row store.MergedPerformance) store.AIAnalysis {
	prompt := a.buildPrompt(row)

	raw, err := a.client.CreateCompletion(ctx, prompt)
	if err != nil {
		log.Printf("[enrich] ⚠️  AI analysis failed for %s: %v (using default)", row.PlayerName, err)
		return DefaultAnalysis()
	}

	analysis, err := a.parseResponse(raw)
	if err != nil {
		log.Printf("[enrich] ⚠️  Invalid AI response for %s: %v (using default)", row.PlayerName, err)
		return DefaultAnalysis()
	}

	return analysis
}

// DefaultAnalysis returns the fixed default triple used whenever a
// valid analysis cannot be produced. Byte-for-byte stable.
func DefaultAnalysis() store.AIAnalysis {
	return store.AIAnalysis{
		RoleTag:       FallbackRoleTag,
		ScoutingBlurb: DefaultScoutingBlurb,
		ImpactScore:   DefaultImpactScore,
	}
}

// buildPrompt renders the structured analysis request. The prompt
// embeds the stat values as supplied, the full closed vocabulary, and
// the exact response field names.
func (a *Analyzer) buildPrompt(row store.MergedPerformance) string {
	position := row.PlayerPosition
	height := "Unknown"
	weight := "Unknown"
	experience := "Unknown"
	if row.Roster != nil {
		if row.Roster.Position != "" {
			position = row.Roster.Position
		}
		if row.Roster.Height != "" {
			height = row.Roster.Height
		}
		weight = strconv.FormatFloat(row.Roster.Weight, 'g', -1, 64)
		experience = strconv.FormatFloat(row.Roster.Experience, 'g', -1, 64)
	}

	return fmt.Sprintf(`Analyze this NBA player's game performance and provide insights:

PLAYER INFO:
- Name: %s
- Position: %s
- Height: %s
- Weight: %s lbs
- Experience: %s years

GAME STATS:
- Points: %g
- Rebounds: %g
- Assists: %g
- Steals: %g
- Blocks: %g
- Turnovers: %g
- Minutes: %.1f

ANALYSIS TASKS:
1. ROLE_TAG: Choose ONE from this list: %s
2. SCOUTING_BLURB: Write exactly ONE sentence (max 25 words) describing their game impact
3. IMPACT_SCORE: Rate 0-100 based on overall contribution

Respond in this EXACT JSON format:
{
    "role_tag": "CHOSEN_TAG",
    "scouting_blurb": "One sentence here.",
    "impact_score": 85
}`,
		row.PlayerName, position, height, weight, experience,
		row.Points, row.Rebounds, row.Assists, row.Steals, row.Blocks, row.Turnovers,
		row.MinutesPlayed, strings.Join(a.vocabList, ", "))
}

// rawAnalysis is the response shape before validation. ImpactScore
// stays loosely typed because models return numbers, numeric strings,
// and the occasional "n/a".
type rawAnalysis struct {
	RoleTag       string      `json:"role_tag"`
	ScoutingBlurb string      `json:"scouting_blurb"`
	ImpactScore   interface{} `json:"impact_score"`
}

// parseResponse validates the generated text as a structured analysis.
// Parse failure is the only error; each field then repairs
// independently to its documented fallback.
func (a *Analyzer) parseResponse(raw string) (store.AIAnalysis, error) {
	var resp rawAnalysis
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return store.AIAnalysis{}, fmt.Errorf("unmarshal analysis: %w", err)
	}

	return store.AIAnalysis{
		RoleTag:       a.validRole(resp.RoleTag),
		ScoutingBlurb: a.clipBlurb(resp.ScoutingBlurb),
		ImpactScore:   clampScore(coerceScore(resp.ImpactScore)),
	}, nil
}

// validRole returns the tag if it is in the vocabulary, otherwise the
// designated fallback.
func (a *Analyzer) validRole(tag string) string {
	if a.vocabulary[tag] {
		return tag
	}
	return FallbackRoleTag
}

// clipBlurb enforces the blurb cap: an absent blurb gets a fixed
// sentence; an overlong one is truncated with a trailing ellipsis so
// the total never exceeds the cap. The cap counts characters, not
// bytes, so a multi-byte rune is never split.
func (a *Analyzer) clipBlurb(blurb string) string {
	if blurb == "" {
		return absentBlurb
	}
	runes := []rune(blurb)
	if len(runes) <= a.maxBlurb {
		return blurb
	}
	keep := a.maxBlurb - 3
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + "..."
}

// coerceScore converts a loosely-typed score to an integer, falling
// back to the default on anything non-numeric.
func coerceScore(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return DefaultImpactScore
		}
		return int(f)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return DefaultImpactScore
		}
		return int(f)
	default:
		return DefaultImpactScore
	}
}

// clampScore bounds a score into [0, 100] inclusive.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
