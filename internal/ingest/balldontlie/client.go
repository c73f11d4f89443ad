package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// BaseURL for the Ball Don't Lie stats API
	BaseURL = "https://www.balldontlie.io/api/v1"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultTimeout bounds each API call
	DefaultTimeout = 30 * time.Second
)

// Client handles Ball Don't Lie API requests with a bounded per-call
// timeout. The API is unauthenticated; it rate limits aggressively, so
// pacing between calls is the caller's job (see Ingester).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a stats API client with a custom base URL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// NewClient creates a stats API client with default settings.
func NewClient() *Client {
	return New(BaseURL)
}

// FetchGames fetches games for one team inside a date window.
func (c *Client) FetchGames(ctx context.Context, teamID int, startDate, endDate time.Time, perPage int) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("team_ids[]", strconv.Itoa(teamID))
	params.Set("start_date", startDate.Format("2006-01-02"))
	params.Set("end_date", endDate.Format("2006-01-02"))
	params.Set("per_page", strconv.Itoa(perPage))

	return c.fetch(ctx, fmt.Sprintf("%s/games?%s", c.baseURL, params.Encode()))
}

// FetchStats fetches per-player box score lines for one game.
func (c *Client) FetchStats(ctx context.Context, gameID string, perPage int) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("game_ids[]", gameID)
	params.Set("per_page", strconv.Itoa(perPage))

	return c.fetch(ctx, fmt.Sprintf("%s/stats?%s", c.baseURL, params.Encode()))
}

func (c *Client) fetch(ctx context.Context, requestURL string) (map[string]interface{}, error) {
	log.Printf("[bdl-client] GET %s", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body[:min(len(body), 200)]))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, string(body[:min(len(body), 200)]))
	}

	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
