package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL for the DeepSeek chat completions endpoint
	DefaultBaseURL = "https://api.deepseek.com/v1/chat/completions"

	// DefaultModel used for analysis requests
	DefaultModel = "deepseek-chat"

	// PlaceholderAPIKey is the known unset-credential sentinel; calls
	// fail fast when the configured key equals it
	PlaceholderAPIKey = "sk-REPLACE_ME"

	requestTemperature = 0.3
	maxResponseTokens  = 200
)

// Client performs authenticated chat-completion requests. One request
// per merged row; no retries, the caller owns failure fallback.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewClient creates a completion client from enrichment config.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	apiURL := config.BaseURL
	if apiURL == "" {
		apiURL = DefaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey: config.APIKey,
		apiURL: apiURL,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateCompletion sends one prompt and returns the generated message
// text. A missing or placeholder credential fails before any network
// I/O happens.
func (c *Client) CreateCompletion(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" || c.apiKey == PlaceholderAPIKey {
		return "", fmt.Errorf("API key not configured")
	}

	reqBody := chatRequest{
		Model:          c.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    requestTemperature,
		MaxTokens:      maxResponseTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body[:min(len(body), 200)]))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("API error: %s", parsed.Error.Message)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return parsed.Choices[0].Message.Content, nil
}

// CheckConnection verifies the endpoint and credential are usable.
func (c *Client) CheckConnection(ctx context.Context) error {
	_, err := c.CreateCompletion(ctx, `{"test": "ok"}`)
	return err
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
