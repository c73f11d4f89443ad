package bbref

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// BaseURL for Basketball Reference team pages
	BaseURL = "https://www.basketball-reference.com"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval keeps scraping gentle; the site blocks rapid
	// or naive clients
	MinRequestInterval = 2 * time.Second
)

// Client fetches Basketball Reference pages with a headless browser
// and enforces a minimum interval between requests. A rendered fetch
// is used because the site serves several tables inside HTML comments
// and fingerprints plain HTTP clients.
type Client struct {
	baseURL     string
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// New creates a roster page scraper client with a custom base URL.
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = BaseURL
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		baseURL:  baseURL,
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// NewClient creates a roster page scraper client with defaults.
func NewClient() (*Client, error) {
	return New(BaseURL)
}

// Close releases browser resources.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// FetchRosterPage fetches the rendered team roster page for a season.
func (c *Client) FetchRosterPage(ctx context.Context, teamAbbr string, season int) (string, error) {
	url := fmt.Sprintf("%s/teams/%s/%d.html", c.baseURL, teamAbbr, season)
	return c.fetchWithRateLimit(ctx, url)
}

// fetchWithRateLimit fetches content with automatic rate limiting.
func (c *Client) fetchWithRateLimit(ctx context.Context, url string) (string, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			waitTime := c.interval - elapsed
			log.Printf("[bbref-client] Rate limiting: waiting %v before next request", waitTime)
			time.Sleep(waitTime)
		}
	}

	html, err := c.fetch(ctx, url)
	c.lastRequest = time.Now()

	return html, err
}

// fetch performs the rendered page fetch using chromedp.
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	// Browser contexts must chain from the allocator, so caller
	// cancellation is bridged in rather than inherited.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // Allow JS to render
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)

	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}

	return htmlContent, nil
}
