// Package firecrawl provides a client for the Firecrawl search and scrape API
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/interfaces"
	"github.com/wanhafiz/bursapulse/internal/models"
)

const (
	DefaultBaseURL = "https://api.firecrawl.dev"
	DefaultTimeout = 30 * time.Second
)

// Client implements the SourceClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Firecrawl client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firecrawl API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// post performs an authenticated POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("path", path).Msg("Firecrawl API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type searchRequest struct {
	Query         string        `json:"query"`
	Limit         int           `json:"limit"`
	TBS           string        `json:"tbs,omitempty"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Markdown    string `json:"markdown"`
	} `json:"data"`
}

// Search runs a web search and returns scraped source documents.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SourceDocument, error) {
	if limit <= 0 {
		limit = 8
	}

	req := searchRequest{
		Query: query,
		Limit: limit,
		TBS:   "qdr:m", // restrict to the last month
		ScrapeOptions: scrapeOptions{
			Formats: []string{"markdown"},
		},
	}

	var resp searchResponse
	if err := c.post(ctx, "/v1/search", req, &resp); err != nil {
		return nil, err
	}

	docs := make([]models.SourceDocument, 0, len(resp.Data))
	for _, d := range resp.Data {
		docs = append(docs, models.SourceDocument{
			URL:         d.URL,
			Title:       d.Title,
			Description: d.Description,
			Markdown:    d.Markdown,
		})
	}

	c.logger.Debug().Str("query", query).Int("results", len(docs)).Msg("Firecrawl search")

	return docs, nil
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Scrape fetches one URL and returns its content as markdown.
func (c *Client) Scrape(ctx context.Context, pageURL string) (string, error) {
	req := scrapeRequest{
		URL:     pageURL,
		Formats: []string{"markdown"},
	}

	var resp scrapeResponse
	if err := c.post(ctx, "/v1/scrape", req, &resp); err != nil {
		return "", err
	}

	return resp.Data.Markdown, nil
}

// Ensure Client implements SourceClient
var _ interfaces.SourceClient = (*Client)(nil)
