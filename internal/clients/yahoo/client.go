// Package yahoo provides a client for the Yahoo Finance chart and search APIs
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/interfaces"
	"github.com/wanhafiz/bursapulse/internal/models"
)

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Unauthenticated chart requests are rejected without a browser UA.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client implements the QuoteClient interface against the Yahoo v8 chart
// and v1 search endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
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

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an upstream API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// chartResponse mirrors the v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				ShortName          string  `json:"shortName"`
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
				RegularMarketVol   int64   `json:"regularMarketVolume"`
				SharesOutstanding  float64 `json:"sharesOutstanding"`
				FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// GetChart retrieves chart data for a symbol.
func (c *Client) GetChart(ctx context.Context, symbol, interval, rng string) (*models.ChartResult, error) {
	params := url.Values{}
	params.Set("interval", interval)
	params.Set("range", rng)
	params.Set("includePrePost", "false")

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))

	var resp chartResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Chart.Result) == 0 {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("no chart data for %s", symbol),
			Endpoint:   path,
		}
	}

	r := resp.Chart.Result[0]

	// chartPreviousClose is the reliable field; previousClose is often
	// absent on index symbols.
	prevClose := r.Meta.ChartPreviousClose
	if prevClose == 0 {
		prevClose = r.Meta.PreviousClose
	}

	result := &models.ChartResult{
		Meta: models.ChartMeta{
			Symbol:             r.Meta.Symbol,
			ShortName:          r.Meta.ShortName,
			Currency:           r.Meta.Currency,
			ExchangeName:       r.Meta.ExchangeName,
			RegularMarketPrice: r.Meta.RegularMarketPrice,
			PreviousClose:      prevClose,
			RegularMarketVol:   r.Meta.RegularMarketVol,
			SharesOutstanding:  r.Meta.SharesOutstanding,
			High52Week:         r.Meta.FiftyTwoWeekHigh,
			Low52Week:          r.Meta.FiftyTwoWeekLow,
		},
		Series: models.ChartSeries{
			Timestamps: r.Timestamp,
		},
	}

	if len(r.Indicators.Quote) > 0 {
		q := r.Indicators.Quote[0]
		result.Series.Open = q.Open
		result.Series.High = q.High
		result.Series.Low = q.Low
		result.Series.Close = q.Close
		result.Series.Volume = q.Volume
	}

	return result, nil
}

// searchResponse mirrors the v1 finance search payload.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		ExchDisp  string `json:"exchDisp"`
		QuoteType string `json:"quoteType"`
		Sector    string `json:"sector"`
		Industry  string `json:"industry"`
	} `json:"quotes"`
}

// SearchSymbols searches the symbol directory, filtered to Bursa
// Malaysia listings.
func (c *Client) SearchSymbols(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", "25")
	params.Set("newsCount", "0")
	params.Set("enableFuzzyQuery", "true")
	params.Set("region", "MY")

	var resp searchResponse
	if err := c.get(ctx, "/v1/finance/search", params, &resp); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		if !isBursaListing(q.Symbol, q.Exchange, q.ExchDisp) {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			name = q.Symbol
		}
		exchange := q.ExchDisp
		if exchange == "" {
			exchange = "Bursa Malaysia"
		}
		quoteType := q.QuoteType
		if quoteType == "" {
			quoteType = "EQUITY"
		}
		results = append(results, models.SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: exchange,
			Type:     quoteType,
			Sector:   q.Sector,
			Industry: q.Industry,
		})
	}

	c.logger.Debug().Str("query", query).Int("results", len(results)).Msg("Yahoo symbol search")

	return results, nil
}

// isBursaListing reports whether a search hit trades on Bursa Malaysia.
func isBursaListing(symbol, exchange, exchDisp string) bool {
	return strings.HasSuffix(symbol, ".KL") ||
		exchange == "KLS" ||
		strings.Contains(exchDisp, "Kuala Lumpur")
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
