// Package news retrieves market news and Bursa company announcements.
package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/interfaces"
	"github.com/wanhafiz/bursapulse/internal/models"
)

const (
	// announcementsURL is the exchange's company announcement listing.
	announcementsURL = "https://www.bursamalaysia.com/market_information/announcements/company_announcement"

	newsSearchLimit = 8
)

// Service implements the NewsService interface.
type Service struct {
	sources    interfaces.SourceClient
	httpClient *http.Client
	logger     *common.Logger
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used for the direct-fetch fallback
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = client
	}
}

// NewService creates a new news service
func NewService(sources interfaces.SourceClient, opts ...ServiceOption) *Service {
	s := &Service{
		sources: sources,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetNews searches for recent market news matching the query. Failures
// degrade to an empty list; news is decoration, not core data.
func (s *Service) GetNews(ctx context.Context, query string) ([]models.NewsItem, error) {
	docs, err := s.sources.Search(ctx, fmt.Sprintf("%s Bursa Malaysia stock market news", query), newsSearchLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("News search failed")
		return []models.NewsItem{}, nil
	}

	items := make([]models.NewsItem, 0, len(docs))
	for _, doc := range docs {
		if doc.URL == "" || doc.Title == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:   doc.Title,
			URL:     doc.URL,
			Source:  hostOf(doc.URL),
			Snippet: doc.Description,
		})
	}

	return items, nil
}

// GetAnnouncements retrieves the exchange's latest company
// announcements: scrape through the source client first, direct HTML
// fetch as the fallback. Both paths failing yields an empty list.
func (s *Service) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	markdown, err := s.sources.Scrape(ctx, announcementsURL)
	if err == nil {
		if announcements := parseAnnouncementsMarkdown(markdown); len(announcements) > 0 {
			return announcements, nil
		}
		s.logger.Debug().Msg("Scraped announcement page had no parseable rows")
	} else {
		s.logger.Warn().Err(err).Msg("Announcement scrape failed, trying direct fetch")
	}

	announcements, err := s.fetchAnnouncementsDirect(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Direct announcement fetch failed")
		return []models.Announcement{}, nil
	}

	return announcements, nil
}

// fetchAnnouncementsDirect pulls the announcement page HTML and parses
// its listing table.
func (s *Service) fetchAnnouncementsDirect(ctx context.Context) ([]models.Announcement, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, announcementsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch announcements: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("announcement page returned status %d", resp.StatusCode)
	}

	return parseAnnouncementsHTML(resp.Body)
}

// hostOf extracts the host of a URL for display as the news source.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// Ensure Service implements NewsService
var _ interfaces.NewsService = (*Service)(nil)
