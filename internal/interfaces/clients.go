// Package interfaces defines service contracts for BursaPulse
package interfaces

import (
	"context"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// QuoteClient provides access to the upstream quote/chart service.
type QuoteClient interface {
	// GetChart retrieves chart data for a symbol, e.g. interval "1d", range "5d".
	GetChart(ctx context.Context, symbol, interval, rng string) (*models.ChartResult, error)

	// SearchSymbols searches the upstream symbol directory.
	SearchSymbols(ctx context.Context, query string) ([]models.SearchResult, error)
}

// SourceClient provides web search and page scraping for the forensic
// and news services.
type SourceClient interface {
	// Search runs a web search and returns scraped source documents.
	Search(ctx context.Context, query string, limit int) ([]models.SourceDocument, error)

	// Scrape fetches one URL and returns its content as markdown.
	Scrape(ctx context.Context, url string) (string, error)
}

// AIClient provides access to the AI completion service.
type AIClient interface {
	// GenerateContent generates AI content from a prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
