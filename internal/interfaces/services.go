package interfaces

import (
	"context"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// MarketService assembles market overviews and per-stock detail.
type MarketService interface {
	// GetMarketOverview fetches the benchmark index and a best-effort
	// quote set over the full instrument registry. Index and quote
	// failures are isolated from each other; an all-failed cycle yields
	// an empty-but-valid overview.
	GetMarketOverview(ctx context.Context) (*models.MarketOverview, error)

	// GetStockDetail fetches the detail view for a single symbol.
	// Returns ErrNoData when the upstream has nothing for the symbol.
	GetStockDetail(ctx context.Context, symbol string) (*models.StockDetail, error)
}

// ForensicService acquires ownership records and builds their graphs.
type ForensicService interface {
	// GetForensicRecord acquires an ownership record for an entity.
	// The result is tagged with how it was obtained; degraded and
	// fallback records are structurally valid but unverified.
	GetForensicRecord(ctx context.Context, entity string) (*models.ForensicResult, error)
}

// IntelService generates AI market intelligence. All output is
// structured but untrusted.
type IntelService interface {
	// AnalyzeStock generates a scored analysis for one stock.
	AnalyzeStock(ctx context.Context, detail *models.StockDetail, newsContext string) (*models.StockAnalysis, error)

	// DailySuggestions generates the daily watch list from overview data.
	DailySuggestions(ctx context.Context, overview *models.MarketOverview) (*models.SuggestionSet, error)

	// MacroAnalysis generates the macro factor outlook.
	MacroAnalysis(ctx context.Context, marketContext string) (*models.MacroOutlook, error)
}

// NewsService retrieves market news and exchange announcements.
type NewsService interface {
	// GetNews searches for recent market news.
	GetNews(ctx context.Context, query string) ([]models.NewsItem, error)

	// GetAnnouncements scrapes the exchange's company announcement page.
	GetAnnouncements(ctx context.Context) ([]models.Announcement, error)
}

// SearchService finds instruments by symbol, name, or sector.
type SearchService interface {
	// Search queries the local registry index first and falls back to
	// the upstream symbol directory for off-registry queries.
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}
