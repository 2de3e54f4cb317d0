// Package app wires configuration, clients, and services into the
// shared application core used by cmd/bursapulse-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wanhafiz/bursapulse/internal/clients/firecrawl"
	"github.com/wanhafiz/bursapulse/internal/clients/gemini"
	"github.com/wanhafiz/bursapulse/internal/clients/yahoo"
	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/interfaces"
	"github.com/wanhafiz/bursapulse/internal/models"
	"github.com/wanhafiz/bursapulse/internal/services/forensic"
	"github.com/wanhafiz/bursapulse/internal/services/intel"
	"github.com/wanhafiz/bursapulse/internal/services/market"
	"github.com/wanhafiz/bursapulse/internal/services/news"
	"github.com/wanhafiz/bursapulse/internal/services/search"
)

// App holds all initialized clients and services plus the cached market
// overview maintained by the refresh scheduler.
type App struct {
	Config *common.Config
	Logger *common.Logger

	QuoteClient interfaces.QuoteClient

	MarketService   interfaces.MarketService
	ForensicService interfaces.ForensicService
	IntelService    interfaces.IntelService
	NewsService     interfaces.NewsService
	SearchService   interfaces.SearchService

	StartupTime time.Time

	mu       sync.RWMutex
	overview *models.MarketOverview
	sectors  []models.SectorSummary

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, clients, and services. configPath
// may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	// Load configuration - check provided path, BURSAPULSE_CONFIG, then
	// binary dir, then the development fallback
	if configPath == "" {
		configPath = os.Getenv("BURSAPULSE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "bursapulse.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/bursapulse.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	quoteClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	a := &App{
		Config:      config,
		Logger:      logger,
		QuoteClient: quoteClient,
		StartupTime: time.Now(),
	}

	a.MarketService = market.NewService(quoteClient,
		market.WithLogger(logger),
		market.WithBenchmark(config.Market.BenchmarkSymbol),
	)

	searchService, err := search.NewService(quoteClient, search.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search service: %w", err)
	}
	a.SearchService = searchService

	// Source-backed services need a Firecrawl key; without it they stay
	// nil and their endpoints report unavailable.
	firecrawlKey, err := common.ResolveAPIKey("firecrawl_api_key", config.Clients.Firecrawl.APIKey)
	if err != nil {
		logger.Warn().Msg("Firecrawl API key not configured - forensic and news features will be unavailable")
	}

	var sourceClient interfaces.SourceClient
	if firecrawlKey != "" {
		sourceClient = firecrawl.NewClient(firecrawlKey,
			firecrawl.WithBaseURL(config.Clients.Firecrawl.BaseURL),
			firecrawl.WithTimeout(config.Clients.Firecrawl.GetTimeout()),
			firecrawl.WithLogger(logger),
		)
		a.NewsService = news.NewService(sourceClient, news.WithLogger(logger))
	}

	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - AI analysis will be unavailable")
	}

	var aiClient interfaces.AIClient
	if geminiKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), geminiKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - AI analysis will be unavailable")
		} else {
			aiClient = geminiClient
			a.IntelService = intel.NewService(aiClient, intel.WithLogger(logger))
		}
	}

	if sourceClient != nil && aiClient != nil {
		a.ForensicService = forensic.NewService(sourceClient, aiClient, forensic.WithLogger(logger))
	}

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Bool("forensic", a.ForensicService != nil).
		Bool("intel", a.IntelService != nil).
		Msg("Application initialized")

	return a, nil
}

// RefreshOverview fetches a fresh market overview and recomputes the
// sector rollup, replacing the cached copies.
func (a *App) RefreshOverview(ctx context.Context) error {
	overview, err := a.MarketService.GetMarketOverview(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh market overview: %w", err)
	}

	sectors := market.AggregateSectors(overview.Quotes, overview.Instruments)

	a.mu.Lock()
	a.overview = overview
	a.sectors = sectors
	a.mu.Unlock()

	return nil
}

// LatestOverview returns the most recent cached overview, or nil before
// the first refresh completes.
func (a *App) LatestOverview() *models.MarketOverview {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.overview
}

// LatestSectors returns the most recent sector rollup.
func (a *App) LatestSectors() []models.SectorSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sectors
}

// Close stops the scheduler and releases service resources.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if s, ok := a.SearchService.(*search.Service); ok && s != nil {
		if err := s.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close search index")
		}
	}
}
