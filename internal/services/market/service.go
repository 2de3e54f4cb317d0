// Package market assembles delayed Bursa Malaysia market views from the
// upstream chart source and the static instrument registry.
package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wanhafiz/bursapulse/internal/clients/yahoo"
	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/interfaces"
	"github.com/wanhafiz/bursapulse/internal/models"
	"github.com/wanhafiz/bursapulse/internal/registry"
)

// ErrNoData indicates the upstream has no data for the requested symbol.
var ErrNoData = errors.New("no data for symbol")

// Service implements the MarketService interface.
type Service struct {
	quotes    interfaces.QuoteClient
	logger    *common.Logger
	benchmark string

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBenchmark overrides the benchmark index symbol
func WithBenchmark(symbol string) ServiceOption {
	return func(s *Service) {
		if symbol != "" {
			s.benchmark = symbol
		}
	}
}

// NewService creates a new market service
func NewService(quotes interfaces.QuoteClient, opts ...ServiceOption) *Service {
	s := &Service{
		quotes:    quotes,
		logger:    common.NewSilentLogger(),
		benchmark: registry.BenchmarkSymbol,
		now:       time.Now,
		sleep:     sleepContext,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// sleepContext pauses for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// GetMarketOverview fetches the benchmark index and quotes for the whole
// registry. The index fetch and the quote fetch fail independently: a
// dead index endpoint still yields quotes, and vice versa.
func (s *Service) GetMarketOverview(ctx context.Context) (*models.MarketOverview, error) {
	overview := &models.MarketOverview{
		Instruments: registry.Instruments(),
		AsOf:        s.now(),
	}

	index, err := s.fetchIndex(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", s.benchmark).Msg("Failed to fetch benchmark index")
	} else {
		overview.Index = index
	}

	overview.Quotes = s.FetchQuotes(ctx, registry.Symbols())

	s.logger.Info().
		Int("quotes", len(overview.Quotes)).
		Bool("index", overview.Index != nil).
		Msg("Market overview assembled")

	return overview, nil
}

// fetchIndex retrieves the benchmark index headline numbers.
func (s *Service) fetchIndex(ctx context.Context) (*models.IndexSnapshot, error) {
	chart, err := s.quotes.GetChart(ctx, s.benchmark, quoteInterval, quoteRange)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index %s: %w", s.benchmark, err)
	}

	price := chart.Meta.RegularMarketPrice
	var change, changePct float64
	if chart.Meta.PreviousClose != 0 {
		change = price - chart.Meta.PreviousClose
		changePct = ChangePercent(price, chart.Meta.PreviousClose)
	}

	return &models.IndexSnapshot{
		Price:     price,
		Change:    change,
		ChangePct: changePct,
	}, nil
}

// GetStockDetail fetches the detail view for one symbol, attaching the
// registry instrument when the symbol is part of the universe.
func (s *Service) GetStockDetail(ctx context.Context, symbol string) (*models.StockDetail, error) {
	chart, err := s.quotes.GetChart(ctx, symbol, "1d", "3mo")
	if err != nil {
		var apiErr *yahoo.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
		}
		return nil, fmt.Errorf("failed to fetch detail for %s: %w", symbol, err)
	}

	if chart.Meta.RegularMarketPrice == 0 && len(chart.Series.Timestamps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	return &models.StockDetail{
		Quote:      buildQuote(symbol, chart),
		Chart:      chart.Series,
		Instrument: registry.Lookup(symbol),
	}, nil
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
