package market

import (
	"context"
	"sync"
	"time"

	"github.com/wanhafiz/bursapulse/internal/models"
)

const (
	// batchSize bounds in-flight upstream requests per wave.
	batchSize = 5
	// interBatchPause spaces out waves so the free chart endpoint does
	// not start rejecting us mid-cycle.
	interBatchPause = 200 * time.Millisecond

	quoteInterval = "1d"
	quoteRange    = "5d"
)

// FetchQuotes retrieves snapshots for the given symbols in batches.
// Per-symbol failures are logged and dropped; the returned set is always
// a subset of the requested symbols, possibly empty.
func (s *Service) FetchQuotes(ctx context.Context, symbols []string) []models.QuoteSnapshot {
	quotes := make([]models.QuoteSnapshot, 0, len(symbols))
	var mu sync.Mutex

	for start := 0; start < len(symbols); start += batchSize {
		if start > 0 {
			if err := s.sleep(ctx, interBatchPause); err != nil {
				s.logger.Warn().Err(err).Msg("Quote fetch cancelled between batches")
				return quotes
			}
		}

		end := start + batchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()

				chart, err := s.quotes.GetChart(ctx, symbol, quoteInterval, quoteRange)
				if err != nil {
					s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to fetch quote")
					return
				}

				quote := buildQuote(symbol, chart)
				mu.Lock()
				quotes = append(quotes, quote)
				mu.Unlock()
			}(symbol)
		}
		wg.Wait()
	}

	s.logger.Debug().
		Int("requested", len(symbols)).
		Int("fetched", len(quotes)).
		Msg("Quote batch fetch complete")

	return quotes
}

// buildQuote derives a snapshot from one chart result. Derived fields
// that cannot be computed stay zero rather than guessed.
func buildQuote(symbol string, chart *models.ChartResult) models.QuoteSnapshot {
	meta := chart.Meta
	price := meta.RegularMarketPrice

	var change, changePct float64
	if meta.PreviousClose != 0 {
		change = price - meta.PreviousClose
		changePct = ChangePercent(price, meta.PreviousClose)
	}

	var marketCap float64
	if meta.SharesOutstanding > 0 {
		marketCap = price * meta.SharesOutstanding
	}

	return models.QuoteSnapshot{
		Symbol:       symbol,
		Name:         meta.ShortName,
		Price:        price,
		Change:       change,
		ChangePct:    changePct,
		Volume:       meta.RegularMarketVol,
		AvgVolume:    averageVolume(chart.Series.Volume),
		MarketCap:    marketCap,
		High52Week:   meta.High52Week,
		Low52Week:    meta.Low52Week,
		Currency:     meta.Currency,
		ExchangeName: meta.ExchangeName,
	}
}

// averageVolume is the mean of the non-zero daily volumes, or 0 when
// the series carries no usable volume data.
func averageVolume(volumes []int64) float64 {
	var sum int64
	var n int
	for _, v := range volumes {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
