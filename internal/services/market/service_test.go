package market

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanhafiz/bursapulse/internal/clients/yahoo"
	"github.com/wanhafiz/bursapulse/internal/registry"
)

func TestGetMarketOverview(t *testing.T) {
	client := newMockQuoteClient()
	client.charts[registry.BenchmarkSymbol] = chartFixture(registry.BenchmarkSymbol, 1600.0, 1584.0)
	for _, sym := range registry.Symbols() {
		client.charts[sym] = chartFixture(sym, 5.0, 4.0)
	}

	s := newTestService(client)
	overview, err := s.GetMarketOverview(context.Background())
	require.NoError(t, err)

	require.NotNil(t, overview.Index)
	assert.InDelta(t, 16.0, overview.Index.Change, 1e-9)
	assert.InDelta(t, 1.0101, overview.Index.ChangePct, 1e-3)
	assert.Len(t, overview.Quotes, len(registry.Symbols()))
	assert.Len(t, overview.Instruments, len(registry.Symbols()))
	assert.False(t, overview.AsOf.IsZero())
}

func TestGetMarketOverviewIndexFailureIsolated(t *testing.T) {
	client := newMockQuoteClient()
	client.errs[registry.BenchmarkSymbol] = errors.New("index endpoint down")
	for _, sym := range registry.Symbols() {
		client.charts[sym] = chartFixture(sym, 5.0, 4.0)
	}

	s := newTestService(client)
	overview, err := s.GetMarketOverview(context.Background())
	require.NoError(t, err)

	assert.Nil(t, overview.Index, "index failure must not poison the quote set")
	assert.Len(t, overview.Quotes, len(registry.Symbols()))
}

func TestGetMarketOverviewPartialQuotes(t *testing.T) {
	client := newMockQuoteClient()
	client.charts[registry.BenchmarkSymbol] = chartFixture(registry.BenchmarkSymbol, 1600.0, 1584.0)
	symbols := registry.Symbols()
	for i, sym := range symbols {
		if i < 2 {
			client.errs[sym] = errors.New("throttled")
			continue
		}
		client.charts[sym] = chartFixture(sym, 5.0, 4.0)
	}

	s := newTestService(client)
	overview, err := s.GetMarketOverview(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, overview.Index)
	assert.Len(t, overview.Quotes, len(symbols)-2)
	assert.Len(t, overview.Instruments, len(symbols), "registry list stays complete regardless of fetch outcomes")
}

func TestGetStockDetail(t *testing.T) {
	client := newMockQuoteClient()
	client.charts["1155.KL"] = chartFixture("1155.KL", 10.50, 10.00)

	s := newTestService(client)
	detail, err := s.GetStockDetail(context.Background(), "1155.KL")
	require.NoError(t, err)

	assert.Equal(t, "1155.KL", detail.Quote.Symbol)
	assert.Len(t, detail.Chart.Timestamps, 3)
	require.NotNil(t, detail.Instrument)
	assert.Equal(t, "MAYBANK", detail.Instrument.Name)
}

func TestGetStockDetailOffRegistry(t *testing.T) {
	client := newMockQuoteClient()
	client.charts["9999.KL"] = chartFixture("9999.KL", 0.50, 0.45)

	s := newTestService(client)
	detail, err := s.GetStockDetail(context.Background(), "9999.KL")
	require.NoError(t, err)

	assert.Nil(t, detail.Instrument, "off-registry symbols carry no instrument metadata")
}

func TestGetStockDetailNotFound(t *testing.T) {
	client := newMockQuoteClient()
	client.errs["0000.KL"] = &yahoo.APIError{
		StatusCode: http.StatusNotFound,
		Message:    "no chart data for 0000.KL",
		Endpoint:   "/v8/finance/chart/0000.KL",
	}

	s := newTestService(client)
	_, err := s.GetStockDetail(context.Background(), "0000.KL")
	assert.ErrorIs(t, err, ErrNoData)
}
