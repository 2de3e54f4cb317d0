package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanhafiz/bursapulse/internal/app"
	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/models"
	"github.com/wanhafiz/bursapulse/internal/services/market"
)

// mockMarketService fakes market data for handler tests.
type mockMarketService struct {
	overview    *models.MarketOverview
	overviewErr error
	details     map[string]*models.StockDetail
}

func (m *mockMarketService) GetMarketOverview(context.Context) (*models.MarketOverview, error) {
	if m.overviewErr != nil {
		return nil, m.overviewErr
	}
	return m.overview, nil
}

func (m *mockMarketService) GetStockDetail(_ context.Context, symbol string) (*models.StockDetail, error) {
	if d, ok := m.details[symbol]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s", market.ErrNoData, symbol)
}

// mockForensicService returns a canned forensic result.
type mockForensicService struct {
	result *models.ForensicResult
	err    error
}

func (m *mockForensicService) GetForensicRecord(context.Context, string) (*models.ForensicResult, error) {
	return m.result, m.err
}

// mockIntelService returns canned intelligence.
type mockIntelService struct {
	analysis *models.StockAnalysis
	set      *models.SuggestionSet
	outlook  *models.MacroOutlook
	err      error
}

func (m *mockIntelService) AnalyzeStock(context.Context, *models.StockDetail, string) (*models.StockAnalysis, error) {
	return m.analysis, m.err
}

func (m *mockIntelService) DailySuggestions(context.Context, *models.MarketOverview) (*models.SuggestionSet, error) {
	return m.set, m.err
}

func (m *mockIntelService) MacroAnalysis(context.Context, string) (*models.MacroOutlook, error) {
	return m.outlook, m.err
}

// mockSearchService returns canned search results.
type mockSearchService struct {
	results []models.SearchResult
	err     error
}

func (m *mockSearchService) Search(context.Context, string) ([]models.SearchResult, error) {
	return m.results, m.err
}

// mockNewsService returns canned news.
type mockNewsService struct {
	items         []models.NewsItem
	announcements []models.Announcement
}

func (m *mockNewsService) GetNews(context.Context, string) ([]models.NewsItem, error) {
	return m.items, nil
}

func (m *mockNewsService) GetAnnouncements(context.Context) ([]models.Announcement, error) {
	return m.announcements, nil
}

func overviewFixture() *models.MarketOverview {
	return &models.MarketOverview{
		Index: &models.IndexSnapshot{Price: 1600, Change: 8, ChangePct: 0.5},
		Quotes: []models.QuoteSnapshot{
			{Symbol: "1155.KL", Name: "MAYBANK", Price: 10.5, ChangePct: 2.0, Volume: 5_000_000},
		},
		Instruments: []models.Instrument{
			{Symbol: "1155.KL", Name: "MAYBANK", Sector: "Finance", Cap: models.CapLarge},
		},
		AsOf: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
}

func detailFixture() *models.StockDetail {
	return &models.StockDetail{
		Quote: models.QuoteSnapshot{Symbol: "1155.KL", Name: "MAYBANK", Price: 10.5, ChangePct: 2.0},
		Chart: models.ChartSeries{
			Timestamps: []int64{1717286400, 1717372800, 1717459200},
			Close:      []float64{10.1, 10.3, 10.5},
		},
		Instrument: &models.Instrument{Symbol: "1155.KL", Name: "MAYBANK", Sector: "Finance", Cap: models.CapLarge},
	}
}

// newTestServer builds a server over a mock-backed app. The market mock
// is refreshed into the cache so cached-overview paths are exercised.
func newTestServer(t *testing.T, configure func(*app.App)) *Server {
	t.Helper()

	a := &app.App{
		Config:      common.NewDefaultConfig(),
		Logger:      common.NewSilentLogger(),
		StartupTime: time.Now(),
	}
	a.MarketService = &mockMarketService{
		overview: overviewFixture(),
		details:  map[string]*models.StockDetail{"1155.KL": detailFixture()},
	}
	a.SearchService = &mockSearchService{}

	if configure != nil {
		configure(a)
	}

	require.NoError(t, a.RefreshOverview(context.Background()))

	return NewServer(a)
}

func doRequest(s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestHandleVersion(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleMarketOverview(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/market/overview", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var overview models.MarketOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	require.NotNil(t, overview.Index)
	assert.Len(t, overview.Quotes, 1)
}

func TestHandleMarketOverviewMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodPost, "/api/market/overview", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleMarketSectors(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/market/sectors?ranked=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sectors []models.SectorSummary `json:"sectors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Sectors, 1)
	assert.Equal(t, "Finance", resp.Sectors[0].Sector)
}

func TestHandleStockDetail(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/market/stocks/1155.KL", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail models.StockDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "1155.KL", detail.Quote.Symbol)
}

func TestHandleStockDetailNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/market/stocks/0000.KL", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStockChart(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/market/stocks/1155.KL/chart.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}

func TestHandleSearch(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.SearchService = &mockSearchService{
			results: []models.SearchResult{{Symbol: "1155.KL", Name: "MAYBANK"}},
		}
	})

	rec := doRequest(s, http.MethodGet, "/api/search?q=maybank", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []models.SearchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
}

func TestHandleSearchMissingQuery(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNewsNotConfigured(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/news", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleAnnouncements(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.NewsService = &mockNewsService{
			announcements: []models.Announcement{{Company: "MAYBANK", Title: "Quarterly Report"}},
		}
	})

	rec := doRequest(s, http.MethodGet, "/api/announcements", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Announcements []models.Announcement `json:"announcements"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Announcements, 1)
}

func TestHandleForensicRecord(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.ForensicService = &mockForensicService{
			result: &models.ForensicResult{
				Record: models.ForensicRecord{
					Entity:       models.ForensicEntity{Name: "Sapura Energy Berhad", IsListed: true},
					Shareholders: []models.Shareholder{{Name: "PNB", Percentage: 40, Type: "Government"}},
				},
				State: models.ForensicParsed,
			},
		}
	})

	rec := doRequest(s, http.MethodGet, "/api/forensic/Sapura%20Energy%20Berhad?graph=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		State models.ForensicState   `json:"state"`
		Graph *models.OwnershipGraph `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.ForensicParsed, resp.State)
	require.NotNil(t, resp.Graph)
	assert.Len(t, resp.Graph.Nodes, 2)
}

func TestHandleForensicNotConfigured(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/forensic/Sapura", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleForensicGraph(t *testing.T) {
	s := newTestServer(t, nil)

	body := map[string]interface{}{
		"record": models.ForensicRecord{
			Entity: models.ForensicEntity{Name: "Target Berhad"},
			Shareholders: []models.Shareholder{
				{Name: "A", Percentage: 40, Type: "Corporate"},
				{Name: "B", Percentage: 25, Type: "Fund"},
				{Name: "C", Percentage: 10, Type: "Individual"},
			},
		},
		"filter": "shareholders",
	}

	rec := doRequest(s, http.MethodPost, "/api/forensic/graph", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var graph models.OwnershipGraph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &graph))
	assert.Len(t, graph.Nodes, 4)
	assert.Len(t, graph.Edges, 3)
}

func TestHandleForensicGraphBadFilter(t *testing.T) {
	s := newTestServer(t, nil)

	body := map[string]interface{}{
		"record": models.ForensicRecord{Entity: models.ForensicEntity{Name: "Target Berhad"}},
		"filter": "everything",
	}

	rec := doRequest(s, http.MethodPost, "/api/forensic/graph", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleForensicGraphMissingEntity(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodPost, "/api/forensic/graph", map[string]interface{}{
		"record": models.ForensicRecord{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIntelAnalyze(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.IntelService = &mockIntelService{
			analysis: &models.StockAnalysis{OpportunityScore: 70, SuggestedBias: "Long"},
		}
	})

	rec := doRequest(s, http.MethodPost, "/api/intel/analyze", map[string]string{"symbol": "1155.KL"})
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis models.StockAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, 70, analysis.OpportunityScore)
}

func TestHandleIntelAnalyzeUnknownSymbol(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.IntelService = &mockIntelService{analysis: &models.StockAnalysis{}}
	})

	rec := doRequest(s, http.MethodPost, "/api/intel/analyze", map[string]string{"symbol": "0000.KL"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleIntelSuggestions(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.IntelService = &mockIntelService{
			set: &models.SuggestionSet{MarketSummary: "Quiet session."},
		}
	})

	rec := doRequest(s, http.MethodGet, "/api/intel/suggestions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleIntelMacroFailure(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.IntelService = &mockIntelService{err: errors.New("model overloaded")}
	})

	rec := doRequest(s, http.MethodPost, "/api/intel/macro", map[string]string{"context": "OPR decision"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCORSPreflights(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodOptions, "/api/market/overview", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
