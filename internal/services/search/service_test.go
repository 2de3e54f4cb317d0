package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// mockQuoteClient fakes the upstream symbol directory.
type mockQuoteClient struct {
	results   []models.SearchResult
	searchErr error
	queries   []string
}

func (m *mockQuoteClient) GetChart(context.Context, string, string, string) (*models.ChartResult, error) {
	return nil, errors.New("not used")
}

func (m *mockQuoteClient) SearchSymbols(_ context.Context, query string) ([]models.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func newTestService(t *testing.T, client *mockQuoteClient) *Service {
	t.Helper()
	s, err := NewService(client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSearchBySymbol(t *testing.T) {
	client := &mockQuoteClient{}
	s := newTestService(t, client)

	results, err := s.Search(context.Background(), "1155.KL")
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.Equal(t, "1155.KL", results[0].Symbol)
	assert.Equal(t, "MAYBANK", results[0].Name)
	assert.Empty(t, client.queries, "registry hit skips the upstream directory")
}

func TestSearchByName(t *testing.T) {
	client := &mockQuoteClient{}
	s := newTestService(t, client)

	results, err := s.Search(context.Background(), "maybank")
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.Equal(t, "1155.KL", results[0].Symbol)
}

func TestSearchBySector(t *testing.T) {
	client := &mockQuoteClient{}
	s := newTestService(t, client)

	results, err := s.Search(context.Background(), "Plantation")
	require.NoError(t, err)

	require.NotEmpty(t, results)
	symbols := make([]string, 0, len(results))
	for _, r := range results {
		symbols = append(symbols, r.Symbol)
	}
	assert.Contains(t, symbols, "5285.KL")
	assert.Contains(t, symbols, "1961.KL")
}

func TestSearchUpstreamFallback(t *testing.T) {
	client := &mockQuoteClient{
		results: []models.SearchResult{
			{Symbol: "0200.KL", Name: "NEWLIST", Exchange: "Bursa Malaysia", Type: "EQUITY"},
		},
	}
	s := newTestService(t, client)

	results, err := s.Search(context.Background(), "newlist")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "0200.KL", results[0].Symbol)
	assert.Equal(t, []string{"newlist"}, client.queries)
}

func TestSearchUpstreamFailure(t *testing.T) {
	client := &mockQuoteClient{searchErr: errors.New("directory down")}
	s := newTestService(t, client)

	_, err := s.Search(context.Background(), "zzzznotfound")
	assert.Error(t, err)
}

func TestSearchEmptyQuery(t *testing.T) {
	client := &mockQuoteClient{}
	s := newTestService(t, client)

	results, err := s.Search(context.Background(), "   ")
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Empty(t, client.queries)
}
