// Package search finds instruments by symbol, name, or sector. The
// static registry is indexed in memory at startup; off-registry queries
// fall back to the upstream symbol directory.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/interfaces"
	"github.com/wanhafiz/bursapulse/internal/models"
	"github.com/wanhafiz/bursapulse/internal/registry"
)

const maxResults = 25

// indexedInstrument is the document shape stored in the bleve index.
type indexedInstrument struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Cap    string `json:"cap"`
}

// Service implements the SearchService interface.
type Service struct {
	index  bleve.Index
	quotes interfaces.QuoteClient
	logger *common.Logger
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new search service with the registry indexed
// in memory.
func NewService(quotes interfaces.QuoteClient, opts ...ServiceOption) (*Service, error) {
	index, err := buildRegistryIndex(registry.Instruments())
	if err != nil {
		return nil, err
	}

	s := &Service{
		index:  index,
		quotes: quotes,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// buildRegistryIndex creates a memory-only index over the instrument
// universe.
func buildRegistryIndex(instruments []models.Instrument) (bleve.Index, error) {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textField := bleve.NewTextFieldMapping()
	textField.Store = true
	textField.Index = true
	docMapping.AddFieldMappingsAt("symbol", textField)
	docMapping.AddFieldMappingsAt("name", textField)
	docMapping.AddFieldMappingsAt("sector", textField)
	docMapping.AddFieldMappingsAt("cap", textField)
	indexMapping.AddDocumentMapping("_default", docMapping)

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	batch := index.NewBatch()
	for _, inst := range instruments {
		doc := indexedInstrument{
			Symbol: inst.Symbol,
			Name:   inst.Name,
			Sector: inst.Sector,
			Cap:    string(inst.Cap),
		}
		if err := batch.Index(inst.Symbol, doc); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", inst.Symbol, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	return index, nil
}

// Search queries the registry index first and falls back to the
// upstream symbol directory when nothing local matches.
func (s *Service) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	local, err := s.searchLocal(query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("Local search failed")
	}
	if len(local) > 0 {
		return local, nil
	}

	remote, err := s.quotes.SearchSymbols(ctx, query)
	if err != nil {
		if len(local) == 0 {
			return nil, fmt.Errorf("failed to search symbols: %w", err)
		}
		return local, nil
	}

	return remote, nil
}

// searchLocal queries the in-memory registry index. Exact and prefix
// symbol matches outrank name and sector hits.
func (s *Service) searchLocal(query string) ([]models.SearchResult, error) {
	lowered := strings.ToLower(query)

	exactSymbol := bleve.NewTermQuery(lowered)
	exactSymbol.SetField("symbol")
	exactSymbol.SetBoost(10.0)

	prefixSymbol := bleve.NewPrefixQuery(lowered)
	prefixSymbol.SetField("symbol")
	prefixSymbol.SetBoost(5.0)

	nameMatch := bleve.NewMatchQuery(query)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)

	nameWildcard := bleve.NewWildcardQuery("*" + lowered + "*")
	nameWildcard.SetField("name")
	nameWildcard.SetBoost(2.0)

	sectorMatch := bleve.NewMatchQuery(query)
	sectorMatch.SetField("sector")
	sectorMatch.SetBoost(1.0)

	searchQuery := bleve.NewDisjunctionQuery(
		exactSymbol,
		prefixSymbol,
		nameMatch,
		nameWildcard,
		sectorMatch,
	)

	req := bleve.NewSearchRequest(searchQuery)
	req.Fields = []string{"symbol", "name", "sector", "cap"}
	req.Size = maxResults

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query search index: %w", err)
	}

	results := make([]models.SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		results = append(results, models.SearchResult{
			Symbol:   fieldString(hit.Fields, "symbol"),
			Name:     fieldString(hit.Fields, "name"),
			Exchange: "Bursa Malaysia",
			Type:     "EQUITY",
			Sector:   fieldString(hit.Fields, "sector"),
		})
	}

	return results, nil
}

// fieldString safely extracts a stored string field from a hit.
func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// Close releases the in-memory index.
func (s *Service) Close() error {
	return s.index.Close()
}

// Ensure Service implements SearchService
var _ interfaces.SearchService = (*Service)(nil)
