package forensic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wanhafiz/bursapulse/internal/common"
	"github.com/wanhafiz/bursapulse/internal/interfaces"
	"github.com/wanhafiz/bursapulse/internal/models"
)

const (
	// maxPromptSources caps how many search hits feed the extraction prompt.
	maxPromptSources = 5
	// maxSourceChars truncates each source document in the prompt.
	maxSourceChars = 800

	searchLimit = 8
)

// Service implements the ForensicService interface.
type Service struct {
	sources interfaces.SourceClient
	ai      interfaces.AIClient
	logger  *common.Logger
	timeout time.Duration
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTimeout overrides the acquisition deadline
func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NewService creates a new forensic service
func NewService(sources interfaces.SourceClient, ai interfaces.AIClient, opts ...ServiceOption) *Service {
	s := &Service{
		sources: sources,
		ai:      ai,
		logger:  common.NewSilentLogger(),
		timeout: common.ForensicTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetForensicRecord acquires the ownership record for an entity: web
// search for source material, AI extraction into a structured record.
// Acquisition failures and timeouts never surface as errors; they yield
// a degraded, empty-but-valid record tagged as such.
func (s *Service) GetForensicRecord(ctx context.Context, entity string) (*models.ForensicResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := fmt.Sprintf("%s Malaysia corporate ownership shareholders subsidiaries directors Bursa", entity)

	docs, err := s.sources.Search(ctx, query, searchLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("entity", entity).Msg("Forensic source search failed")
		return s.degradedResult(entity, "source search unavailable"), nil
	}
	if len(docs) == 0 {
		s.logger.Warn().Str("entity", entity).Msg("No forensic sources found")
		return s.degradedResult(entity, "no source material found"), nil
	}

	response, err := s.ai.GenerateContent(ctx, buildExtractionPrompt(entity, docs))
	if err != nil {
		s.logger.Warn().Err(err).Str("entity", entity).Msg("Forensic extraction failed")
		return s.degradedResult(entity, "extraction unavailable"), nil
	}

	record, ok := parseForensicResponse(response)
	if !ok {
		s.logger.Warn().Str("entity", entity).Msg("Unparseable forensic extraction output")
		return &models.ForensicResult{
			Record: emptyRecord(entity),
			State:  models.ForensicFallback,
		}, nil
	}

	normalizeRecord(record, entity, docs)

	s.logger.Info().
		Str("entity", entity).
		Int("shareholders", len(record.Shareholders)).
		Int("subsidiaries", len(record.Subsidiaries)).
		Int("directors", len(record.Directors)).
		Msg("Forensic record acquired")

	return &models.ForensicResult{
		Record: *record,
		State:  models.ForensicParsed,
	}, nil
}

// buildExtractionPrompt assembles the AI prompt from the best search hits.
func buildExtractionPrompt(entity string, docs []models.SourceDocument) string {
	var sb strings.Builder
	sb.WriteString("You are a corporate forensics analyst covering Bursa Malaysia.\n")
	sb.WriteString(fmt.Sprintf("Extract the ownership and control structure of %q from the sources below.\n\n", entity))
	sb.WriteString(`Respond with JSON only, in this exact shape:
{
  "entity": {"name": "", "stock_code": "", "market_cap": "", "is_listed": false, "country": "Malaysia"},
  "shareholders": [{"name": "", "percentage": 0, "type": "Individual|Corporate|Fund|Government", "is_listed": false, "stock_code": ""}],
  "subsidiaries": [{"name": "", "percentage": 0, "is_listed": false, "stock_code": ""}],
  "directors": [{"name": "", "position": "", "other_directorships": []}],
  "risk_flags": [],
  "sources": []
}
Only include facts supported by the sources. Use an empty list when nothing is known.

Sources:
`)

	n := len(docs)
	if n > maxPromptSources {
		n = maxPromptSources
	}
	for i, doc := range docs[:n] {
		content := doc.Markdown
		if len(content) > maxSourceChars {
			content = content[:maxSourceChars]
		}
		sb.WriteString(fmt.Sprintf("\n--- Source %d: %s (%s)\n%s\n", i+1, doc.Title, doc.URL, content))
	}

	return sb.String()
}

// parseForensicResponse parses the AI's JSON response, tolerating
// markdown code fences.
func parseForensicResponse(response string) (*models.ForensicRecord, bool) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var record models.ForensicRecord
	if err := json.Unmarshal([]byte(response), &record); err != nil {
		return nil, false
	}
	return &record, true
}

// normalizeRecord fills defaults into an extracted record. The
// extractor is untrusted: absent fields become empty values, never
// nils, and the entity identity always reflects what was asked for.
func normalizeRecord(record *models.ForensicRecord, entity string, docs []models.SourceDocument) {
	if record.Entity.Name == "" {
		record.Entity.Name = entity
	}
	if record.Entity.Country == "" {
		record.Entity.Country = "Malaysia"
	}
	if record.Shareholders == nil {
		record.Shareholders = []models.Shareholder{}
	}
	if record.Subsidiaries == nil {
		record.Subsidiaries = []models.Subsidiary{}
	}
	if record.Directors == nil {
		record.Directors = []models.Director{}
	}
	if record.RiskFlags == nil {
		record.RiskFlags = []string{}
	}
	if len(record.Sources) == 0 {
		record.Sources = make([]string, 0, len(docs))
		for _, doc := range docs {
			record.Sources = append(record.Sources, doc.URL)
		}
	}
}

// emptyRecord is the structurally valid zero record for an entity.
func emptyRecord(entity string) models.ForensicRecord {
	return models.ForensicRecord{
		Entity: models.ForensicEntity{
			Name:    entity,
			Country: "Malaysia",
		},
		Shareholders: []models.Shareholder{},
		Subsidiaries: []models.Subsidiary{},
		Directors:    []models.Director{},
		RiskFlags:    []string{},
		Sources:      []string{},
	}
}

// degradedResult builds the degraded-path result, flagging why real
// acquisition did not happen.
func (s *Service) degradedResult(entity, reason string) *models.ForensicResult {
	record := emptyRecord(entity)
	record.RiskFlags = []string{fmt.Sprintf("Ownership data unavailable: %s", reason)}
	return &models.ForensicResult{
		Record: record,
		State:  models.ForensicDegraded,
	}
}

// Ensure Service implements ForensicService
var _ interfaces.ForensicService = (*Service)(nil)
