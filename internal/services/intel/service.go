// Package intel generates AI market intelligence: per-stock analysis,
// daily suggestions, and macro outlooks. All model output is treated as
// untrusted and validated structurally before use.
package intel

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

// Service implements the IntelService interface.
type Service struct {
	ai     interfaces.AIClient
	logger *common.Logger
	now    func() time.Time
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new intel service
func NewService(ai interfaces.AIClient, opts ...ServiceOption) *Service {
	s := &Service{
		ai:     ai,
		logger: common.NewSilentLogger(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// stripCodeFences removes markdown code fences from a model response.
func stripCodeFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// clampScore forces a model-supplied score into the 0-100 range.
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AnalyzeStock generates a scored analysis for one stock, grounded in
// its current quote and any supplied news context.
func (s *Service) AnalyzeStock(ctx context.Context, detail *models.StockDetail, newsContext string) (*models.StockAnalysis, error) {
	if detail == nil {
		return nil, fmt.Errorf("no stock detail to analyze")
	}

	prompt := buildAnalysisPrompt(detail, newsContext)

	response, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", detail.Quote.Symbol, err)
	}

	var analysis models.StockAnalysis
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis for %s: %w", detail.Quote.Symbol, err)
	}

	analysis.OpportunityScore = clampScore(analysis.OpportunityScore)
	analysis.ProbabilityPositive = clampScore(analysis.ProbabilityPositive)
	analysis.Confidence = clampScore(analysis.Confidence)
	analysis.TrapProbability = clampScore(analysis.TrapProbability)
	if analysis.Cards == nil {
		analysis.Cards = []models.AnalysisCard{}
	}
	for i := range analysis.Cards {
		analysis.Cards[i].Probability = clampScore(analysis.Cards[i].Probability)
	}
	analysis.GeneratedAt = s.now()

	s.logger.Info().
		Str("symbol", detail.Quote.Symbol).
		Int("opportunity_score", analysis.OpportunityScore).
		Bool("trap_flag", analysis.TrapFlag).
		Msg("Stock analysis generated")

	return &analysis, nil
}

// DailySuggestions generates the daily watch list from overview data.
// An unusable model response yields a valid empty set rather than an
// error so the dashboard always has something to render.
func (s *Service) DailySuggestions(ctx context.Context, overview *models.MarketOverview) (*models.SuggestionSet, error) {
	if overview == nil || len(overview.Quotes) == 0 {
		return s.emptySuggestions("No market data available for analysis"), nil
	}

	prompt := buildSuggestionsPrompt(overview)

	response, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Daily suggestions generation failed")
		return s.emptySuggestions("Analysis unavailable"), nil
	}

	var set models.SuggestionSet
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &set); err != nil {
		s.logger.Warn().Err(err).Msg("Unparseable daily suggestions output")
		return s.emptySuggestions("Analysis unavailable"), nil
	}

	if set.Suggestions == nil {
		set.Suggestions = []models.DailySuggestion{}
	}
	if set.TrapList == nil {
		set.TrapList = []models.TrapStock{}
	}
	for i := range set.Suggestions {
		set.Suggestions[i].Confidence = clampScore(set.Suggestions[i].Confidence)
		set.Suggestions[i].OpportunityScore = clampScore(set.Suggestions[i].OpportunityScore)
	}
	for i := range set.TrapList {
		set.TrapList[i].TrapProbability = clampScore(set.TrapList[i].TrapProbability)
	}
	set.GeneratedAt = s.now()

	s.logger.Info().
		Int("suggestions", len(set.Suggestions)).
		Int("traps", len(set.TrapList)).
		Msg("Daily suggestions generated")

	return &set, nil
}

// MacroAnalysis generates the macro factor outlook from a free-form
// context block (news headlines, index moves).
func (s *Service) MacroAnalysis(ctx context.Context, marketContext string) (*models.MacroOutlook, error) {
	prompt := buildMacroPrompt(marketContext)

	response, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate macro analysis: %w", err)
	}

	var outlook models.MacroOutlook
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &outlook); err != nil {
		return nil, fmt.Errorf("failed to parse macro analysis: %w", err)
	}

	if outlook.Factors == nil {
		outlook.Factors = []models.MacroFactor{}
	}
	for i := range outlook.Factors {
		outlook.Factors[i].ImpactStrength = clampScore(outlook.Factors[i].ImpactStrength)
	}
	outlook.GeneratedAt = s.now()

	return &outlook, nil
}

// emptySuggestions is the structurally valid zero suggestion set.
func (s *Service) emptySuggestions(summary string) *models.SuggestionSet {
	return &models.SuggestionSet{
		Suggestions:   []models.DailySuggestion{},
		TrapList:      []models.TrapStock{},
		MarketSummary: summary,
		GeneratedAt:   s.now(),
	}
}

// Ensure Service implements IntelService
var _ interfaces.IntelService = (*Service)(nil)
