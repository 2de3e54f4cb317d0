package models

import "time"

// AnalysisCard is one scored dimension of a stock analysis.
type AnalysisCard struct {
	Category    string `json:"category"`
	Icon        string `json:"icon"` // positive, neutral, negative
	Summary     string `json:"summary"`
	Probability int    `json:"probability"` // 0-100
}

// RiskMetrics holds the 0-100 risk dimensions of an analysis.
type RiskMetrics struct {
	Volatility         int    `json:"volatility"`
	LiquidityRisk      int    `json:"liquidity_risk"`
	GovernanceRisk     int    `json:"governance_risk"`
	StructuralExposure int    `json:"structural_exposure"`
	MacroSensitivity   int    `json:"macro_sensitivity"`
	MaxDrawdown        int    `json:"max_drawdown"`
	RiskTrend          string `json:"risk_trend"` // Improving, Stable, Deteriorating
}

// StockAnalysis is the AI-generated assessment of one stock. The content
// is untrusted: structurally validated, never assumed correct.
type StockAnalysis struct {
	OpportunityScore    int            `json:"opportunity_score"`
	ProbabilityPositive int            `json:"probability_positive"`
	Confidence          int            `json:"confidence"`
	RiskLevel           string         `json:"risk_level"`
	SuggestedBias       string         `json:"suggested_bias"`
	HiddenRadar         bool           `json:"hidden_radar"`
	TrapFlag            bool           `json:"trap_flag"`
	TrapProbability     int            `json:"trap_probability"`
	Cards               []AnalysisCard `json:"cards"`
	RiskMetrics         RiskMetrics    `json:"risk_metrics"`
	KeyReason           string         `json:"key_reason"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// DailySuggestion is one AI-picked stock to watch today.
type DailySuggestion struct {
	Symbol           string `json:"symbol"`
	Name             string `json:"name"`
	Confidence       int    `json:"confidence"`
	RiskLevel        string `json:"risk_level"`
	Bias             string `json:"bias"`
	KeyReason        string `json:"key_reason"`
	RiskTriggers     string `json:"risk_triggers"`
	OpportunityScore int    `json:"opportunity_score"`
	HiddenRadar      bool   `json:"hidden_radar"`
	TrapFlag         bool   `json:"trap_flag"`
}

// TrapStock flags a stock showing manipulation patterns.
type TrapStock struct {
	Symbol           string `json:"symbol"`
	Name             string `json:"name"`
	TrapProbability  int    `json:"trap_probability"`
	ManipulationRisk string `json:"manipulation_risk"`
	Reason           string `json:"reason"`
}

// SuggestionSet is the daily watch list plus trap list.
type SuggestionSet struct {
	Suggestions   []DailySuggestion `json:"suggestions"`
	TrapList      []TrapStock       `json:"trap_list"`
	MarketSummary string            `json:"market_summary"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// MacroFactor is one macro driver and its assessed market impact.
type MacroFactor struct {
	Factor         string   `json:"factor"`
	Direction      string   `json:"direction"` // Bullish, Bearish, Neutral
	ImpactStrength int      `json:"impact_strength"`
	SectorExposure []string `json:"sector_exposure"`
	TimeHorizon    string   `json:"time_horizon"`
	Summary        string   `json:"summary"`
}

// MacroOutlook is the macro factor set with an overall bias.
type MacroOutlook struct {
	Factors        []MacroFactor `json:"factors"`
	OverallBias    string        `json:"overall_bias"`
	OverallSummary string        `json:"overall_summary"`
	GeneratedAt    time.Time     `json:"generated_at"`
}
