package intel

import (
	"fmt"
	"strings"

	"github.com/wanhafiz/bursapulse/internal/models"
	"github.com/wanhafiz/bursapulse/internal/services/market"
)

// buildAnalysisPrompt assembles the per-stock analysis prompt.
func buildAnalysisPrompt(detail *models.StockDetail, newsContext string) string {
	q := detail.Quote

	var sb strings.Builder
	sb.WriteString("You are an equity analyst covering Bursa Malaysia. Analyze this stock.\n\n")
	sb.WriteString(fmt.Sprintf("Symbol: %s (%s)\n", q.Symbol, q.Name))
	sb.WriteString(fmt.Sprintf("Price: %.3f %s, change %.2f%%\n", q.Price, q.Currency, q.ChangePct))
	sb.WriteString(fmt.Sprintf("Volume: %d (ratio vs average: %s)\n", q.Volume, market.FormatVolumeRatio(float64(q.Volume), q.AvgVolume)))
	if q.High52Week > 0 {
		sb.WriteString(fmt.Sprintf("52-week range: %.3f - %.3f\n", q.Low52Week, q.High52Week))
	}
	if detail.Instrument != nil {
		sb.WriteString(fmt.Sprintf("Sector: %s, cap band: %s\n", detail.Instrument.Sector, detail.Instrument.Cap))
	}
	if newsContext != "" {
		sb.WriteString("\nRecent news context:\n")
		sb.WriteString(newsContext)
		sb.WriteString("\n")
	}

	sb.WriteString(`
Respond with JSON only:
{
  "opportunity_score": 0-100,
  "probability_positive": 0-100,
  "confidence": 0-100,
  "risk_level": "Low|Medium|High",
  "suggested_bias": "Long|Short|Avoid|Watch",
  "hidden_radar": bool (true when an under-followed stock shows unusual accumulation),
  "trap_flag": bool (true when the move looks like a pump or operator play),
  "trap_probability": 0-100,
  "cards": [{"category": "Momentum|Volume|Valuation|News|Structure", "icon": "positive|neutral|negative", "summary": "", "probability": 0-100}],
  "risk_metrics": {"volatility": 0-100, "liquidity_risk": 0-100, "governance_risk": 0-100, "structural_exposure": 0-100, "macro_sensitivity": 0-100, "max_drawdown": 0-100, "risk_trend": "Improving|Stable|Deteriorating"},
  "key_reason": "one sentence"
}`)

	return sb.String()
}

// buildSuggestionsPrompt assembles the daily watch-list prompt from the
// latest overview.
func buildSuggestionsPrompt(overview *models.MarketOverview) string {
	var sb strings.Builder
	sb.WriteString("You are an equity analyst covering Bursa Malaysia. From today's quotes, pick up to 5 stocks worth watching and flag up to 3 likely trap stocks.\n\n")

	if overview.Index != nil {
		sb.WriteString(fmt.Sprintf("KLCI: %.2f (%+.2f%%)\n", overview.Index.Price, overview.Index.ChangePct))
	}

	sb.WriteString("\nQuotes:\n")
	for _, q := range overview.Quotes {
		sb.WriteString(fmt.Sprintf("%s %s: %.3f (%+.2f%%), vol %d, avg vol %.0f\n",
			q.Symbol, q.Name, q.Price, q.ChangePct, q.Volume, q.AvgVolume))
	}

	sb.WriteString(`
Respond with JSON only:
{
  "suggestions": [{"symbol": "", "name": "", "confidence": 0-100, "risk_level": "Low|Medium|High", "bias": "Long|Short|Watch", "key_reason": "", "risk_triggers": "", "opportunity_score": 0-100, "hidden_radar": bool, "trap_flag": bool}],
  "trap_list": [{"symbol": "", "name": "", "trap_probability": 0-100, "manipulation_risk": "Low|Medium|High", "reason": ""}],
  "market_summary": "2-3 sentences on today's tone"
}`)

	return sb.String()
}

// buildMacroPrompt assembles the macro outlook prompt.
func buildMacroPrompt(marketContext string) string {
	var sb strings.Builder
	sb.WriteString("You are a macro strategist covering the Malaysian market. Assess the macro factors currently driving Bursa Malaysia.\n")
	if marketContext != "" {
		sb.WriteString("\nContext:\n")
		sb.WriteString(marketContext)
		sb.WriteString("\n")
	}

	sb.WriteString(`
Respond with JSON only:
{
  "factors": [{"factor": "", "direction": "Bullish|Bearish|Neutral", "impact_strength": 0-100, "sector_exposure": [""], "time_horizon": "Short|Medium|Long", "summary": ""}],
  "overall_bias": "Bullish|Bearish|Neutral",
  "overall_summary": "2-3 sentences"
}`)

	return sb.String()
}
