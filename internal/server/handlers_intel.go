package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wanhafiz/bursapulse/internal/services/market"
)

// handleIntelAnalyze handles POST /api/intel/analyze, a scored AI
// analysis for one stock.
func (s *Server) handleIntelAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.IntelService == nil {
		WriteError(w, http.StatusServiceUnavailable, "Intel service not configured")
		return
	}

	var req struct {
		Symbol      string `json:"symbol"`
		NewsContext string `json:"news_context"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Symbol = strings.TrimSpace(req.Symbol)
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	detail, err := s.app.MarketService.GetStockDetail(r.Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			WriteError(w, http.StatusNotFound, "No data for symbol "+req.Symbol)
			return
		}
		WriteError(w, http.StatusBadGateway, "Failed to fetch stock detail")
		return
	}

	analysis, err := s.app.IntelService.AnalyzeStock(r.Context(), detail, req.NewsContext)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", req.Symbol).Msg("Stock analysis failed")
		WriteError(w, http.StatusBadGateway, "Analysis failed")
		return
	}

	WriteJSON(w, http.StatusOK, analysis)
}

// handleIntelSuggestions handles GET /api/intel/suggestions, the daily
// watch list generated from the cached overview.
func (s *Server) handleIntelSuggestions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.IntelService == nil {
		WriteError(w, http.StatusServiceUnavailable, "Intel service not configured")
		return
	}

	overview := s.app.LatestOverview()
	if overview == nil {
		WriteError(w, http.StatusServiceUnavailable, "Market data not yet available")
		return
	}

	set, err := s.app.IntelService.DailySuggestions(r.Context(), overview)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Suggestion generation failed")
		return
	}

	WriteJSON(w, http.StatusOK, set)
}

// handleIntelMacro handles POST /api/intel/macro.
func (s *Server) handleIntelMacro(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.IntelService == nil {
		WriteError(w, http.StatusServiceUnavailable, "Intel service not configured")
		return
	}

	var req struct {
		Context string `json:"context"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	outlook, err := s.app.IntelService.MacroAnalysis(r.Context(), req.Context)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Macro analysis failed")
		WriteError(w, http.StatusBadGateway, "Macro analysis failed")
		return
	}

	WriteJSON(w, http.StatusOK, outlook)
}
