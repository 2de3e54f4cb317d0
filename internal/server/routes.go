package server

import (
	"net/http"
	"time"

	"github.com/wanhafiz/bursapulse/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Market Data
	mux.HandleFunc("/api/market/overview", s.handleMarketOverview)
	mux.HandleFunc("/api/market/sectors", s.handleMarketSectors)
	mux.HandleFunc("/api/market/stocks/", s.routeMarketStocks)

	// Search
	mux.HandleFunc("/api/search", s.handleSearch)

	// News
	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/announcements", s.handleAnnouncements)

	// Forensic
	mux.HandleFunc("/api/forensic/graph", s.handleForensicGraph)
	mux.HandleFunc("/api/forensic/", s.handleForensicRecord)

	// Intelligence
	mux.HandleFunc("/api/intel/analyze", s.handleIntelAnalyze)
	mux.HandleFunc("/api/intel/suggestions", s.handleIntelSuggestions)
	mux.HandleFunc("/api/intel/macro", s.handleIntelMacro)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	overview := s.app.LatestOverview()
	status := map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
		"market_data": map[string]interface{}{
			"cached": overview != nil,
		},
	}
	if overview != nil {
		status["market_data"].(map[string]interface{})["as_of"] = overview.AsOf
		status["market_data"].(map[string]interface{})["quotes"] = len(overview.Quotes)
	}

	WriteJSON(w, http.StatusOK, status)
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"full":    common.GetFullVersion(),
	})
}
