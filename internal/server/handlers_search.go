package server

import (
	"net/http"
	"strings"
)

// handleSearch handles GET /api/search?q={query}.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	results, err := s.app.SearchService.Search(r.Context(), query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("Search failed")
		WriteError(w, http.StatusBadGateway, "Search failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}
