package server

import (
	"net/http"
	"strings"
)

// handleNews handles GET /api/news?q={query}.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.NewsService == nil {
		WriteError(w, http.StatusServiceUnavailable, "News service not configured")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		query = "KLCI"
	}

	items, err := s.app.NewsService.GetNews(r.Context(), query)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "News fetch failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query": query,
		"items": items,
	})
}

// handleAnnouncements handles GET /api/announcements.
func (s *Server) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.NewsService == nil {
		WriteError(w, http.StatusServiceUnavailable, "News service not configured")
		return
	}

	announcements, err := s.app.NewsService.GetAnnouncements(r.Context())
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Announcement fetch failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"announcements": announcements,
	})
}
