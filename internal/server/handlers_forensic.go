package server

import (
	"net/http"
	"strings"

	"github.com/wanhafiz/bursapulse/internal/models"
	"github.com/wanhafiz/bursapulse/internal/services/forensic"
)

// validGraphFilter reports whether the filter tag is one we accept.
func validGraphFilter(f models.GraphFilter) bool {
	switch f {
	case models.FilterAll, models.FilterListed, models.FilterRisk,
		models.FilterShareholders, models.FilterSubsidiaries:
		return true
	}
	return false
}

// handleForensicRecord handles GET /api/forensic/{entity} and acquires
// the ownership record for an entity. ?graph=true attaches the positioned
// graph, laid out with the optional ?filter= tag.
func (s *Server) handleForensicRecord(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.ForensicService == nil {
		WriteError(w, http.StatusServiceUnavailable, "Forensic service not configured")
		return
	}

	entity := strings.TrimSpace(PathParam(r, "/api/forensic/", ""))
	if entity == "" {
		WriteError(w, http.StatusBadRequest, "Entity name is required")
		return
	}

	result, err := s.app.ForensicService.GetForensicRecord(r.Context(), entity)
	if err != nil {
		s.logger.Warn().Err(err).Str("entity", entity).Msg("Forensic acquisition failed")
		WriteError(w, http.StatusBadGateway, "Forensic acquisition failed")
		return
	}

	response := map[string]interface{}{
		"record": result.Record,
		"state":  result.State,
	}

	if r.URL.Query().Get("graph") == "true" {
		filter := models.GraphFilter(r.URL.Query().Get("filter"))
		if filter == "" {
			filter = models.FilterAll
		}
		if !validGraphFilter(filter) {
			WriteError(w, http.StatusBadRequest, "Unknown graph filter")
			return
		}
		response["graph"] = forensic.BuildOwnershipGraph(result.Record, filter)
	}

	WriteJSON(w, http.StatusOK, response)
}

// graphRequest is the POST /api/forensic/graph body: a caller-supplied
// record laid out without re-acquisition.
type graphRequest struct {
	Record models.ForensicRecord `json:"record"`
	Filter models.GraphFilter    `json:"filter"`
}

// handleForensicGraph handles POST /api/forensic/graph.
func (s *Server) handleForensicGraph(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req graphRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Record.Entity.Name == "" {
		WriteError(w, http.StatusBadRequest, "Record entity name is required")
		return
	}
	if req.Filter == "" {
		req.Filter = models.FilterAll
	}
	if !validGraphFilter(req.Filter) {
		WriteError(w, http.StatusBadRequest, "Unknown graph filter")
		return
	}

	WriteJSON(w, http.StatusOK, forensic.BuildOwnershipGraph(req.Record, req.Filter))
}
