package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wanhafiz/bursapulse/internal/services/market"
)

// handleMarketOverview handles GET /api/market/overview, serving the
// cached overview from the refresh scheduler, or a live fetch before the
// first cycle completes.
func (s *Server) handleMarketOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	overview := s.app.LatestOverview()
	if overview == nil {
		var err error
		overview, err = s.app.MarketService.GetMarketOverview(r.Context())
		if err != nil {
			WriteError(w, http.StatusBadGateway, "Market data unavailable")
			return
		}
	}

	WriteJSON(w, http.StatusOK, overview)
}

// handleMarketSectors handles GET /api/market/sectors. ?ranked=true
// returns only the displayable top sectors ordered by move magnitude.
func (s *Server) handleMarketSectors(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sectors := s.app.LatestSectors()
	if sectors == nil {
		overview := s.app.LatestOverview()
		if overview == nil {
			WriteError(w, http.StatusServiceUnavailable, "Market data not yet available")
			return
		}
		sectors = market.AggregateSectors(overview.Quotes, overview.Instruments)
	}

	if r.URL.Query().Get("ranked") == "true" {
		sectors = market.RankSectors(sectors)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": sectors,
	})
}

// routeMarketStocks dispatches /api/market/stocks/{symbol} and
// /api/market/stocks/{symbol}/chart.png.
func (s *Server) routeMarketStocks(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/chart.png") {
		s.handleStockChart(w, r)
		return
	}
	s.handleStockDetail(w, r)
}

// handleStockDetail handles GET /api/market/stocks/{symbol}.
func (s *Server) handleStockDetail(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/market/stocks/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	detail, err := s.app.MarketService.GetStockDetail(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			WriteError(w, http.StatusNotFound, "No data for symbol "+symbol)
			return
		}
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Stock detail fetch failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch stock detail")
		return
	}

	WriteJSON(w, http.StatusOK, detail)
}

// handleStockChart handles GET /api/market/stocks/{symbol}/chart.png.
func (s *Server) handleStockChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/market/stocks/", "/chart.png")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	detail, err := s.app.MarketService.GetStockDetail(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			WriteError(w, http.StatusNotFound, "No data for symbol "+symbol)
			return
		}
		WriteError(w, http.StatusBadGateway, "Failed to fetch stock detail")
		return
	}

	png, err := market.RenderPriceChart(detail)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Chart render failed")
		WriteError(w, http.StatusUnprocessableEntity, "Not enough data to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
