// Package models defines data structures for BursaPulse
package models

import (
	"time"
)

// CapBand is a coarse market-capitalisation classification.
type CapBand string

const (
	CapLarge   CapBand = "Large"
	CapMid     CapBand = "Mid"
	CapSmall   CapBand = "Small"
	CapPenny   CapBand = "Penny"
	CapUnknown CapBand = "Unknown"
)

// Instrument is one tradable security in the static Bursa universe.
type Instrument struct {
	Symbol string  `json:"symbol"` // Yahoo-style symbol, e.g. "1155.KL"
	Name   string  `json:"name"`
	Sector string  `json:"sector"`
	Cap    CapBand `json:"cap"`
}

// QuoteSnapshot is a point-in-time price/volume record for one instrument.
// It is replaced wholesale on each refresh cycle and never persisted.
type QuoteSnapshot struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Change       float64 `json:"change"`
	ChangePct    float64 `json:"change_pct"`
	Volume       int64   `json:"volume"`
	AvgVolume    float64 `json:"avg_volume,omitempty"` // mean daily volume over the fetched range; 0 = unavailable
	MarketCap    float64 `json:"market_cap,omitempty"` // price x shares outstanding; 0 = unavailable
	High52Week   float64 `json:"high_52_week,omitempty"`
	Low52Week    float64 `json:"low_52_week,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	ExchangeName string  `json:"exchange_name,omitempty"`
}

// IndexSnapshot holds the benchmark index headline numbers.
type IndexSnapshot struct {
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// MarketOverview is one refresh cycle's view of the whole universe.
// Quotes is a best-effort subset of Instruments: a missing quote for a
// known instrument means its upstream fetch failed this cycle.
type MarketOverview struct {
	Index       *IndexSnapshot  `json:"index,omitempty"`
	Quotes      []QuoteSnapshot `json:"quotes"`
	Instruments []Instrument    `json:"instruments"`
	AsOf        time.Time       `json:"as_of"`
}

// SectorSummary is the per-sector momentum rollup, recomputed every cycle.
type SectorSummary struct {
	Sector       string     `json:"sector"`
	AvgChangePct float64    `json:"avg_change_pct"`
	MemberCount  int        `json:"member_count"`
	TopVolume    Instrument `json:"top_volume"`
}

// ChartSeries holds intraday/daily bars for one symbol.
type ChartSeries struct {
	Timestamps []int64   `json:"timestamps"`
	Open       []float64 `json:"open"`
	High       []float64 `json:"high"`
	Low        []float64 `json:"low"`
	Close      []float64 `json:"close"`
	Volume     []int64   `json:"volume"`
}

// ChartMeta holds the summary fields of an upstream chart response.
type ChartMeta struct {
	Symbol             string  `json:"symbol"`
	ShortName          string  `json:"short_name"`
	Currency           string  `json:"currency"`
	ExchangeName       string  `json:"exchange_name"`
	RegularMarketPrice float64 `json:"regular_market_price"`
	PreviousClose      float64 `json:"previous_close"`
	RegularMarketVol   int64   `json:"regular_market_volume"`
	SharesOutstanding  float64 `json:"shares_outstanding"`
	High52Week         float64 `json:"high_52_week"`
	Low52Week          float64 `json:"low_52_week"`
}

// ChartResult is one decoded upstream chart payload.
type ChartResult struct {
	Meta   ChartMeta   `json:"meta"`
	Series ChartSeries `json:"series"`
}

// StockDetail is the single-symbol detail view.
type StockDetail struct {
	Quote      QuoteSnapshot `json:"quote"`
	Chart      ChartSeries   `json:"chart"`
	Instrument *Instrument   `json:"instrument,omitempty"`
}

// SearchResult is one instrument search hit.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`
}
