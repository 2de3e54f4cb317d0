package models

// ForensicEntity identifies the corporate entity at the centre of an
// ownership investigation.
type ForensicEntity struct {
	Name      string `json:"name"`
	StockCode string `json:"stock_code,omitempty"`
	MarketCap string `json:"market_cap,omitempty"`
	IsListed  bool   `json:"is_listed"`
	Country   string `json:"country"`
}

// Shareholder is one holder of the entity's equity.
type Shareholder struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Type       string  `json:"type"` // Individual, Corporate, Fund, Government
	IsListed   bool    `json:"is_listed"`
	StockCode  string  `json:"stock_code,omitempty"`
}

// Subsidiary is one entity the centre entity holds equity in.
type Subsidiary struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	IsListed   bool    `json:"is_listed"`
	StockCode  string  `json:"stock_code,omitempty"`
}

// Director is one board member of the entity.
type Director struct {
	Name               string   `json:"name"`
	Position           string   `json:"position"`
	OtherDirectorships []string `json:"other_directorships,omitempty"`
}

// ForensicRecord is the externally supplied ownership/control structure
// for a corporate entity. It arrives from an untrusted collaborator;
// absent optional fields are filled with defaults on ingest.
type ForensicRecord struct {
	Entity       ForensicEntity `json:"entity"`
	Shareholders []Shareholder  `json:"shareholders"`
	Subsidiaries []Subsidiary   `json:"subsidiaries"`
	Directors    []Director     `json:"directors"`
	RiskFlags    []string       `json:"risk_flags"`
	Sources      []string       `json:"sources"`
}

// ForensicState tags how a ForensicRecord was obtained. A degraded or
// fallback record is structurally valid but carries no verified content,
// and must never be presented as if it were parsed from real sources.
type ForensicState string

const (
	// ForensicParsed means the record was extracted from source material.
	ForensicParsed ForensicState = "parsed"
	// ForensicFallback means the extractor returned unusable output and a
	// default-empty record was substituted.
	ForensicFallback ForensicState = "fallback"
	// ForensicDegraded means acquisition failed or timed out and the
	// degraded path produced the record.
	ForensicDegraded ForensicState = "degraded"
)

// ForensicResult pairs a record with its acquisition state.
type ForensicResult struct {
	Record ForensicRecord `json:"record"`
	State  ForensicState  `json:"state"`
}
