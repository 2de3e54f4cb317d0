package models

// NodeKind classifies a node in an ownership graph.
type NodeKind string

const (
	NodeCenter           NodeKind = "center"
	NodeMajorShareholder NodeKind = "major_shareholder"
	NodeMinorShareholder NodeKind = "minor_shareholder"
	NodeSubsidiary       NodeKind = "subsidiary"
	NodeDirector         NodeKind = "director"
)

// GraphFilter selects which ownership-graph nodes to keep. The centre
// node always survives filtering.
type GraphFilter string

const (
	FilterAll          GraphFilter = "all"
	FilterListed       GraphFilter = "listed"
	FilterRisk         GraphFilter = "risk"
	FilterShareholders GraphFilter = "shareholders"
	FilterSubsidiaries GraphFilter = "subsidiaries"
)

// GraphNode is one positioned node on a normalised 0-100 coordinate plane.
type GraphNode struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Kind       NodeKind `json:"kind"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Percentage float64  `json:"percentage,omitempty"`
	StockCode  string   `json:"stock_code,omitempty"`
	IsListed   bool     `json:"is_listed"`
}

// GraphEdge connects two nodes of the same graph instance. Both endpoints
// are guaranteed to exist among the graph's nodes; filtering recomputes
// edges so a dangling edge can never be emitted.
type GraphEdge struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Label      string  `json:"label,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
}

// OwnershipGraph is a positioned node-edge set built from one
// ForensicRecord. It is a value object owned by the caller; every build
// recomputes it fresh from its inputs.
type OwnershipGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
