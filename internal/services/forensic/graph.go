// Package forensic acquires corporate ownership records and lays them
// out as positioned graphs.
package forensic

import (
	"fmt"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// maxDirectorNodes caps rendered directors. A display-density limit
// only: the full board stays on the ForensicRecord.
const maxDirectorNodes = 4

// majorShareholderPct is the threshold above which an unlisted
// shareholder counts as a major holder.
const majorShareholderPct = 20.0

const centerNodeID = "center"

// bandX evenly spaces count nodes across the 10-90 width band.
func bandX(count, index int) float64 {
	step := 80.0 / float64(count)
	return 10.0 + step*float64(index) + step/2.0
}

// shareholderY alternates a small vertical offset so adjacent labels do
// not overlap in dense bands.
func shareholderY(index int) float64 {
	if index%2 == 1 {
		return 21.0
	}
	return 15.0
}

// directorSlot returns the fixed side position for a rendered director:
// the first two on the left edge, the next two on the right.
func directorSlot(index int) (x, y float64) {
	slots := [maxDirectorNodes][2]float64{
		{12, 35},
		{12, 60},
		{88, 35},
		{88, 60},
	}
	return slots[index][0], slots[index][1]
}

// shareholderKind classifies a shareholder node. Listed holders render
// as minor nodes regardless of stake so their listing badge carries the
// emphasis instead of size.
func shareholderKind(sh models.Shareholder) models.NodeKind {
	if sh.Percentage > majorShareholderPct && !sh.IsListed {
		return models.NodeMajorShareholder
	}
	return models.NodeMinorShareholder
}

// BuildOwnershipGraph lays one forensic record out on a 0-100 plane and
// applies the view filter. The same record and filter always produce
// the same graph; there is no randomness or layout physics.
func BuildOwnershipGraph(rec models.ForensicRecord, filter models.GraphFilter) models.OwnershipGraph {
	nodes := make([]models.GraphNode, 0, 1+len(rec.Shareholders)+len(rec.Subsidiaries)+maxDirectorNodes)
	edges := make([]models.GraphEdge, 0, len(rec.Shareholders)+len(rec.Subsidiaries)+maxDirectorNodes)

	nodes = append(nodes, models.GraphNode{
		ID:        centerNodeID,
		Label:     rec.Entity.Name,
		Kind:      models.NodeCenter,
		X:         50,
		Y:         50,
		StockCode: rec.Entity.StockCode,
		IsListed:  rec.Entity.IsListed,
	})

	for i, sh := range rec.Shareholders {
		id := fmt.Sprintf("sh-%d", i)
		nodes = append(nodes, models.GraphNode{
			ID:         id,
			Label:      sh.Name,
			Kind:       shareholderKind(sh),
			X:          bandX(len(rec.Shareholders), i),
			Y:          shareholderY(i),
			Percentage: sh.Percentage,
			StockCode:  sh.StockCode,
			IsListed:   sh.IsListed,
		})
		edges = append(edges, models.GraphEdge{
			From:       id,
			To:         centerNodeID,
			Label:      sh.Type,
			Percentage: sh.Percentage,
		})
	}

	for i, sub := range rec.Subsidiaries {
		id := fmt.Sprintf("sub-%d", i)
		nodes = append(nodes, models.GraphNode{
			ID:         id,
			Label:      sub.Name,
			Kind:       models.NodeSubsidiary,
			X:          bandX(len(rec.Subsidiaries), i),
			Y:          80,
			Percentage: sub.Percentage,
			StockCode:  sub.StockCode,
			IsListed:   sub.IsListed,
		})
		edges = append(edges, models.GraphEdge{
			From:       centerNodeID,
			To:         id,
			Percentage: sub.Percentage,
		})
	}

	for i, dir := range rec.Directors {
		if i >= maxDirectorNodes {
			break
		}
		id := fmt.Sprintf("dir-%d", i)
		x, y := directorSlot(i)
		nodes = append(nodes, models.GraphNode{
			ID:    id,
			Label: dir.Name,
			Kind:  models.NodeDirector,
			X:     x,
			Y:     y,
		})
		edges = append(edges, models.GraphEdge{
			From:  id,
			To:    centerNodeID,
			Label: dir.Position,
		})
	}

	return applyFilter(models.OwnershipGraph{Nodes: nodes, Edges: edges}, filter)
}

// keepNode decides whether a node survives the filter. The centre node
// always does.
func keepNode(node models.GraphNode, filter models.GraphFilter) bool {
	if node.Kind == models.NodeCenter {
		return true
	}

	switch filter {
	case models.FilterListed:
		return node.IsListed
	case models.FilterRisk:
		// concentrated unlisted control: major holders plus opaque arms
		return node.Kind == models.NodeMajorShareholder ||
			(node.Kind == models.NodeSubsidiary && !node.IsListed)
	case models.FilterShareholders:
		return node.Kind == models.NodeMajorShareholder || node.Kind == models.NodeMinorShareholder
	case models.FilterSubsidiaries:
		return node.Kind == models.NodeSubsidiary
	default:
		return true
	}
}

// applyFilter computes the induced subgraph: kept nodes by predicate,
// then exactly the edges whose both endpoints survived.
func applyFilter(g models.OwnershipGraph, filter models.GraphFilter) models.OwnershipGraph {
	kept := make([]models.GraphNode, 0, len(g.Nodes))
	keptIDs := make(map[string]bool, len(g.Nodes))
	for _, node := range g.Nodes {
		if keepNode(node, filter) {
			kept = append(kept, node)
			keptIDs[node.ID] = true
		}
	}

	edges := make([]models.GraphEdge, 0, len(g.Edges))
	for _, edge := range g.Edges {
		if keptIDs[edge.From] && keptIDs[edge.To] {
			edges = append(edges, edge)
		}
	}

	return models.OwnershipGraph{Nodes: kept, Edges: edges}
}
