package forensic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanhafiz/bursapulse/internal/models"
)

func recordFixture() models.ForensicRecord {
	return models.ForensicRecord{
		Entity: models.ForensicEntity{
			Name:      "Sapura Energy Berhad",
			StockCode: "5218",
			IsListed:  true,
			Country:   "Malaysia",
		},
		Shareholders: []models.Shareholder{
			{Name: "PNB", Percentage: 40, Type: "Government", IsListed: false},
			{Name: "Sapura Holdings", Percentage: 25, Type: "Corporate", IsListed: false},
			{Name: "EPF", Percentage: 10, Type: "Fund", IsListed: false},
		},
		Subsidiaries: []models.Subsidiary{
			{Name: "Sapura Drilling", Percentage: 100, IsListed: false},
			{Name: "Sapura Offshore", Percentage: 70, IsListed: true, StockCode: "5210"},
		},
		Directors: []models.Director{
			{Name: "Director One", Position: "Chairman"},
			{Name: "Director Two", Position: "CEO"},
			{Name: "Director Three", Position: "Independent"},
			{Name: "Director Four", Position: "Independent"},
			{Name: "Director Five", Position: "Non-Executive"},
		},
	}
}

func nodeIDs(g models.OwnershipGraph) map[string]models.GraphNode {
	out := make(map[string]models.GraphNode, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n
	}
	return out
}

func TestBuildOwnershipGraphNodeCount(t *testing.T) {
	rec := recordFixture()
	g := BuildOwnershipGraph(rec, models.FilterAll)

	// center + shareholders + subsidiaries + min(4, directors)
	assert.Len(t, g.Nodes, 1+len(rec.Shareholders)+len(rec.Subsidiaries)+maxDirectorNodes)
	assert.Len(t, g.Edges, len(rec.Shareholders)+len(rec.Subsidiaries)+maxDirectorNodes)
}

func TestBuildOwnershipGraphEndpointsExist(t *testing.T) {
	g := BuildOwnershipGraph(recordFixture(), models.FilterAll)

	ids := nodeIDs(g)
	for _, e := range g.Edges {
		assert.Contains(t, ids, e.From)
		assert.Contains(t, ids, e.To)
	}
}

func TestBuildOwnershipGraphCenter(t *testing.T) {
	g := BuildOwnershipGraph(recordFixture(), models.FilterAll)

	center, ok := nodeIDs(g)[centerNodeID]
	require.True(t, ok)
	assert.Equal(t, models.NodeCenter, center.Kind)
	assert.Equal(t, "Sapura Energy Berhad", center.Label)
	assert.Equal(t, 50.0, center.X)
	assert.Equal(t, 50.0, center.Y)
}

func TestBuildOwnershipGraphShareholderKinds(t *testing.T) {
	rec := recordFixture()
	rec.Shareholders = append(rec.Shareholders, models.Shareholder{
		Name: "Listed Parent Berhad", Percentage: 35, Type: "Corporate", IsListed: true, StockCode: "1234",
	})

	g := BuildOwnershipGraph(rec, models.FilterAll)
	ids := nodeIDs(g)

	assert.Equal(t, models.NodeMajorShareholder, ids["sh-0"].Kind, "40% unlisted is major")
	assert.Equal(t, models.NodeMinorShareholder, ids["sh-2"].Kind, "10% is minor")
	assert.Equal(t, models.NodeMinorShareholder, ids["sh-3"].Kind, "listed holders render as minor regardless of stake")
}

func TestBuildOwnershipGraphLayout(t *testing.T) {
	rec := recordFixture()
	g := BuildOwnershipGraph(rec, models.FilterAll)
	ids := nodeIDs(g)

	// three shareholders: x = 10 + (80/3)*i + (80/3)/2
	step := 80.0 / 3.0
	assert.InDelta(t, 10+step/2, ids["sh-0"].X, 1e-9)
	assert.InDelta(t, 10+step+step/2, ids["sh-1"].X, 1e-9)
	assert.InDelta(t, 10+2*step+step/2, ids["sh-2"].X, 1e-9)
	assert.Equal(t, 15.0, ids["sh-0"].Y)
	assert.Equal(t, 21.0, ids["sh-1"].Y, "odd slots take the alternating offset")
	assert.Equal(t, 15.0, ids["sh-2"].Y)

	assert.Equal(t, 80.0, ids["sub-0"].Y)
	assert.Equal(t, 12.0, ids["dir-0"].X)
	assert.Equal(t, 35.0, ids["dir-0"].Y)
	assert.Equal(t, 88.0, ids["dir-3"].X)
	assert.Equal(t, 60.0, ids["dir-3"].Y)
}

func TestBuildOwnershipGraphDirectorCap(t *testing.T) {
	g := BuildOwnershipGraph(recordFixture(), models.FilterAll)

	directors := 0
	for _, n := range g.Nodes {
		if n.Kind == models.NodeDirector {
			directors++
		}
	}
	assert.Equal(t, maxDirectorNodes, directors, "fifth director is not rendered")
}

func TestBuildOwnershipGraphDeterministic(t *testing.T) {
	rec := recordFixture()
	first := BuildOwnershipGraph(rec, models.FilterAll)
	second := BuildOwnershipGraph(rec, models.FilterAll)
	assert.Equal(t, first, second)
}

func TestBuildOwnershipGraphShareholdersFilter(t *testing.T) {
	rec := models.ForensicRecord{
		Entity: models.ForensicEntity{Name: "Target Berhad", IsListed: true},
		Shareholders: []models.Shareholder{
			{Name: "A", Percentage: 40, Type: "Corporate"},
			{Name: "B", Percentage: 25, Type: "Fund"},
			{Name: "C", Percentage: 10, Type: "Individual"},
		},
	}

	g := BuildOwnershipGraph(rec, models.FilterShareholders)

	require.Len(t, g.Nodes, 4)
	require.Len(t, g.Edges, 3)
	for _, e := range g.Edges {
		assert.Equal(t, centerNodeID, e.To, "all edges point shareholder to center")
	}
}

func TestBuildOwnershipGraphListedFilter(t *testing.T) {
	g := BuildOwnershipGraph(recordFixture(), models.FilterListed)
	ids := nodeIDs(g)

	assert.Contains(t, ids, centerNodeID, "center always survives")
	assert.Contains(t, ids, "sub-1")
	assert.NotContains(t, ids, "sh-0", "unlisted holders drop out")
	assert.NotContains(t, ids, "dir-0")
}

func TestBuildOwnershipGraphRiskFilter(t *testing.T) {
	g := BuildOwnershipGraph(recordFixture(), models.FilterRisk)
	ids := nodeIDs(g)

	assert.Contains(t, ids, "sh-0", "40% major holder is a risk node")
	assert.Contains(t, ids, "sh-1", "25% major holder is a risk node")
	assert.NotContains(t, ids, "sh-2", "10% minor holder is not")
	assert.Contains(t, ids, "sub-0", "unlisted subsidiary is a risk node")
	assert.NotContains(t, ids, "sub-1", "listed subsidiary is not")
}

func TestBuildOwnershipGraphFilterInducedSubgraph(t *testing.T) {
	rec := recordFixture()
	full := BuildOwnershipGraph(rec, models.FilterAll)

	for _, filter := range []models.GraphFilter{
		models.FilterListed, models.FilterRisk, models.FilterShareholders, models.FilterSubsidiaries,
	} {
		g := BuildOwnershipGraph(rec, filter)
		ids := nodeIDs(g)

		want := make([]models.GraphEdge, 0)
		for _, e := range full.Edges {
			if _, okFrom := ids[e.From]; !okFrom {
				continue
			}
			if _, okTo := ids[e.To]; !okTo {
				continue
			}
			want = append(want, e)
		}
		assert.Equal(t, want, g.Edges, "filter %s", filter)
	}
}

func TestBuildOwnershipGraphEmptyRecord(t *testing.T) {
	rec := models.ForensicRecord{Entity: models.ForensicEntity{Name: "Hollow Berhad"}}

	g := BuildOwnershipGraph(rec, models.FilterAll)

	require.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges)
}
