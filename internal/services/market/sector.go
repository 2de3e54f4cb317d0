package market

import (
	"math"
	"sort"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// maxSectorSlots caps how many sectors the ranked view shows.
const maxSectorSlots = 6

// sectorUnknown buckets quotes whose symbol is not in the registry.
const sectorUnknown = "Unknown"

// AggregateSectors rolls quotes up into per-sector momentum summaries.
// Only quoted members count: an instrument whose fetch failed this cycle
// contributes to no sector. Summaries come back in first-seen order of
// the instrument list, with the Unknown bucket last.
func AggregateSectors(quotes []models.QuoteSnapshot, instruments []models.Instrument) []models.SectorSummary {
	bySymbol := make(map[string]models.Instrument, len(instruments))
	for _, inst := range instruments {
		bySymbol[inst.Symbol] = inst
	}

	type accumulator struct {
		sumChangePct float64
		count        int
		topVolume    models.Instrument
		topVolumeVal int64
	}

	order := make([]string, 0)
	acc := make(map[string]*accumulator)

	for _, quote := range quotes {
		inst, known := bySymbol[quote.Symbol]
		sector := sectorUnknown
		if known {
			sector = inst.Sector
		} else {
			inst = models.Instrument{Symbol: quote.Symbol, Name: quote.Name, Cap: models.CapUnknown}
		}

		a, seen := acc[sector]
		if !seen {
			a = &accumulator{}
			acc[sector] = a
			order = append(order, sector)
		}

		a.sumChangePct += quote.ChangePct
		a.count++
		// strictly greater keeps the first-seen member on volume ties
		if a.count == 1 || quote.Volume > a.topVolumeVal {
			a.topVolume = inst
			a.topVolumeVal = quote.Volume
		}
	}

	// Unknown sorts last regardless of when it first appeared.
	sort.SliceStable(order, func(i, j int) bool {
		return order[j] == sectorUnknown && order[i] != sectorUnknown
	})

	summaries := make([]models.SectorSummary, 0, len(order))
	for _, sector := range order {
		a := acc[sector]
		summaries = append(summaries, models.SectorSummary{
			Sector:       sector,
			AvgChangePct: a.sumChangePct / float64(a.count),
			MemberCount:  a.count,
			TopVolume:    a.topVolume,
		})
	}

	return summaries
}

// RankSectors orders summaries by absolute average move, strongest
// first, capped at the slot limit. The Unknown bucket never ranks.
func RankSectors(summaries []models.SectorSummary) []models.SectorSummary {
	ranked := make([]models.SectorSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.Sector == sectorUnknown {
			continue
		}
		ranked = append(ranked, s)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].AvgChangePct) > math.Abs(ranked[j].AvgChangePct)
	})

	if len(ranked) > maxSectorSlots {
		ranked = ranked[:maxSectorSlots]
	}

	return ranked
}
