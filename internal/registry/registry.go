// Package registry holds the static Bursa Malaysia instrument universe.
// The registry is read-only at runtime; quotes are fetched against it
// each cycle but the universe itself never changes between deploys.
package registry

import "github.com/wanhafiz/bursapulse/internal/models"

// BenchmarkSymbol is the KLCI composite index symbol at the quote source.
const BenchmarkSymbol = "^KLSE"

var instruments = []models.Instrument{
	{Symbol: "1155.KL", Name: "MAYBANK", Sector: "Finance", Cap: models.CapLarge},
	{Symbol: "1295.KL", Name: "PBBANK", Sector: "Finance", Cap: models.CapLarge},
	{Symbol: "5347.KL", Name: "TENAGA", Sector: "Utilities", Cap: models.CapLarge},
	{Symbol: "4863.KL", Name: "TM", Sector: "Telecom", Cap: models.CapLarge},
	{Symbol: "3182.KL", Name: "GENTING", Sector: "Consumer", Cap: models.CapLarge},
	{Symbol: "1023.KL", Name: "CIMB", Sector: "Finance", Cap: models.CapLarge},
	{Symbol: "5285.KL", Name: "SIMEPLT", Sector: "Plantation", Cap: models.CapLarge},
	{Symbol: "1961.KL", Name: "IOI", Sector: "Plantation", Cap: models.CapLarge},
	{Symbol: "5183.KL", Name: "PETGAS", Sector: "Energy", Cap: models.CapLarge},
	{Symbol: "4707.KL", Name: "NESTLE", Sector: "Consumer", Cap: models.CapLarge},
	{Symbol: "5225.KL", Name: "IHH", Sector: "Healthcare", Cap: models.CapLarge},
	{Symbol: "0166.KL", Name: "INARI", Sector: "Technology", Cap: models.CapMid},
	{Symbol: "7113.KL", Name: "TOPGLOVE", Sector: "Healthcare", Cap: models.CapMid},
	{Symbol: "6012.KL", Name: "MAXIS", Sector: "Telecom", Cap: models.CapMid},
	{Symbol: "5168.KL", Name: "HARTALEGA", Sector: "Healthcare", Cap: models.CapMid},
	{Symbol: "4715.KL", Name: "GENM", Sector: "Consumer", Cap: models.CapMid},
	{Symbol: "5218.KL", Name: "SAPNRG", Sector: "Energy", Cap: models.CapMid},
	{Symbol: "0138.KL", Name: "MYEG", Sector: "Technology", Cap: models.CapMid},
	{Symbol: "2445.KL", Name: "KLK", Sector: "Plantation", Cap: models.CapMid},
	{Symbol: "0128.KL", Name: "FRONTKN", Sector: "Technology", Cap: models.CapSmall},
	{Symbol: "5243.KL", Name: "VELESTO", Sector: "Energy", Cap: models.CapSmall},
	{Symbol: "0097.KL", Name: "VITROX", Sector: "Technology", Cap: models.CapSmall},
	{Symbol: "5005.KL", Name: "UNISEM", Sector: "Technology", Cap: models.CapSmall},
	{Symbol: "3867.KL", Name: "MPI", Sector: "Technology", Cap: models.CapSmall},
	{Symbol: "5199.KL", Name: "HIBISCUS", Sector: "Energy", Cap: models.CapSmall},
}

// Instruments returns a copy of the full universe.
func Instruments() []models.Instrument {
	out := make([]models.Instrument, len(instruments))
	copy(out, instruments)
	return out
}

// Symbols returns the universe's symbols in registry order.
func Symbols() []string {
	out := make([]string, len(instruments))
	for i, inst := range instruments {
		out[i] = inst.Symbol
	}
	return out
}

// Lookup returns the instrument for a symbol, or nil when the symbol is
// not part of the universe.
func Lookup(symbol string) *models.Instrument {
	for i := range instruments {
		if instruments[i].Symbol == symbol {
			inst := instruments[i]
			return &inst
		}
	}
	return nil
}
