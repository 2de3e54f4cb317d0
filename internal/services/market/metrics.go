package market

import (
	"fmt"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// Market-cap band thresholds in MYR. Policy constants: evaluated high to
// low, inclusive on each tier's lower bound.
const (
	capLargeThreshold = 10_000_000_000
	capMidThreshold   = 2_000_000_000
	capSmallThreshold = 300_000_000
)

// ChangePercent computes the percentage change from previousClose to
// price. A zero or absent previousClose yields 0, never a division by
// zero.
func ChangePercent(price, previousClose float64) float64 {
	if previousClose == 0 {
		return 0
	}
	return (price - previousClose) / previousClose * 100
}

// VolumeRatio computes volume relative to the average volume. When the
// average is absent or zero the second return is false and the ratio
// must not be presented as a number.
func VolumeRatio(volume, avgVolume float64) (float64, bool) {
	if avgVolume == 0 {
		return 0, false
	}
	return volume / avgVolume, true
}

// FormatVolumeRatio renders a volume ratio for display, using "N/A" for
// the unavailable sentinel.
func FormatVolumeRatio(volume, avgVolume float64) string {
	ratio, ok := VolumeRatio(volume, avgVolume)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.1fx", ratio)
}

// ClassifyCap maps a market cap to its band. Zero or negative values
// mean the cap is unknown upstream.
func ClassifyCap(marketCap float64) models.CapBand {
	switch {
	case marketCap <= 0:
		return models.CapUnknown
	case marketCap >= capLargeThreshold:
		return models.CapLarge
	case marketCap >= capMidThreshold:
		return models.CapMid
	case marketCap >= capSmallThreshold:
		return models.CapSmall
	default:
		return models.CapPenny
	}
}

// DetectMoveType tags a price move by its likely driver: recent news,
// speculative volume (over 3x average), or plain technical action.
func DetectMoveType(volumeRatio float64, hasNews bool) string {
	if hasNews {
		return "News Driven"
	}
	if volumeRatio > 3 {
		return "Speculative"
	}
	return "Technical"
}
