package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanhafiz/bursapulse/internal/models"
)

func TestChangePercent(t *testing.T) {
	tests := []struct {
		name          string
		price         float64
		previousClose float64
		want          float64
	}{
		{"up move", 11.0, 10.0, 10.0},
		{"down move", 9.0, 10.0, -10.0},
		{"flat", 4.52, 4.52, 0.0},
		{"zero previous close", 4.52, 0.0, 0.0},
		{"zero price", 0.0, 4.52, -100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ChangePercent(tt.price, tt.previousClose), 1e-9)
		})
	}
}

func TestVolumeRatio(t *testing.T) {
	ratio, ok := VolumeRatio(3_000_000, 1_000_000)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, ratio, 1e-9)

	_, ok = VolumeRatio(3_000_000, 0)
	assert.False(t, ok, "missing average volume must not produce a ratio")
}

func TestFormatVolumeRatio(t *testing.T) {
	assert.Equal(t, "2.5x", FormatVolumeRatio(2_500_000, 1_000_000))
	assert.Equal(t, "N/A", FormatVolumeRatio(2_500_000, 0))
}

func TestClassifyCap(t *testing.T) {
	tests := []struct {
		name      string
		marketCap float64
		want      models.CapBand
	}{
		{"large", 95_000_000_000, models.CapLarge},
		{"large boundary", 10_000_000_000, models.CapLarge},
		{"mid", 5_000_000_000, models.CapMid},
		{"mid boundary", 2_000_000_000, models.CapMid},
		{"small", 800_000_000, models.CapSmall},
		{"small boundary", 300_000_000, models.CapSmall},
		{"penny", 150_000_000, models.CapPenny},
		{"absent", 0, models.CapUnknown},
		{"negative", -1, models.CapUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCap(tt.marketCap))
		})
	}
}

func TestDetectMoveType(t *testing.T) {
	assert.Equal(t, "News Driven", DetectMoveType(5.0, true))
	assert.Equal(t, "Speculative", DetectMoveType(3.5, false))
	assert.Equal(t, "Technical", DetectMoveType(3.0, false))
	assert.Equal(t, "Technical", DetectMoveType(1.2, false))
}
