package market

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// RenderPriceChart renders a PNG line chart of a stock's closing prices.
// Bars with a missing close are skipped. Returns raw PNG bytes.
func RenderPriceChart(detail *models.StockDetail) ([]byte, error) {
	series := detail.Chart

	xValues := make([]time.Time, 0, len(series.Timestamps))
	yValues := make([]float64, 0, len(series.Timestamps))
	for i, ts := range series.Timestamps {
		if i >= len(series.Close) || series.Close[i] == 0 {
			continue
		}
		xValues = append(xValues, time.Unix(ts, 0))
		yValues = append(yValues, series.Close[i])
	}

	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(xValues))
	}

	strokeColor := drawing.ColorFromHex("2563eb")
	if detail.Quote.ChangePct < 0 {
		strokeColor = drawing.ColorFromHex("dc2626")
	}

	priceSeries := chart.TimeSeries{
		Name: detail.Quote.Symbol,
		Style: chart.Style{
			StrokeColor: strokeColor,
			StrokeWidth: 2.0,
		},
		XValues: xValues,
		YValues: yValues,
	}

	title := detail.Quote.Symbol
	if detail.Quote.Name != "" {
		title = fmt.Sprintf("%s (%s)", detail.Quote.Name, detail.Quote.Symbol)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("02 Jan")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.3f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{priceSeries},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
