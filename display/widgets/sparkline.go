// Package widgets provides the text widgets the diagnostics TUI renders
// overlay data with: unicode sparkline charts and horizontal gauges.
package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks contains 8 unicode block characters for sparkline
// rendering, ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineConfig controls the appearance of a sparkline chart.
type SparklineConfig struct {
	// Data points to render, oldest first.
	Data []float64
	// Width is the number of characters to render. If 0, uses len(Data).
	Width int
	// Min and Max bound the vertical scale. If Min == Max, auto-scale.
	Min float64
	Max float64
	// Label is optional text shown before the sparkline.
	Label string
	// Color is the lipgloss color for the sparkline characters.
	Color lipgloss.Color
}

// RenderSparkline renders a unicode sparkline chart. When the series is
// longer than Width only the most recent points are drawn, which is what
// a saturated ring buffer wants.
func RenderSparkline(cfg SparklineConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}

	data := cfg.Data

	width := cfg.Width
	if width <= 0 {
		width = len(data)
	}
	if width < len(data) {
		data = data[len(data)-width:]
	}

	minVal, maxVal := cfg.Min, cfg.Max
	if minVal == maxVal {
		minVal, maxVal = seriesRange(data)
	}

	var runes []rune
	allEqual := minVal == maxVal
	for _, v := range data {
		if allEqual {
			runes = append(runes, sparkBlocks[len(sparkBlocks)/2])
			continue
		}
		normalized := (v - minVal) / (maxVal - minVal)
		normalized = math.Max(0, math.Min(1, normalized))
		idx := int(normalized * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		runes = append(runes, sparkBlocks[idx])
	}

	sparkStr := string(runes)
	if width > len(data) {
		sparkStr = strings.Repeat(" ", width-len(data)) + sparkStr
	}

	if cfg.Color != "" {
		sparkStr = lipgloss.NewStyle().Foreground(cfg.Color).Render(sparkStr)
	}
	if cfg.Label != "" {
		sparkStr = cfg.Label + " " + sparkStr
	}
	return sparkStr
}

// RenderSparklineWithRange renders an auto-scaled sparkline bracketed by
// its min/max values: min▁▂▃▄▅▆▇█max.
func RenderSparklineWithRange(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	minVal, maxVal := seriesRange(data)
	spark := RenderSparkline(SparklineConfig{Data: data, Width: width})
	return fmt.Sprintf("%.1f%s%.1f", minVal, spark, maxVal)
}

func seriesRange(data []float64) (minVal, maxVal float64) {
	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}
