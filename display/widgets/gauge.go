package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GaugeConfig controls the appearance of a horizontal bar gauge.
type GaugeConfig struct {
	// Width is the total character width of the bar.
	Width int
	// Percent is the value from 0 to 100.
	Percent float64
	// Label is optional text shown to the left of the bar.
	Label string
	// ShowPercent controls whether "XX%" is shown to the right.
	ShowPercent bool
	// ThresholdWarning is the % at which color turns yellow.
	ThresholdWarning float64
	// ThresholdDanger is the % at which color turns red.
	ThresholdDanger float64
}

// DefaultGaugeConfig returns a GaugeConfig with sensible defaults.
func DefaultGaugeConfig() GaugeConfig {
	return GaugeConfig{
		Width:            20,
		ShowPercent:      true,
		ThresholdWarning: 70,
		ThresholdDanger:  90,
	}
}

// gaugeColor picks the bar color for the given percentage.
func gaugeColor(percent, warning, danger float64) lipgloss.Color {
	switch {
	case percent >= danger:
		return lipgloss.Color("#EF4444")
	case percent >= warning:
		return lipgloss.Color("#EAB308")
	default:
		return lipgloss.Color("#22C55E")
	}
}

// RenderGauge renders a horizontal bar gauge:
// Label ████████░░░░ XX%
func RenderGauge(cfg GaugeConfig) string {
	percent := math.Max(0, math.Min(100, cfg.Percent))

	width := cfg.Width
	if width <= 0 {
		width = 20
	}
	filled := int(math.Round(percent / 100 * float64(width)))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	bar = lipgloss.NewStyle().
		Foreground(gaugeColor(percent, cfg.ThresholdWarning, cfg.ThresholdDanger)).
		Render(bar)

	var parts []string
	if cfg.Label != "" {
		parts = append(parts, cfg.Label)
	}
	parts = append(parts, bar)
	if cfg.ShowPercent {
		parts = append(parts, fmt.Sprintf("%3.0f%%", percent))
	}
	return strings.Join(parts, " ")
}
