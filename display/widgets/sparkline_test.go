package widgets

import (
	"strings"
	"testing"
)

func TestRenderSparklineEmpty(t *testing.T) {
	if got := RenderSparkline(SparklineConfig{}); got != "" {
		t.Errorf("expected empty output for no data, got %q", got)
	}
}

func TestRenderSparklineShape(t *testing.T) {
	got := RenderSparkline(SparklineConfig{Data: []float64{0, 50, 100}, Min: 0, Max: 100})

	runes := []rune(got)
	if len(runes) != 3 {
		t.Fatalf("expected 3 characters, got %d (%q)", len(runes), got)
	}
	if runes[0] != '▁' {
		t.Errorf("expected lowest block first, got %q", runes[0])
	}
	if runes[2] != '█' {
		t.Errorf("expected highest block last, got %q", runes[2])
	}
}

func TestRenderSparklineTruncatesToWidth(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	got := RenderSparkline(SparklineConfig{Data: data, Width: 3})
	if n := len([]rune(got)); n != 3 {
		t.Errorf("expected 3 characters after truncation, got %d", n)
	}

	// Truncation keeps the most recent points: the last char is the
	// maximum of the series, so it renders as the top block.
	runes := []rune(got)
	if runes[2] != '█' {
		t.Errorf("expected newest (max) point to be the top block, got %q", runes[2])
	}
}

func TestRenderSparklinePadsShortSeries(t *testing.T) {
	got := RenderSparkline(SparklineConfig{Data: []float64{1, 2}, Width: 5})
	if !strings.HasPrefix(got, "   ") {
		t.Errorf("expected left padding to the configured width, got %q", got)
	}
}

func TestRenderSparklineAllEqual(t *testing.T) {
	got := RenderSparkline(SparklineConfig{Data: []float64{7, 7, 7}})
	for _, r := range got {
		if r != '▄' {
			t.Errorf("expected mid-level blocks for a flat series, got %q", got)
			break
		}
	}
}

func TestRenderSparklineWithRange(t *testing.T) {
	got := RenderSparklineWithRange([]float64{2, 8}, 0)
	if !strings.HasPrefix(got, "2.0") || !strings.HasSuffix(got, "8.0") {
		t.Errorf("expected min/max brackets, got %q", got)
	}
}

func TestRenderGauge(t *testing.T) {
	got := RenderGauge(GaugeConfig{Width: 10, Percent: 50, ShowPercent: true})
	if !strings.Contains(got, "█████░░░░░") {
		t.Errorf("expected half-filled bar, got %q", got)
	}
	if !strings.Contains(got, "50%") {
		t.Errorf("expected percent text, got %q", got)
	}
}

func TestRenderGaugeClampsPercent(t *testing.T) {
	got := RenderGauge(GaugeConfig{Width: 4, Percent: 250})
	if !strings.Contains(got, "████") {
		t.Errorf("expected a fully filled bar at clamp, got %q", got)
	}
	got = RenderGauge(GaugeConfig{Width: 4, Percent: -10})
	if !strings.Contains(got, "░░░░") {
		t.Errorf("expected an empty bar at clamp, got %q", got)
	}
}
