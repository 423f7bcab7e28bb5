// Package stats provides the windowed aggregation used by the overlay
// drivers: throttled FPS/average publication and the per-frame
// allocation-rate estimator. Everything here runs synchronously on the
// host's frame tick and never blocks.
package stats

import "gitlab.com/tinyland/lab/frame-pulse/internal/ring"

const (
	// DefaultRefreshPeriod is how often derived text values are
	// republished, in seconds.
	DefaultRefreshPeriod = 0.25

	// DefaultMinFPSWindow is the floor applied to the accumulated time
	// when dividing frames by elapsed time. Without it a couple of
	// fast ticks right after a reset would publish absurd FPS values.
	DefaultMinFPSWindow = 0.15
)

// Window accumulates frame ticks and decides, at most once per refresh
// period, that derived values should be republished. Between refreshes
// the previously published FPS is returned verbatim, so displayed text
// never flickers mid-window.
type Window struct {
	period    float64 // refresh period, seconds
	minWindow float64 // FPS divisor floor, seconds

	accum  float64
	frames int
	fps    float64
}

// NewWindow creates a Window with the given refresh period and FPS
// divisor floor, both in seconds. Non-positive arguments fall back to
// the defaults.
func NewWindow(period, minWindow float64) *Window {
	if period <= 0 {
		period = DefaultRefreshPeriod
	}
	if minWindow <= 0 {
		minWindow = DefaultMinFPSWindow
	}
	return &Window{period: period, minWindow: minWindow}
}

// Tick records one frame of dt seconds. It returns true when the
// refresh period has elapsed and derived values were republished; the
// caller recomputes its ring-buffer averages only on true.
func (w *Window) Tick(dt float64) bool {
	w.accum += dt
	w.frames++
	if w.accum < w.period {
		return false
	}

	div := w.accum
	if div < w.minWindow {
		div = w.minWindow
	}
	w.fps = float64(w.frames) / div

	w.accum = 0
	w.frames = 0
	return true
}

// FPS returns the most recently published frames-per-second value, 0
// before the first refresh.
func (w *Window) FPS() float64 { return w.fps }

// Reset zeroes the accumulators and the published FPS. Called when the
// owning overlay is re-enabled.
func (w *Window) Reset() {
	w.accum = 0
	w.frames = 0
	w.fps = 0
}

// Mean returns the average of the valid samples in b, 0 when empty.
func Mean(b *ring.Buffer[float64]) float64 {
	if b.Len() == 0 {
		return 0
	}
	return b.Sum() / float64(b.Len())
}
