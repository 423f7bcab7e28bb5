package overlay

import (
	"io"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/frame-pulse/internal/format"
	"gitlab.com/tinyland/lab/frame-pulse/internal/ring"
	"gitlab.com/tinyland/lab/frame-pulse/render"
	"gitlab.com/tinyland/lab/frame-pulse/stats"
)

// FrameConfig configures the frame-timing overlay.
type FrameConfig struct {
	// Title is the window title handed to the render sink.
	Title string
	// History is the ring-buffer capacity in samples.
	History int
	// TrackRenderTime enables the render-duration ring and plot.
	TrackRenderTime bool
	// TextRefresh and FPSWindow are the throttling periods in seconds;
	// zero means the defaults.
	TextRefresh float64
	FPSWindow   float64
}

// FrameOverlay tracks per-frame timing: an FPS readout with a throttled
// refresh, plus frame-time and render-time history plots.
//
// Render time is measured from the start of the frame tick to the
// end-of-render-pass notification. That window can include UI work and
// is really "time since this frame's draw began"; the measurement is
// deliberately heuristic and kept as such.
type FrameOverlay struct {
	cfg    FrameConfig
	sink   render.Sink
	logger *slog.Logger

	frameMS  *ring.Buffer[float64]
	renderMS *ring.Buffer[float64]
	win      *stats.Window

	avgFrameMS  float64
	avgRenderMS float64

	tickStart time.Time
	enabled   bool

	// now is overridable for tests.
	now func() time.Time

	// scratch backs per-frame plot snapshots so drawing does not
	// allocate once warm.
	scratchFrame  []float64
	scratchRender []float64
}

// NewFrameOverlay creates the overlay in the disabled state. If logger
// is nil, a no-op logger is used.
func NewFrameOverlay(cfg FrameConfig, sink render.Sink, logger *slog.Logger) *FrameOverlay {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Title == "" {
		cfg.Title = "Frame Stats"
	}
	if cfg.History < 2 {
		cfg.History = 240
	}
	return &FrameOverlay{
		cfg:      cfg,
		sink:     sink,
		logger:   logger,
		frameMS:  ring.New[float64](cfg.History),
		renderMS: ring.New[float64](cfg.History),
		win:      stats.NewWindow(cfg.TextRefresh, cfg.FPSWindow),
		now:      time.Now,
	}
}

// Name implements Driver.
func (o *FrameOverlay) Name() string { return "frame" }

// Start implements Driver. History never leaks across enable cycles.
func (o *FrameOverlay) Start() {
	o.frameMS.Clear()
	o.renderMS.Clear()
	o.win.Reset()
	o.avgFrameMS = 0
	o.avgRenderMS = 0
	o.tickStart = time.Time{}
	o.enabled = true
	o.logger.Debug("frame overlay enabled", slog.Int("history", o.cfg.History))
}

// Stop implements Driver.
func (o *FrameOverlay) Stop() {
	o.enabled = false
}

// OnTick implements Driver.
func (o *FrameOverlay) OnTick(dt float64) {
	if !o.enabled {
		return
	}

	// Restart the render timer at the start of the draw; it stops at
	// the end-of-render-pass notification.
	o.tickStart = o.now()

	o.frameMS.Push(dt * 1000)

	if o.win.Tick(dt) {
		o.avgFrameMS = stats.Mean(o.frameMS)
		if o.cfg.TrackRenderTime {
			o.avgRenderMS = stats.Mean(o.renderMS)
		}
	}

	o.draw()
}

// OnRenderPassEnd implements Driver. It records the elapsed time since
// this frame's tick began.
func (o *FrameOverlay) OnRenderPassEnd() {
	if !o.enabled || !o.cfg.TrackRenderTime || o.tickStart.IsZero() {
		return
	}
	elapsed := o.now().Sub(o.tickStart)
	o.renderMS.Push(elapsed.Seconds() * 1000)
}

// FPS returns the most recently published frames-per-second value.
func (o *FrameOverlay) FPS() float64 { return o.win.FPS() }

// FrameHistory returns a chronological copy of the frame-time samples
// in milliseconds.
func (o *FrameOverlay) FrameHistory() []float64 { return o.frameMS.Snapshot() }

func (o *FrameOverlay) draw() {
	lines := []render.Line{
		{Label: "FPS", Value: format.FPS(o.win.FPS())},
		{Label: "Frame", Value: format.Millis(o.avgFrameMS)},
	}
	if o.cfg.TrackRenderTime {
		lines = append(lines, render.Line{Label: "Render", Value: format.Millis(o.avgRenderMS)})
	} else {
		lines = append(lines, render.Line{Label: "Render", Value: "off"})
	}

	o.scratchFrame = o.frameMS.AppendTo(o.scratchFrame[:0])
	plots := []render.Plot{
		{Label: "frame ms", Data: o.scratchFrame},
	}
	if o.cfg.TrackRenderTime {
		o.scratchRender = o.renderMS.AppendTo(o.scratchRender[:0])
		plots = append(plots, render.Plot{Label: "render ms", Data: o.scratchRender})
	}

	// An inactive sink just means nothing to draw this frame.
	o.sink.Draw(render.Window{Title: o.cfg.Title, Lines: lines, Plots: plots})
}
