package overlay

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"gitlab.com/tinyland/lab/frame-pulse/console"
	"gitlab.com/tinyland/lab/frame-pulse/render"
)

// ConsoleConfig configures the log console overlay.
type ConsoleConfig struct {
	Title      string
	MaxEntries int
	// Initial presentation state.
	Paused      bool
	Autoscroll  bool
	ShowContext bool
}

// ConsoleOverlay drains the coalescing log buffer once per frame and
// renders it. Filtering, the context toggle, and autoscroll are
// presentation state applied by this reader over the drained snapshot;
// the buffer itself knows nothing about them.
type ConsoleOverlay struct {
	cfg    ConsoleConfig
	sink   render.Sink
	logger *slog.Logger

	source *console.Broadcaster
	buf    *console.Buffer
	sub    *console.Subscription

	// presMu guards the presentation fields below. The display's input
	// handler mutates them from its own goroutine while OnTick reads
	// them on the frame tick.
	presMu      sync.Mutex
	filter      string
	showContext bool
	autoscroll  bool

	enabled bool
}

// NewConsoleOverlay creates the overlay in the disabled state. Events
// published on source while the overlay is enabled flow into its
// buffer, possibly from goroutines other than the frame tick.
func NewConsoleOverlay(cfg ConsoleConfig, source *console.Broadcaster, sink render.Sink, logger *slog.Logger) *ConsoleOverlay {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Title == "" {
		cfg.Title = "Console"
	}
	return &ConsoleOverlay{
		cfg:         cfg,
		sink:        sink,
		logger:      logger,
		source:      source,
		buf:         console.NewBuffer(cfg.MaxEntries),
		showContext: cfg.ShowContext,
		autoscroll:  cfg.Autoscroll,
	}
}

// Name implements Driver.
func (o *ConsoleOverlay) Name() string { return "console" }

// Start implements Driver. A second Start without a Stop is a no-op, so
// repeated enables cannot double-subscribe.
func (o *ConsoleOverlay) Start() {
	if o.sub != nil {
		o.enabled = true
		return
	}

	o.buf.Clear()
	o.buf.SetPaused(o.cfg.Paused)

	o.presMu.Lock()
	o.filter = ""
	o.showContext = o.cfg.ShowContext
	o.autoscroll = o.cfg.Autoscroll
	o.presMu.Unlock()

	o.sub = o.source.Subscribe(func(e console.Event) {
		o.buf.Append(e.Level, e.Message, e.Context)
	})
	o.enabled = true
}

// Stop implements Driver. The subscription token is always released.
func (o *ConsoleOverlay) Stop() {
	o.enabled = false
	if o.sub != nil {
		o.sub.Close()
		o.sub = nil
	}
}

// OnTick implements Driver.
func (o *ConsoleOverlay) OnTick(_ float64) {
	if !o.enabled {
		return
	}

	snap := o.buf.Snapshot()

	o.presMu.Lock()
	filter, showContext := o.filter, o.showContext
	o.presMu.Unlock()

	var info, warn, errs int
	for _, e := range snap {
		switch e.Level {
		case console.LevelWarning:
			warn += e.Count
		case console.LevelError:
			errs += e.Count
		default:
			info += e.Count
		}
	}

	lines := make([]render.Line, 0, len(snap)+1)
	status := fmt.Sprintf("%d info  %d warn  %d error", info, warn, errs)
	if o.buf.Paused() {
		status += "  [paused]"
	}
	if filter != "" {
		status += fmt.Sprintf("  [filter: %s]", filter)
	}
	lines = append(lines, render.Line{Label: "totals", Value: status})

	needle := strings.ToLower(filter)
	for _, e := range snap {
		if needle != "" && !strings.Contains(strings.ToLower(e.Message), needle) {
			continue
		}
		value := e.Message
		if e.Count > 1 {
			value += fmt.Sprintf(" (x%d)", e.Count)
		}
		if showContext && e.Context != "" {
			value += "\n" + e.Context
		}
		lines = append(lines, render.Line{
			Label: fmt.Sprintf("%s %s", e.Time.Format("15:04:05"), e.Level),
			Value: value,
		})
	}

	o.sink.Draw(render.Window{Title: o.cfg.Title, Lines: lines})
}

// OnRenderPassEnd implements Driver; nothing to do.
func (o *ConsoleOverlay) OnRenderPassEnd() {}

// SetFilter sets the case-insensitive substring filter applied to
// message text. Safe to call from the display goroutine.
func (o *ConsoleOverlay) SetFilter(filter string) {
	o.presMu.Lock()
	o.filter = filter
	o.presMu.Unlock()
}

// Filter returns the current filter text.
func (o *ConsoleOverlay) Filter() string {
	o.presMu.Lock()
	defer o.presMu.Unlock()
	return o.filter
}

// SetShowContext toggles display of entry context text. Safe to call
// from the display goroutine.
func (o *ConsoleOverlay) SetShowContext(show bool) {
	o.presMu.Lock()
	o.showContext = show
	o.presMu.Unlock()
}

// ShowContext reports whether context text is displayed.
func (o *ConsoleOverlay) ShowContext() bool {
	o.presMu.Lock()
	defer o.presMu.Unlock()
	return o.showContext
}

// SetAutoscroll toggles pinning the view to the newest entry. Safe to
// call from the display goroutine.
func (o *ConsoleOverlay) SetAutoscroll(on bool) {
	o.presMu.Lock()
	o.autoscroll = on
	o.presMu.Unlock()
}

// Autoscroll reports whether the view follows the newest entry.
func (o *ConsoleOverlay) Autoscroll() bool {
	o.presMu.Lock()
	defer o.presMu.Unlock()
	return o.autoscroll
}

// TogglePause flips the buffer's paused state and returns the new
// value. While paused, incoming events are dropped.
func (o *ConsoleOverlay) TogglePause() bool {
	paused := !o.buf.Paused()
	o.buf.SetPaused(paused)
	return paused
}

// Paused reports the buffer's paused state.
func (o *ConsoleOverlay) Paused() bool { return o.buf.Paused() }

// Clear empties the buffer (the user-facing clear action).
func (o *ConsoleOverlay) Clear() { o.buf.Clear() }

// Len returns the number of stored entries.
func (o *ConsoleOverlay) Len() int { return o.buf.Len() }
