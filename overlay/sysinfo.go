package overlay

import (
	"fmt"
	"io"
	"log/slog"

	"gitlab.com/tinyland/lab/frame-pulse/hostinfo"
	"gitlab.com/tinyland/lab/frame-pulse/internal/format"
	"gitlab.com/tinyland/lab/frame-pulse/render"
)

// SysInfoConfig configures the static system-info overlay.
type SysInfoConfig struct {
	Title string
}

// SysInfoOverlay displays static system and hardware facts. The
// provider is queried once on Start; per-frame work is only the draw.
type SysInfoOverlay struct {
	cfg      SysInfoConfig
	sink     render.Sink
	logger   *slog.Logger
	provider hostinfo.Provider

	info     hostinfo.Info
	haveInfo bool
	enabled  bool
}

// NewSysInfoOverlay creates the overlay in the disabled state.
func NewSysInfoOverlay(cfg SysInfoConfig, provider hostinfo.Provider, sink render.Sink, logger *slog.Logger) *SysInfoOverlay {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Title == "" {
		cfg.Title = "System Info"
	}
	return &SysInfoOverlay{
		cfg:      cfg,
		sink:     sink,
		logger:   logger,
		provider: provider,
	}
}

// Name implements Driver.
func (o *SysInfoOverlay) Name() string { return "system" }

// Start implements Driver. A provider failure degrades every field to
// "N/A"; the overlay still runs.
func (o *SysInfoOverlay) Start() {
	info, err := o.provider.Info()
	if err != nil {
		o.logger.Warn("system info unavailable", slog.Any("error", err))
		o.haveInfo = false
	} else {
		o.info = info
		o.haveInfo = true
	}
	o.enabled = true
}

// Stop implements Driver.
func (o *SysInfoOverlay) Stop() {
	o.enabled = false
}

// OnTick implements Driver.
func (o *SysInfoOverlay) OnTick(_ float64) {
	if !o.enabled {
		return
	}

	o.sink.Draw(render.Window{Title: o.cfg.Title, Lines: o.lines()})
}

// OnRenderPassEnd implements Driver; nothing to do.
func (o *SysInfoOverlay) OnRenderPassEnd() {}

func (o *SysInfoOverlay) lines() []render.Line {
	if !o.haveInfo {
		return []render.Line{{Label: "System", Value: render.NotAvailable}}
	}

	naIfEmpty := func(s string) string {
		if s == "" {
			return render.NotAvailable
		}
		return s
	}

	lines := []render.Line{
		{Label: "Host", Value: naIfEmpty(o.info.Hostname)},
		{Label: "OS", Value: fmt.Sprintf("%s/%s", o.info.OS, o.info.Arch)},
		{Label: "Kernel", Value: naIfEmpty(o.info.Kernel)},
		{Label: "CPUs", Value: fmt.Sprintf("%d", o.info.NumCPU)},
	}

	if o.info.TotalRAM > 0 {
		lines = append(lines, render.Line{Label: "RAM", Value: format.Bytes(o.info.TotalRAM)})
	} else {
		lines = append(lines, render.Line{Label: "RAM", Value: render.NotAvailable})
	}
	if o.info.Uptime > 0 {
		lines = append(lines, render.Line{Label: "Uptime", Value: format.Duration(o.info.Uptime)})
	} else {
		lines = append(lines, render.Line{Label: "Uptime", Value: render.NotAvailable})
	}

	lines = append(lines,
		render.Line{Label: "Go", Value: naIfEmpty(o.info.GoVersion)},
		render.Line{Label: "PID", Value: fmt.Sprintf("%d", o.info.PID)},
	)
	return lines
}
