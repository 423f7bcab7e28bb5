package overlay

import (
	"io"
	"log/slog"
	"runtime"

	"gitlab.com/tinyland/lab/frame-pulse/counters"
	"gitlab.com/tinyland/lab/frame-pulse/internal/format"
	"gitlab.com/tinyland/lab/frame-pulse/internal/ring"
	"gitlab.com/tinyland/lab/frame-pulse/render"
	"gitlab.com/tinyland/lab/frame-pulse/stats"
)

// MemoryConfig configures the memory/GC overlay.
type MemoryConfig struct {
	Title   string
	History int
	// TextRefresh and FPSWindow are the throttling periods in seconds;
	// zero means the defaults.
	TextRefresh float64
	FPSWindow   float64
}

// MemoryOverlay tracks managed memory: heap-in-use history, a per-frame
// allocation-rate estimate, and best-effort runtime counters (reserved
// bytes, GC cycles). Counters that the environment does not provide
// render as "N/A" without affecting the rest.
type MemoryOverlay struct {
	cfg    MemoryConfig
	sink   render.Sink
	logger *slog.Logger

	// readTotal returns the current total managed bytes; overridable
	// for tests. The default reads runtime heap usage.
	readTotal func() uint64

	// source provides optional named counters; may be nil.
	source counters.Source
	set    *counters.Set

	est     *stats.AllocEstimator
	heapMiB *ring.Buffer[float64] // heap in use, MiB
	allocKB *ring.Buffer[float64] // allocation estimate, KiB per frame
	win     *stats.Window

	avgAllocKB float64
	lastTotal  uint64
	enabled    bool

	scratchHeap  []float64
	scratchAlloc []float64
}

// counterNames are the optional counters the overlay tries to acquire.
// Acquisition failure is per-name.
var counterNames = []string{
	counters.MetricHeapAllocsBytes,
	counters.MetricTotalBytes,
	counters.MetricGCCycles,
}

// NewMemoryOverlay creates the overlay in the disabled state. source
// may be nil, in which case every optional counter reads as
// unavailable and only the delta estimator runs.
func NewMemoryOverlay(cfg MemoryConfig, source counters.Source, sink render.Sink, logger *slog.Logger) *MemoryOverlay {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Title == "" {
		cfg.Title = "Memory"
	}
	if cfg.History < 2 {
		cfg.History = 240
	}
	return &MemoryOverlay{
		cfg:       cfg,
		sink:      sink,
		logger:    logger,
		readTotal: readHeapInUse,
		source:    source,
		heapMiB:   ring.New[float64](cfg.History),
		allocKB:   ring.New[float64](cfg.History),
		win:       stats.NewWindow(cfg.TextRefresh, cfg.FPSWindow),
	}
}

// readHeapInUse is the default total-bytes reading.
func readHeapInUse() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

// Name implements Driver.
func (o *MemoryOverlay) Name() string { return "memory" }

// Start implements Driver. Counters are acquired fresh on every enable
// and the history is cleared.
func (o *MemoryOverlay) Start() {
	if o.set != nil {
		o.set.Close()
	}
	o.set = counters.OpenSet(o.source, counterNames, o.logger)

	// The runtime's alloc counter is cumulative; per-frame deltas are
	// what the estimator wants.
	if c, ok := o.set.Get(counters.MetricHeapAllocsBytes); ok {
		o.set.Replace(counters.MetricHeapAllocsBytes, counters.NewDelta(c))
	}

	o.est = stats.NewAllocEstimator(func() (uint64, bool) {
		v, ok := o.set.Read(counters.MetricHeapAllocsBytes)
		if !ok {
			return 0, false
		}
		return uint64(v), true
	})

	o.heapMiB.Clear()
	o.allocKB.Clear()
	o.win.Reset()
	o.avgAllocKB = 0
	o.lastTotal = 0
	o.enabled = true
}

// Stop implements Driver. Acquired counters are always released, even
// the partial set left by acquisition failures.
func (o *MemoryOverlay) Stop() {
	o.enabled = false
	if o.set != nil {
		o.set.Close()
		o.set = nil
	}
}

// OnTick implements Driver.
func (o *MemoryOverlay) OnTick(dt float64) {
	if !o.enabled {
		return
	}

	total := o.readTotal()
	alloc := o.est.Sample(total)
	o.lastTotal = total

	o.heapMiB.Push(float64(total) / (1 << 20))
	o.allocKB.Push(float64(alloc) / 1024)

	if o.win.Tick(dt) {
		o.avgAllocKB = stats.Mean(o.allocKB)
	}

	o.draw()
}

// OnRenderPassEnd implements Driver; the memory overlay has no
// render-pass work.
func (o *MemoryOverlay) OnRenderPassEnd() {}

// AllocHistory returns a chronological copy of the per-frame allocation
// estimates in KiB.
func (o *MemoryOverlay) AllocHistory() []float64 { return o.allocKB.Snapshot() }

func (o *MemoryOverlay) draw() {
	allocPerSec := o.avgAllocKB * 1024 * o.win.FPS()

	lines := []render.Line{
		{Label: "Heap", Value: format.Bytes(o.lastTotal)},
		{Label: "Alloc", Value: format.BytesPerSecond(allocPerSec)},
	}

	if v, ok := o.set.Read(counters.MetricTotalBytes); ok {
		lines = append(lines, render.Line{Label: "Reserved", Value: format.Bytes(uint64(v))})
	} else {
		lines = append(lines, render.Line{Label: "Reserved", Value: render.NotAvailable})
	}
	if v, ok := o.set.Read(counters.MetricGCCycles); ok {
		lines = append(lines, render.Line{Label: "GC cycles", Value: format.Count(uint64(v))})
	} else {
		lines = append(lines, render.Line{Label: "GC cycles", Value: render.NotAvailable})
	}

	o.scratchHeap = o.heapMiB.AppendTo(o.scratchHeap[:0])
	o.scratchAlloc = o.allocKB.AppendTo(o.scratchAlloc[:0])

	o.sink.Draw(render.Window{
		Title: o.cfg.Title,
		Lines: lines,
		Plots: []render.Plot{
			{Label: "heap MiB", Data: o.scratchHeap},
			{Label: "alloc KiB", Data: o.scratchAlloc},
		},
	})
}
