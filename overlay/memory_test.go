package overlay

import (
	"fmt"
	"testing"

	"gitlab.com/tinyland/lab/frame-pulse/counters"
	"gitlab.com/tinyland/lab/frame-pulse/render"
)

// scriptedSource serves counters from a map of value pointers and
// tracks open/close balance.
type scriptedSource struct {
	values map[string]*float64
	opens  int
	closes int
}

func (s *scriptedSource) Open(name string) (counters.Counter, error) {
	v, ok := s.values[name]
	if !ok {
		return nil, fmt.Errorf("counter %q not provided", name)
	}
	s.opens++
	return &scriptedCounter{src: s, v: v}, nil
}

type scriptedCounter struct {
	src *scriptedSource
	v   *float64
}

func (c *scriptedCounter) Read() (float64, bool) { return *c.v, true }
func (c *scriptedCounter) Close()                { c.src.closes++ }

func TestMemoryOverlayDeltaFallback(t *testing.T) {
	sink := newFakeSink()
	o := NewMemoryOverlay(MemoryConfig{History: 16}, nil, sink, nil)

	readings := []uint64{1000, 1500, 900, 2000}
	i := 0
	o.readTotal = func() uint64 {
		v := readings[i%len(readings)]
		i++
		return v
	}

	o.Start()
	for range readings {
		o.OnTick(0.016)
	}

	// Property 5: [baseline 0, 500, 0 (collection), 1100] in KiB.
	hist := o.AllocHistory()
	want := []float64{0, 500.0 / 1024, 0, 1100.0 / 1024}
	if len(hist) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(hist))
	}
	for j := range want {
		if hist[j] != want[j] {
			t.Errorf("sample %d: expected %v KiB, got %v", j, want[j], hist[j])
		}
	}
}

func TestMemoryOverlayMissingCountersShowNA(t *testing.T) {
	sink := newFakeSink()
	o := NewMemoryOverlay(MemoryConfig{History: 16}, nil, sink, nil)
	o.readTotal = func() uint64 { return 4096 }

	o.Start()
	o.OnTick(0.016)

	w := sink.last(t)
	if got := lineValue(t, w, "Reserved"); got != render.NotAvailable {
		t.Errorf("expected Reserved=N/A without counters, got %q", got)
	}
	if got := lineValue(t, w, "GC cycles"); got != render.NotAvailable {
		t.Errorf("expected GC cycles=N/A without counters, got %q", got)
	}
	// The heap line still works from the total reading.
	if got := lineValue(t, w, "Heap"); got != "4.0 KiB" {
		t.Errorf("expected Heap=4.0 KiB, got %q", got)
	}
}

func TestMemoryOverlayUsesDirectCounter(t *testing.T) {
	alloc := 0.0
	src := &scriptedSource{values: map[string]*float64{
		counters.MetricHeapAllocsBytes: &alloc,
	}}

	sink := newFakeSink()
	o := NewMemoryOverlay(MemoryConfig{History: 16}, src, sink, nil)
	o.readTotal = func() uint64 { return 1 << 20 }

	o.Start()

	// The cumulative counter is delta-wrapped at Start: first tick is
	// the baseline, later ticks see the increase.
	o.OnTick(0.016)
	alloc = 2048
	o.OnTick(0.016)

	hist := o.AllocHistory()
	if len(hist) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(hist))
	}
	if hist[0] != 0 {
		t.Errorf("expected baseline 0, got %v", hist[0])
	}
	if hist[1] != 2.0 { // 2048 bytes = 2 KiB
		t.Errorf("expected 2 KiB from the direct counter, got %v", hist[1])
	}
}

func TestMemoryOverlayPartialCountersStillRender(t *testing.T) {
	reserved := float64(8 << 20)
	src := &scriptedSource{values: map[string]*float64{
		counters.MetricTotalBytes: &reserved,
		// alloc and GC counters intentionally absent
	}}

	sink := newFakeSink()
	o := NewMemoryOverlay(MemoryConfig{History: 16}, src, sink, nil)
	o.readTotal = func() uint64 { return 1024 }

	o.Start()
	o.OnTick(0.016)

	w := sink.last(t)
	if got := lineValue(t, w, "Reserved"); got != "8.0 MiB" {
		t.Errorf("expected Reserved=8.0 MiB, got %q", got)
	}
	if got := lineValue(t, w, "GC cycles"); got != render.NotAvailable {
		t.Errorf("expected GC cycles=N/A, got %q", got)
	}
}

func TestMemoryOverlayStopReleasesCounters(t *testing.T) {
	reserved := 1.0
	gc := 2.0
	src := &scriptedSource{values: map[string]*float64{
		counters.MetricTotalBytes: &reserved,
		counters.MetricGCCycles:   &gc,
	}}

	o := NewMemoryOverlay(MemoryConfig{History: 16}, src, newFakeSink(), nil)
	o.Start()
	if src.opens != 2 {
		t.Fatalf("expected 2 counters opened, got %d", src.opens)
	}

	o.Stop()
	if src.closes != 2 {
		t.Errorf("expected all acquired counters closed on Stop, got %d", src.closes)
	}

	// Re-enable acquires fresh counters and starts from cleared state.
	o.Start()
	if src.opens != 4 {
		t.Errorf("expected re-acquisition on re-enable, opens=%d", src.opens)
	}
	if got := len(o.AllocHistory()); got != 0 {
		t.Errorf("expected cleared history after re-enable, got %d", got)
	}
	o.Stop()
}
