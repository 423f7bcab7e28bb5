package overlay

import (
	"testing"

	"gitlab.com/tinyland/lab/frame-pulse/render"
)

// fakeSink records draw requests. When inactive it reports false and
// records nothing, like a sink whose display is not running.
type fakeSink struct {
	active  bool
	windows []render.Window
}

func newFakeSink() *fakeSink { return &fakeSink{active: true} }

func (s *fakeSink) Draw(w render.Window) bool {
	if !s.active {
		return false
	}
	// Copy the slices: drivers reuse their scratch buffers.
	cp := render.Window{Title: w.Title}
	cp.Lines = append(cp.Lines, w.Lines...)
	for _, p := range w.Plots {
		cp.Plots = append(cp.Plots, render.Plot{
			Label: p.Label,
			Data:  append([]float64{}, p.Data...),
			Min:   p.Min,
			Max:   p.Max,
		})
	}
	s.windows = append(s.windows, cp)
	return true
}

func (s *fakeSink) last(t *testing.T) render.Window {
	t.Helper()
	if len(s.windows) == 0 {
		t.Fatal("expected at least one draw")
	}
	return s.windows[len(s.windows)-1]
}

func lineValue(t *testing.T, w render.Window, label string) string {
	t.Helper()
	for _, l := range w.Lines {
		if l.Label == label {
			return l.Value
		}
	}
	t.Fatalf("no line labeled %q in %+v", label, w.Lines)
	return ""
}

// stubDriver counts lifecycle calls for registry tests.
type stubDriver struct {
	name                       string
	starts, stops, ticks, ends int
}

func (d *stubDriver) Name() string     { return d.name }
func (d *stubDriver) Start()           { d.starts++ }
func (d *stubDriver) Stop()            { d.stops++ }
func (d *stubDriver) OnTick(float64)   { d.ticks++ }
func (d *stubDriver) OnRenderPassEnd() { d.ends++ }

func TestRegistryRegisterAndReplace(t *testing.T) {
	r := NewRegistry()
	a := &stubDriver{name: "frame"}
	b := &stubDriver{name: "memory"}
	r.Register(a)
	r.Register(b)

	if len(r.All()) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(r.All()))
	}

	replacement := &stubDriver{name: "frame"}
	r.Register(replacement)
	if len(r.All()) != 2 {
		t.Fatalf("expected replacement not to grow the registry, got %d", len(r.All()))
	}
	got, ok := r.Get("frame")
	if !ok || got != Driver(replacement) {
		t.Error("expected Get to return the replacement driver")
	}
}

func TestRegistryFanOut(t *testing.T) {
	r := NewRegistry()
	a := &stubDriver{name: "a"}
	b := &stubDriver{name: "b"}
	r.Register(a)
	r.Register(b)

	r.StartAll()
	r.Tick(0.016)
	r.Tick(0.016)
	r.RenderPassEnd()
	r.StopAll()

	for _, d := range []*stubDriver{a, b} {
		if d.starts != 1 || d.stops != 1 || d.ticks != 2 || d.ends != 1 {
			t.Errorf("driver %s: unexpected call counts %+v", d.name, *d)
		}
	}
}
