package overlay

import (
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/frame-pulse/console"
)

func newConsoleFixture(cfg ConsoleConfig) (*ConsoleOverlay, *console.Broadcaster, *fakeSink) {
	source := console.NewBroadcaster()
	sink := newFakeSink()
	o := NewConsoleOverlay(cfg, source, sink, nil)
	return o, source, sink
}

func TestConsoleOverlayReceivesWhileEnabled(t *testing.T) {
	o, source, sink := newConsoleFixture(ConsoleConfig{MaxEntries: 100})
	o.Start()
	defer o.Stop()

	source.Publish(console.Event{Level: console.LevelError, Message: "boom", Context: "stack"})
	source.Publish(console.Event{Level: console.LevelError, Message: "boom", Context: "stack"})
	o.OnTick(0.016)

	w := sink.last(t)
	// Header line plus one coalesced entry.
	if len(w.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(w.Lines), w.Lines)
	}
	if !strings.Contains(w.Lines[1].Value, "boom (x2)") {
		t.Errorf("expected coalesced entry with repeat suffix, got %q", w.Lines[1].Value)
	}
	if !strings.Contains(w.Lines[0].Value, "2 error") {
		t.Errorf("expected error total of 2, got %q", w.Lines[0].Value)
	}
}

func TestConsoleOverlayStopUnsubscribes(t *testing.T) {
	o, source, _ := newConsoleFixture(ConsoleConfig{MaxEntries: 100})
	o.Start()
	source.Publish(console.Event{Message: "kept"})
	o.Stop()
	source.Publish(console.Event{Message: "dropped"})

	if got := o.Len(); got != 1 {
		t.Errorf("expected events after Stop to be dropped, len=%d", got)
	}
}

func TestConsoleOverlayDoubleStartSingleSubscription(t *testing.T) {
	o, source, _ := newConsoleFixture(ConsoleConfig{MaxEntries: 100})
	o.Start()
	o.Start() // idempotent enable must not double-subscribe

	source.Publish(console.Event{Message: "once"})
	if got := o.Len(); got != 1 {
		t.Errorf("expected a single delivery, got %d entries", got)
	}
	o.Stop()
}

func TestConsoleOverlayFilterIsPresentationOnly(t *testing.T) {
	o, source, sink := newConsoleFixture(ConsoleConfig{MaxEntries: 100})
	o.Start()
	defer o.Stop()

	source.Publish(console.Event{Message: "connection lost"})
	source.Publish(console.Event{Message: "frame spike"})
	o.SetFilter("CONNECTION")
	o.OnTick(0.016)

	w := sink.last(t)
	if len(w.Lines) != 2 {
		t.Fatalf("expected header plus one matching line, got %d", len(w.Lines))
	}
	if !strings.Contains(w.Lines[1].Value, "connection lost") {
		t.Errorf("expected the matching entry, got %q", w.Lines[1].Value)
	}

	// The buffer itself is untouched by filtering.
	if got := o.Len(); got != 2 {
		t.Errorf("expected both entries still stored, got %d", got)
	}
}

func TestConsoleOverlayShowContext(t *testing.T) {
	o, source, sink := newConsoleFixture(ConsoleConfig{MaxEntries: 100, ShowContext: true})
	o.Start()
	defer o.Stop()

	source.Publish(console.Event{Level: console.LevelError, Message: "boom", Context: "at main.go:10"})
	o.OnTick(0.016)

	if got := sink.last(t).Lines[1].Value; !strings.Contains(got, "at main.go:10") {
		t.Errorf("expected context text in the entry, got %q", got)
	}

	o.SetShowContext(false)
	o.OnTick(0.016)
	if got := sink.last(t).Lines[1].Value; strings.Contains(got, "at main.go:10") {
		t.Errorf("expected context hidden, got %q", got)
	}
}

func TestConsoleOverlayPauseAndClear(t *testing.T) {
	o, source, sink := newConsoleFixture(ConsoleConfig{MaxEntries: 100})
	o.Start()
	defer o.Stop()

	if o.TogglePause() != true {
		t.Fatal("expected TogglePause to report paused")
	}
	source.Publish(console.Event{Message: "dropped"})
	if o.Len() != 0 {
		t.Error("expected paused events to be dropped")
	}

	o.OnTick(0.016)
	if got := sink.last(t).Lines[0].Value; !strings.Contains(got, "[paused]") {
		t.Errorf("expected paused marker in the status line, got %q", got)
	}

	o.TogglePause()
	source.Publish(console.Event{Message: "kept"})
	o.Clear()
	if o.Len() != 0 {
		t.Error("expected Clear to empty the buffer")
	}
}

func TestConsoleOverlayConcurrentPresentationChanges(t *testing.T) {
	// The display's input handler mutates filter/context/autoscroll
	// from its own goroutine while the frame loop keeps ticking. Run
	// both at once; the race detector flags unguarded access.
	o, source, _ := newConsoleFixture(ConsoleConfig{MaxEntries: 100})
	o.Start()
	defer o.Stop()

	source.Publish(console.Event{Level: console.LevelWarning, Message: "disk pressure", Context: "mount=/"})

	const iterations = 2000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < iterations; i++ {
			o.SetFilter("disk")
			o.SetShowContext(i%2 == 0)
			o.SetAutoscroll(i%2 == 1)
			o.SetFilter("")
			_ = o.Filter()
			_ = o.ShowContext()
			_ = o.Autoscroll()
		}
	}()

	for i := 0; i < iterations; i++ {
		o.OnTick(0.016)
	}
	<-done
}

func TestConsoleOverlayInitialStateFromConfig(t *testing.T) {
	o, source, _ := newConsoleFixture(ConsoleConfig{
		MaxEntries: 100,
		Paused:     true,
		Autoscroll: true,
	})
	o.Start()
	defer o.Stop()

	if !o.Paused() {
		t.Error("expected overlay to start paused per config")
	}
	if !o.Autoscroll() {
		t.Error("expected autoscroll on per config")
	}
	source.Publish(console.Event{Message: "dropped while paused"})
	if o.Len() != 0 {
		t.Error("expected configured pause to drop events")
	}
}
