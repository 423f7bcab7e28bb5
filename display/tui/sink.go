package tui

import (
	"sync"

	"gitlab.com/tinyland/lab/frame-pulse/render"
)

// Sink is the terminal render sink. Overlay drivers draw into it from
// the frame-tick goroutine while the Bubbletea program reads the latest
// windows from the UI goroutine, so access is guarded. While the
// program is not running the sink reports inactive and drivers skip
// their draw work.
type Sink struct {
	mu      sync.Mutex
	active  bool
	order   []string
	windows map[string]render.Window
}

// NewSink creates an inactive sink.
func NewSink() *Sink {
	return &Sink{windows: make(map[string]render.Window)}
}

// Draw implements render.Sink. The request is deep-copied because
// drivers reuse their plot slices frame to frame.
func (s *Sink) Draw(w render.Window) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return false
	}

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

	if _, seen := s.windows[w.Title]; !seen {
		s.order = append(s.order, w.Title)
	}
	s.windows[w.Title] = cp
	return true
}

// SetActive flips the sink's availability. Deactivating keeps the last
// windows so a restarted display has something to show immediately.
func (s *Sink) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// Active reports whether draws are currently accepted.
func (s *Sink) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Window returns the most recent draw request for the given title.
func (s *Sink) Window(title string) (render.Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[title]
	return w, ok
}

// Titles returns the window titles in first-draw order.
func (s *Sink) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
