package counters

import (
	"io"
	"log/slog"
)

// Set holds a batch of counters acquired from one source. Acquisition
// is per-name: names that fail to open are recorded as unavailable and
// the rest stay usable. Close releases every counter that did open,
// including when others failed.
type Set struct {
	acquired map[string]Counter
	logger   *slog.Logger
}

// OpenSet acquires each named counter from src. A nil src yields a Set
// where every name reads as unavailable, which keeps disable paths
// uniform. If logger is nil, a no-op logger is used.
func OpenSet(src Source, names []string, logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Set{
		acquired: make(map[string]Counter, len(names)),
		logger:   logger,
	}

	for _, name := range names {
		if src == nil {
			s.logger.Debug("counter unavailable", slog.String("name", name), slog.Any("error", errNoSource))
			continue
		}
		c, err := src.Open(name)
		if err != nil {
			s.logger.Debug("counter unavailable", slog.String("name", name), slog.Any("error", err))
			continue
		}
		s.acquired[name] = c
	}
	return s
}

// Get returns the acquired counter for name, if any.
func (s *Set) Get(name string) (Counter, bool) {
	c, ok := s.acquired[name]
	return c, ok
}

// Read reads the named counter. Unavailable names report ok=false.
func (s *Set) Read(name string) (float64, bool) {
	c, ok := s.acquired[name]
	if !ok {
		return 0, false
	}
	return c.Read()
}

// Replace swaps the counter stored under name, closing nothing. Used to
// wrap an acquired cumulative counter in a Delta.
func (s *Set) Replace(name string, c Counter) {
	if _, ok := s.acquired[name]; ok {
		s.acquired[name] = c
	}
}

// Close releases every acquired counter. The Set is empty afterwards
// and safe to Close again.
func (s *Set) Close() {
	for name, c := range s.acquired {
		c.Close()
		delete(s.acquired, name)
	}
}
