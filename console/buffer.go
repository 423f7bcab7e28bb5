// Package console implements the bounded log store behind the console
// overlay: consecutive identical events collapse into one entry with a
// repeat count, and the oldest entries are evicted once the configured
// maximum is exceeded. The buffer is the only structure in frame-pulse
// shared across threads; log events may arrive from any goroutine while
// the frame tick drains snapshots, so every access goes through the
// mutex.
package console

import (
	"sync"
	"time"
)

// Level classifies a log event.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the display label for the level.
func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Entry is one stored log record. Count is how many consecutive
// identical events it represents, at least 1.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Context string
	Count   int
}

// DefaultMaxEntries is the buffer bound used when none is configured.
const DefaultMaxEntries = 1000

// Buffer is the bounded coalescing log store. All methods are safe for
// concurrent use.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
	max     int
	paused  bool

	// now is overridable for tests.
	now func() time.Time
}

// NewBuffer creates a buffer bounded to max entries. Non-positive
// maxima fall back to DefaultMaxEntries; the [50, 20000] clamp on
// user-supplied values lives in the config package.
func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Buffer{
		max: max,
		now: time.Now,
	}
}

// Append records one log event. If the tail entry carries the same
// level, message, and context, its repeat count is bumped instead of
// storing a duplicate; coalescing only ever looks at the tail. When a
// new entry pushes the buffer past its maximum, the oldest entries are
// evicted. While paused, events are dropped outright.
func (b *Buffer) Append(level Level, message, context string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.paused {
		return
	}

	if n := len(b.entries); n > 0 {
		tail := &b.entries[n-1]
		if tail.Level == level && tail.Message == message && tail.Context == context {
			tail.Count++
			return
		}
	}

	b.entries = append(b.entries, Entry{
		Time:    b.now(),
		Level:   level,
		Message: message,
		Context: context,
		Count:   1,
	})
	if over := len(b.entries) - b.max; over > 0 {
		b.entries = b.entries[over:]
	}
}

// Snapshot returns a copy of the full ordered contents, oldest first.
// The reader filters and renders the copy without holding the lock, so
// a slow draw never blocks a logging goroutine.
func (b *Buffer) Snapshot() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the current number of stored entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// SetPaused toggles the paused state. While paused, Append drops
// events; they are not queued for later.
func (b *Buffer) SetPaused(paused bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = paused
}

// Paused reports the paused state.
func (b *Buffer) Paused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paused
}
