// Package counters models best-effort named numeric counters exposed by
// the host environment. Each counter is acquired independently; a
// counter that is missing on the current platform degrades the display
// to "N/A" and never prevents the rest from being used.
package counters

import "fmt"

// Counter is one acquired named counter. Read reports the last known
// value and whether it is currently readable. Close releases whatever
// the source acquired; it must be safe to call once per counter on
// every overlay disable path.
type Counter interface {
	Read() (float64, bool)
	Close()
}

// Source opens named counters. Open failures are per-name: a source
// that cannot provide one name may still provide others.
type Source interface {
	Open(name string) (Counter, error)
}

// Delta wraps a cumulative counter so each Read returns the increase
// since the previous Read. The first Read establishes the baseline and
// reports zero. Cumulative counters never decrease, so no negative
// clamp is needed here.
type Delta struct {
	c      Counter
	prev   float64
	primed bool
}

// NewDelta wraps c, which must report a cumulative value.
func NewDelta(c Counter) *Delta {
	return &Delta{c: c}
}

// Read returns the increase since the previous successful Read.
func (d *Delta) Read() (float64, bool) {
	v, ok := d.c.Read()
	if !ok {
		return 0, false
	}
	if !d.primed {
		d.prev = v
		d.primed = true
		return 0, true
	}
	delta := v - d.prev
	d.prev = v
	return delta, true
}

// Close releases the wrapped counter.
func (d *Delta) Close() { d.c.Close() }

// Func adapts a plain function to the Counter interface. Close is a
// no-op. Used by tests and by hosts that surface ad-hoc values.
type Func func() (float64, bool)

func (f Func) Read() (float64, bool) { return f() }
func (f Func) Close()                {}

// errNoSource is returned by Set when constructed without a source.
var errNoSource = fmt.Errorf("counters: no source available")
