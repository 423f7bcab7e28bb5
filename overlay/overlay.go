// Package overlay provides the per-frame diagnostic overlay drivers and
// their registration. Each driver owns its sample buffers, follows the
// same lifecycle (disabled, enabled from a cleared state, per-frame
// sampling and throttled refresh, disabled again with resources
// released), and hands formatted text and plot data to a render sink.
package overlay

// Driver is the contract every overlay satisfies. The host calls OnTick
// once per frame with the unscaled delta time in seconds, and
// OnRenderPassEnd once per completed render pass. Both are cheap,
// synchronous, and never block. Start and Stop are idempotent;
// re-starting always begins from a fully cleared state.
type Driver interface {
	// Name returns the overlay's unique identifier (e.g. "frame").
	Name() string

	// Start enables the overlay: buffers cleared, aggregates reset,
	// external hooks registered, optional counters acquired.
	Start()

	// Stop disables the overlay and releases everything Start
	// acquired. Safe to call when already stopped.
	Stop()

	// OnTick samples the overlay's live metrics and draws. dt is the
	// elapsed time since the previous frame, in seconds.
	OnTick(dt float64)

	// OnRenderPassEnd is invoked once per completed render pass.
	// Overlays that do not measure render time ignore it.
	OnRenderPassEnd()
}

// Registry holds registered overlay drivers and fans the host's frame
// callbacks out to them in registration order.
type Registry struct {
	drivers []Driver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make([]Driver, 0)}
}

// Register adds a driver. A driver with the same name replaces the
// existing one.
func (r *Registry) Register(d Driver) {
	for i, existing := range r.drivers {
		if existing.Name() == d.Name() {
			r.drivers[i] = d
			return
		}
	}
	r.drivers = append(r.drivers, d)
}

// Get returns a driver by name.
func (r *Registry) Get(name string) (Driver, bool) {
	for _, d := range r.drivers {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// All returns the registered drivers in registration order.
func (r *Registry) All() []Driver {
	out := make([]Driver, len(r.drivers))
	copy(out, r.drivers)
	return out
}

// StartAll starts every registered driver.
func (r *Registry) StartAll() {
	for _, d := range r.drivers {
		d.Start()
	}
}

// StopAll stops every registered driver.
func (r *Registry) StopAll() {
	for _, d := range r.drivers {
		d.Stop()
	}
}

// Tick forwards the host's frame tick to every driver.
func (r *Registry) Tick(dt float64) {
	for _, d := range r.drivers {
		d.OnTick(dt)
	}
}

// RenderPassEnd forwards the host's end-of-render-pass notification.
func (r *Registry) RenderPassEnd() {
	for _, d := range r.drivers {
		d.OnRenderPassEnd()
	}
}
