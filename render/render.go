// Package render defines the outbound contract between the overlay
// drivers and whatever draws them. Drivers hand over a window title,
// labeled text lines, and zero or more plot requests; the sink either
// draws them or reports that it is not currently active, in which case
// the driver skips the rest of that frame's work.
package render

// Line is one labeled text row in an overlay window.
type Line struct {
	Label string
	Value string
}

// Plot is one chronological series to chart. Data is oldest first. When
// Min == Max the sink auto-scales.
type Plot struct {
	Label string
	Data  []float64
	Min   float64
	Max   float64
}

// Window is a full overlay draw request for one frame.
type Window struct {
	Title string
	Lines []Line
	Plots []Plot
}

// Sink consumes draw requests. Draw returns false when the sink is not
// currently active; that is not an error, the driver simply retries
// next frame. Sinks must not retain the slices inside w past the call.
type Sink interface {
	Draw(w Window) bool
}

// NotAvailable is the sentinel text shown for data sources the current
// environment does not provide.
const NotAvailable = "N/A"
