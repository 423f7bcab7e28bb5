// Package config provides configuration parsing for frame-pulse.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Clamp bounds for user-supplied values. Out-of-range settings are
// silently clamped, never rejected.
const (
	MinLogEntries = 50
	MaxLogEntries = 20000

	// DefaultHistory is the per-overlay sample capacity.
	DefaultHistory = 240

	DefaultMaxLogEntries = 1000
	DefaultFrameRate     = 60
)

// Config is the frame-pulse configuration.
type Config struct {
	// Loop holds demo host-loop settings.
	Loop LoopConfig `yaml:"loop"`

	// Refresh holds the throttling periods shared by all overlays.
	Refresh RefreshConfig `yaml:"refresh"`

	// Overlays holds per-overlay settings.
	Overlays OverlaysConfig `yaml:"overlays"`
}

// LoopConfig holds demo host-loop settings.
type LoopConfig struct {
	// FrameRate is the synthetic tick rate in frames per second.
	FrameRate int `yaml:"frame_rate"`
}

// RefreshConfig holds the display refresh throttling periods.
type RefreshConfig struct {
	// Text is how often derived text values republish (e.g. "250ms").
	Text string `yaml:"text"`
	// FPSWindow is the minimum window used as the FPS divisor floor.
	FPSWindow string `yaml:"fps_window"`
}

// OverlaysConfig holds per-overlay settings.
type OverlaysConfig struct {
	Frame   FrameOverlayConfig   `yaml:"frame"`
	Memory  MemoryOverlayConfig  `yaml:"memory"`
	Console ConsoleOverlayConfig `yaml:"console"`
	System  SystemOverlayConfig  `yaml:"system"`
}

// FrameOverlayConfig configures the frame-timing overlay.
type FrameOverlayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
	// History is the sample capacity of the timing ring buffers.
	History int `yaml:"history"`
	// TrackRenderTime toggles the render-duration ring and plot.
	TrackRenderTime bool `yaml:"track_render_time"`
}

// MemoryOverlayConfig configures the memory/GC overlay.
type MemoryOverlayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
	History int    `yaml:"history"`
}

// ConsoleOverlayConfig configures the log console overlay.
type ConsoleOverlayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
	// MaxEntries bounds the coalescing buffer, clamped to
	// [MinLogEntries, MaxLogEntries].
	MaxEntries int `yaml:"max_entries"`
	// Paused starts the console with incoming events dropped.
	Paused bool `yaml:"paused"`
	// Autoscroll keeps the view pinned to the newest entry.
	Autoscroll bool `yaml:"autoscroll"`
	// ShowContext displays the stack/context text under each entry.
	ShowContext bool `yaml:"show_context"`
}

// SystemOverlayConfig configures the static system-info overlay.
type SystemOverlayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Loop: LoopConfig{FrameRate: DefaultFrameRate},
		Refresh: RefreshConfig{
			Text:      "250ms",
			FPSWindow: "150ms",
		},
		Overlays: OverlaysConfig{
			Frame: FrameOverlayConfig{
				Enabled:         true,
				Title:           "Frame Stats",
				History:         DefaultHistory,
				TrackRenderTime: true,
			},
			Memory: MemoryOverlayConfig{
				Enabled: true,
				Title:   "Memory",
				History: DefaultHistory,
			},
			Console: ConsoleOverlayConfig{
				Enabled:    true,
				Title:      "Console",
				MaxEntries: DefaultMaxLogEntries,
				Autoscroll: true,
			},
			System: SystemOverlayConfig{
				Enabled: true,
				Title:   "System Info",
			},
		},
	}
}

// Load reads configuration from path. A missing file is not an error:
// the defaults are returned. Values outside their valid ranges are
// clamped silently.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.clamp()
	return cfg, nil
}

// clamp silently pulls out-of-range values back to their bounds.
func (c *Config) clamp() {
	if c.Loop.FrameRate < 1 {
		c.Loop.FrameRate = DefaultFrameRate
	}
	if c.Loop.FrameRate > 240 {
		c.Loop.FrameRate = 240
	}

	if c.Overlays.Frame.History < 2 {
		c.Overlays.Frame.History = DefaultHistory
	}
	if c.Overlays.Memory.History < 2 {
		c.Overlays.Memory.History = DefaultHistory
	}

	if c.Overlays.Console.MaxEntries < MinLogEntries {
		c.Overlays.Console.MaxEntries = MinLogEntries
	}
	if c.Overlays.Console.MaxEntries > MaxLogEntries {
		c.Overlays.Console.MaxEntries = MaxLogEntries
	}
}

// TextRefresh returns the parsed text refresh period in seconds.
func (c *Config) TextRefresh() float64 {
	return parseSeconds(c.Refresh.Text, 0.25)
}

// FPSWindow returns the parsed FPS divisor floor in seconds.
func (c *Config) FPSWindow() float64 {
	return parseSeconds(c.Refresh.FPSWindow, 0.15)
}

// parseSeconds parses a duration string, falling back to def (seconds)
// when the string is empty or malformed.
func parseSeconds(s string, def float64) float64 {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d.Seconds()
}
