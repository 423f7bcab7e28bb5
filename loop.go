package main

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"gitlab.com/tinyland/lab/frame-pulse/config"
	"gitlab.com/tinyland/lab/frame-pulse/overlay"
)

// runLoop drives the synthetic demo workload: a fixed-rate frame loop
// that ticks the overlay registry with real measured frame deltas,
// allocates a little garbage so the memory plots move, and emits log
// traffic for the console overlay. It returns when ctx is cancelled.
func runLoop(ctx context.Context, cfg *config.Config, reg *overlay.Registry, traffic *slog.Logger) {
	rate := cfg.Loop.FrameRate
	if rate <= 0 {
		rate = config.DefaultFrameRate
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	// retained grows and shrinks so heap-in-use has a shape, not just
	// a flat line with GC sawtooth.
	var retained [][]byte
	frame := 0
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		frame++

		reg.Tick(dt)
		simulateWork(&retained, frame)
		emitTraffic(traffic, frame)
		reg.RenderPassEnd()
	}
}

// simulateWork allocates per-frame garbage plus a slowly-cycling
// retained set so both the allocation-rate and heap plots show motion.
func simulateWork(retained *[][]byte, frame int) {
	// Transient allocation, 8-72 KiB per frame.
	garbage := make([]byte, 8*1024+rand.Intn(64*1024))
	garbage[0] = byte(frame)

	// Grow the retained set for ~5s at 60fps, then release it.
	*retained = append(*retained, make([]byte, 32*1024))
	if len(*retained) > 300 {
		*retained = (*retained)[:0]
	}
}

// emitTraffic generates console events: steady info chatter with
// repeats for coalescing, occasional warnings and rare errors.
func emitTraffic(traffic *slog.Logger, frame int) {
	switch {
	case frame%600 == 0:
		traffic.Error("asset load failed", "asset", "textures/atlas_07.ktx", "frame", frame)
	case frame%240 == 0:
		traffic.Warn("frame budget exceeded", "budget_ms", 16.6, "frame", frame)
	case frame%90 == 0:
		traffic.Info("checkpoint saved", "frame", frame)
	case frame%30 == 0:
		// Identical message and context back to back, so the console
		// shows its repeat counting.
		traffic.Info("spawn wave complete")
	}
}
