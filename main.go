// frame-pulse is an in-process real-time diagnostics overlay toolkit
// with a demo host.
//
// The demo host runs a synthetic frame loop that ticks a set of
// diagnostics overlays: frame timing with FPS, managed-memory and
// allocation-rate history, a coalescing log console, and static system
// info. The overlays render into a tabbed Bubbletea dashboard.
//
// Usage:
//
//	frame-pulse [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/frame-pulse/config.yaml)
//	-tui              Launch the interactive dashboard (default true)
//	-duration         Headless run length, 0 = until interrupted (with -tui=false)
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gitlab.com/tinyland/lab/frame-pulse/config"
	"gitlab.com/tinyland/lab/frame-pulse/console"
	"gitlab.com/tinyland/lab/frame-pulse/counters"
	"gitlab.com/tinyland/lab/frame-pulse/display/tui"
	"gitlab.com/tinyland/lab/frame-pulse/hostinfo"
	"gitlab.com/tinyland/lab/frame-pulse/overlay"
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "frame-pulse", "config.yaml")
}

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/frame-pulse/config.yaml)")
		runTUI      = flag.Bool("tui", true, "Launch the interactive dashboard")
		runFor      = flag.Duration("duration", 0, "Headless run length, 0 = until interrupted (with -tui=false)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("frame-pulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Host logger for the overlays' own debug/warn output. The
	// synthetic traffic logger below is separate: it feeds the console
	// overlay through the broadcaster.
	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	broadcaster := console.NewBroadcaster()
	traffic := slog.New(console.NewSlogHandler(broadcaster, slog.LevelDebug))

	sink := tui.NewSink()
	registry := overlay.NewRegistry()

	var consoleDriver *overlay.ConsoleOverlay
	ov := cfg.Overlays

	if ov.Frame.Enabled {
		registry.Register(overlay.NewFrameOverlay(overlay.FrameConfig{
			Title:           ov.Frame.Title,
			History:         ov.Frame.History,
			TrackRenderTime: ov.Frame.TrackRenderTime,
			TextRefresh:     cfg.TextRefresh(),
			FPSWindow:       cfg.FPSWindow(),
		}, sink, logger))
	}
	if ov.Memory.Enabled {
		registry.Register(overlay.NewMemoryOverlay(overlay.MemoryConfig{
			Title:       ov.Memory.Title,
			History:     ov.Memory.History,
			TextRefresh: cfg.TextRefresh(),
			FPSWindow:   cfg.FPSWindow(),
		}, counters.NewRuntimeSource(), sink, logger))
	}
	if ov.Console.Enabled {
		consoleDriver = overlay.NewConsoleOverlay(overlay.ConsoleConfig{
			Title:       ov.Console.Title,
			MaxEntries:  ov.Console.MaxEntries,
			Paused:      ov.Console.Paused,
			Autoscroll:  ov.Console.Autoscroll,
			ShowContext: ov.Console.ShowContext,
		}, broadcaster, sink, logger)
		registry.Register(consoleDriver)
	}
	if ov.System.Enabled {
		registry.Register(overlay.NewSysInfoOverlay(overlay.SysInfoConfig{
			Title: ov.System.Title,
		}, &hostinfo.System{}, sink, logger))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	registry.StartAll()
	defer registry.StopAll()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		runLoop(ctx, cfg, registry, traffic)
	}()

	if *runTUI {
		defer func() {
			if r := recover(); r != nil {
				// Restore the terminal from alt-screen before printing.
				fmt.Print("\x1b[?1049l\x1b[?25h")
				fmt.Fprintf(os.Stderr, "frame-pulse: dashboard panic: %v\n", r)
				os.Exit(1)
			}
		}()

		titles := tui.TabTitles{
			Frame:   ov.Frame.Title,
			Memory:  ov.Memory.Title,
			Console: ov.Console.Title,
			System:  ov.System.Title,
		}
		if err := tui.Run(sink, consoleDriver, titles); err != nil {
			fmt.Fprintf(os.Stderr, "frame-pulse: %v\n", err)
			cancel()
			<-loopDone
			os.Exit(1)
		}
		cancel()
		<-loopDone
		return
	}

	// Headless: the overlays keep sampling, they just have no active
	// sink to draw into.
	logger.Info("running headless", "frame_rate", cfg.Loop.FrameRate)
	if *runFor > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(*runFor):
			cancel()
		}
	} else {
		<-ctx.Done()
	}
	<-loopDone
}
