// Package tui renders the diagnostics overlays as a tabbed Bubbletea
// dashboard. The overlay drivers keep drawing into the Sink from the
// host's frame loop; the TUI just shows the latest window per overlay
// and forwards console interactions back to the console driver.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/frame-pulse/overlay"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabFrame Tab = iota
	TabMemory
	TabConsole
	TabSystem
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabFrame:   "Frame",
	TabMemory:  "Memory",
	TabConsole: "Console",
	TabSystem:  "System",
}

// tabZoneIDs are the bubblezone identifiers for the clickable tab bar.
var tabZoneIDs = map[Tab]string{
	TabFrame:   "tab-frame",
	TabMemory:  "tab-memory",
	TabConsole: "tab-console",
	TabSystem:  "tab-system",
}

const (
	zonePause = "console-pause"
	zoneClear = "console-clear"
)

// refreshInterval is how often the view re-reads the sink. The overlay
// data itself refreshes on the host's frame cadence regardless.
const refreshInterval = 100 * time.Millisecond

// refreshMsg triggers a view refresh from the sink.
type refreshMsg time.Time

// TabTitles maps the four tabs onto the configured overlay window
// titles used as sink keys.
type TabTitles struct {
	Frame   string
	Memory  string
	Console string
	System  string
}

// Model is the top-level Bubbletea model for the diagnostics TUI.
type Model struct {
	sink    *Sink
	console *overlay.ConsoleOverlay // may be nil when disabled
	titles  TabTitles
	zm      *zone.Manager

	activeTab Tab
	width     int
	height    int
	ready     bool

	filterInput textinput.Model
	filtering   bool

	logView      viewport.Model
	logViewReady bool

	help     help.Model
	showHelp bool
}

// NewModel returns an initialized Model with the frame tab active.
func NewModel(sink *Sink, consoleDriver *overlay.ConsoleOverlay, titles TabTitles) Model {
	filter := textinput.New()
	filter.Placeholder = "filter messages"
	filter.CharLimit = 80

	return Model{
		sink:        sink,
		console:     consoleDriver,
		titles:      titles,
		zm:          zone.New(),
		activeTab:   TabFrame,
		filterInput: filter,
		help:        help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickRefresh()
}

func tickRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.syncLogView()
		return m, tickRefresh()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogView()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the filter input has focus, keys edit the filter.
	if m.filtering {
		switch msg.String() {
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			if m.console != nil {
				m.console.SetFilter("")
			}
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			if m.console != nil {
				m.console.SetFilter(m.filterInput.Value())
			}
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.NextTab):
		m.activeTab = (m.activeTab + 1) % tabCount
	case key.Matches(msg, keys.PrevTab):
		m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
	case key.Matches(msg, keys.Tab1):
		m.activeTab = TabFrame
	case key.Matches(msg, keys.Tab2):
		m.activeTab = TabMemory
	case key.Matches(msg, keys.Tab3):
		m.activeTab = TabConsole
	case key.Matches(msg, keys.Tab4):
		m.activeTab = TabSystem
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Pause):
		if m.activeTab == TabConsole && m.console != nil {
			m.console.TogglePause()
		}
	case key.Matches(msg, keys.ClearLog):
		if m.activeTab == TabConsole && m.console != nil {
			m.console.Clear()
		}
	case key.Matches(msg, keys.Filter):
		if m.activeTab == TabConsole && m.console != nil {
			m.filtering = true
			return m, m.filterInput.Focus()
		}
	case key.Matches(msg, keys.Context):
		if m.activeTab == TabConsole && m.console != nil {
			m.console.SetShowContext(!m.console.ShowContext())
		}
	case key.Matches(msg, keys.Autoscroll):
		if m.activeTab == TabConsole && m.console != nil {
			m.console.SetAutoscroll(!m.console.Autoscroll())
		}
	case key.Matches(msg, keys.ScrollUp):
		if m.activeTab == TabConsole {
			m.logView.ScrollUp(1)
		}
	case key.Matches(msg, keys.ScrollDown):
		if m.activeTab == TabConsole {
			m.logView.ScrollDown(1)
		}
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for tab, id := range tabZoneIDs {
		if m.zm.Get(id).InBounds(msg) {
			m.activeTab = tab
			return m, nil
		}
	}

	if m.activeTab == TabConsole && m.console != nil {
		if m.zm.Get(zonePause).InBounds(msg) {
			m.console.TogglePause()
		}
		if m.zm.Get(zoneClear).InBounds(msg) {
			m.console.Clear()
		}
	}

	return m, nil
}

// tabTitle maps a tab to its configured overlay window title.
func (m Model) tabTitle(tab Tab) string {
	switch tab {
	case TabFrame:
		return m.titles.Frame
	case TabMemory:
		return m.titles.Memory
	case TabConsole:
		return m.titles.Console
	case TabSystem:
		return m.titles.System
	default:
		return ""
	}
}
