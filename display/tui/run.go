package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/frame-pulse/overlay"
)

// Run starts the dashboard and blocks until the user quits. The sink is
// activated for the lifetime of the program so overlay drivers start
// delivering draw requests, and deactivated again on the way out.
func Run(sink *Sink, consoleDriver *overlay.ConsoleOverlay, titles TabTitles) error {
	if !stdoutIsTTY() {
		return fmt.Errorf("tui: stdout is not a terminal")
	}

	sink.SetActive(true)
	defer sink.SetActive(false)

	p := tea.NewProgram(
		NewModel(sink, consoleDriver, titles),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
