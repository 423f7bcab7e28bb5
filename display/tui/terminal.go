package tui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// stdoutIsTTY reports whether stdout is attached to a terminal. The
// sink only activates inside a real terminal; when output is piped the
// overlays keep sampling but skip their draw work.
func stdoutIsTTY() bool {
	return term.IsTerminal(os.Stdout.Fd())
}
