package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/frame-pulse/display/widgets"
	"gitlab.com/tinyland/lab/frame-pulse/render"
)

const (
	headerHeight = 3
	footerHeight = 2
	minBodyWidth = 20
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	content := m.renderTabContent()

	return m.zm.Scan(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, int(tabCount))
	for tab := TabFrame; tab < tabCount; tab++ {
		label := fmt.Sprintf(" %s ", tabNames[tab])
		if tab == m.activeTab {
			label = styleActiveTab.Render(label)
		} else {
			label = styleInactiveTab.Render(label)
		}
		tabs = append(tabs, m.zm.Mark(tabZoneIDs[tab], label))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	title := styleTitle.Render("frame-pulse")

	gap := m.width - lipgloss.Width(bar) - lipgloss.Width(title)
	if gap < 1 {
		gap = 1
	}
	line := bar + strings.Repeat(" ", gap) + title

	return styleHeader.Width(m.width).Render(line)
}

func (m Model) renderFooter() string {
	if m.filtering {
		return styleFooter.Width(m.width).Render("filter: " + m.filterInput.View())
	}
	m.help.Width = m.width
	if m.showHelp {
		return styleFooter.Width(m.width).Render(m.help.FullHelpView(keys.FullHelp()))
	}
	return styleFooter.Width(m.width).Render(m.help.ShortHelpView(keys.ShortHelp()))
}

func (m Model) renderTabContent() string {
	bodyHeight := m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch m.activeTab {
	case TabConsole:
		body = m.renderConsoleBody()
	default:
		w, ok := m.sink.Window(m.tabTitle(m.activeTab))
		if !ok {
			body = styleFooter.Render("overlay disabled")
		} else {
			body = m.renderWindow(w)
		}
	}

	return styleContent.Width(m.width).Height(bodyHeight).Render(body)
}

// renderWindow draws a metrics window: its label/value lines followed
// by a sparkline and gauge per plot.
func (m Model) renderWindow(w render.Window) string {
	var b strings.Builder

	labelWidth := 0
	for _, line := range w.Lines {
		if n := lipgloss.Width(line.Label); n > labelWidth {
			labelWidth = n
		}
	}

	for _, line := range w.Lines {
		b.WriteString(styleLabel.Width(labelWidth + 2).Render(line.Label))
		b.WriteString(styleValue.Render(line.Value))
		b.WriteString("\n")
	}

	plotWidth := m.width - 4
	if plotWidth < minBodyWidth {
		plotWidth = minBodyWidth
	}

	for _, plot := range w.Plots {
		b.WriteString("\n")
		b.WriteString(styleLabel.Render(plot.Label))
		b.WriteString("\n")
		if plot.Min == plot.Max {
			b.WriteString(widgets.RenderSparklineWithRange(plot.Data, plotWidth))
		} else {
			b.WriteString(widgets.RenderSparkline(widgets.SparklineConfig{
				Data:  plot.Data,
				Width: plotWidth,
				Min:   plot.Min,
				Max:   plot.Max,
				Color: colorSecondary,
			}))
		}
		b.WriteString("\n")
		b.WriteString(renderPlotGauge(plot))
		b.WriteString("\n")
	}

	return b.String()
}

// renderPlotGauge shows the latest plot sample as a percentage of the
// plot's range. Auto-scaled plots use the observed series range.
func renderPlotGauge(p render.Plot) string {
	if len(p.Data) == 0 {
		return ""
	}
	lo, hi := p.Min, p.Max
	if lo == hi {
		lo, hi = p.Data[0], p.Data[0]
		for _, v := range p.Data {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if hi <= lo {
		return ""
	}
	last := p.Data[len(p.Data)-1]
	cfg := widgets.DefaultGaugeConfig()
	cfg.Label = "now"
	cfg.Percent = (last - lo) / (hi - lo) * 100
	return widgets.RenderGauge(cfg)
}

func (m Model) renderConsoleBody() string {
	w, ok := m.sink.Window(m.titles.Console)
	if !ok || m.console == nil {
		return styleFooter.Render("console overlay disabled")
	}

	status := ""
	if len(w.Lines) > 0 {
		status = styleFooter.Render(w.Lines[0].Label + " " + w.Lines[0].Value)
	}

	pauseLabel := " pause "
	if m.console.Paused() {
		pauseLabel = " resume "
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.zm.Mark(zonePause, styleButton.Render(pauseLabel)),
		" ",
		m.zm.Mark(zoneClear, styleButton.Render(" clear ")),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, status, "  ", buttons),
		m.logView.View(),
	)
}

// syncLogView pushes the latest console window into the viewport.
func (m *Model) syncLogView() {
	if m.console == nil {
		return
	}
	w, ok := m.sink.Window(m.titles.Console)
	if !ok {
		return
	}

	var b strings.Builder
	for i, line := range w.Lines {
		if i == 0 {
			continue // status line rendered above the viewport
		}
		b.WriteString(styleLogLine(line.Label).Render(line.Label))
		b.WriteString(" ")
		b.WriteString(line.Value)
		b.WriteString("\n")
	}

	if !m.logViewReady {
		m.resizeLogView()
	}
	m.logView.SetContent(b.String())
	if m.console.Autoscroll() {
		m.logView.GotoBottom()
	}
}

func (m *Model) resizeLogView() {
	if !m.ready {
		return
	}
	w := m.width - 2
	if w < minBodyWidth {
		w = minBodyWidth
	}
	h := m.height - headerHeight - footerHeight - 2
	if h < 1 {
		h = 1
	}
	if !m.logViewReady {
		m.logView = viewport.New(w, h)
		m.logViewReady = true
		return
	}
	m.logView.Width = w
	m.logView.Height = h
}

// styleLogLine picks a color from the severity word in the entry label.
func styleLogLine(label string) lipgloss.Style {
	switch {
	case strings.Contains(label, "ERROR"):
		return styleLevelError
	case strings.Contains(label, "WARN"):
		return styleLevelWarn
	default:
		return styleLevelInfo
	}
}
