// Package ui holds the CRT terminal theme shared by the CLI output and
// the TUI dashboard.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitexe/internal/engine"
	"habitexe/internal/storage"
)

var (
	cText  = lipgloss.Color("255") // phosphor white
	cGood  = lipgloss.Color("42")  // green
	cBad   = lipgloss.Color("196") // red
	cMuted = lipgloss.Color("244") // gray
	cDim   = lipgloss.Color("238") // near-background
	cAI    = lipgloss.Color("51")  // cyan
	cAlert = lipgloss.Color("220") // amber
)

var (
	Title  = lipgloss.NewStyle().Bold(true).Foreground(cText)
	Header = lipgloss.NewStyle().Bold(true).Foreground(cMuted)
	Text   = lipgloss.NewStyle().Foreground(cText)
	Good   = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Bad    = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Muted  = lipgloss.NewStyle().Foreground(cMuted)
	Dim    = lipgloss.NewStyle().Foreground(cDim)
	AI     = lipgloss.NewStyle().Foreground(cAI)
	Alert  = lipgloss.NewStyle().Bold(true).Foreground(cAlert)

	Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cMuted).
		Padding(0, 1)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cText).Background(cDim)

	BonusBadge = lipgloss.NewStyle().Bold(true).Reverse(true).Render("BONUS")
)

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Muted.Render(label+":"), value)
}

// LogStyle maps a system-log kind to its rendering style. Exhaustive
// over the closed kind set.
func LogStyle(kind storage.LogKind) lipgloss.Style {
	switch kind {
	case storage.LogSuccess:
		return Good
	case storage.LogError:
		return Bad
	case storage.LogAI:
		return AI
	case storage.LogAlert:
		return Alert
	case storage.LogInfo:
		return Muted
	default:
		return Muted
	}
}

// LogLine renders one diagnostic entry the way the system log panel
// shows it.
func LogLine(l storage.SystemLog) string {
	ts := l.Timestamp.Format("15:04:05")
	return fmt.Sprintf("%s %s %s",
		Dim.Render(ts),
		LogStyle(l.Kind).Render(fmt.Sprintf("[%s]", strings.ToLower(string(l.Kind)))),
		Text.Render(l.Message))
}

// HeatCell renders one heatmap day.
func HeatCell(state engine.CellState) string {
	switch state {
	case engine.CellCompleted:
		return Text.Render("█")
	case engine.CellFailed:
		return Bad.Render("█")
	default:
		return Dim.Render("░")
	}
}

// Heatmap renders a cell row.
func Heatmap(cells []engine.CellState) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(HeatCell(c))
	}
	return b.String()
}

// Sparkline renders the trend marks as a | / _ trace.
func Sparkline(marks []bool) string {
	var b strings.Builder
	for _, m := range marks {
		if m {
			b.WriteString(Text.Render("|"))
		} else {
			b.WriteString(Dim.Render("_"))
		}
	}
	return b.String()
}

// TrendLabel renders the advisory signal.
func TrendLabel(t engine.Trend) string {
	if t == engine.TrendDecaying {
		return Bad.Render("trace: decaying")
	}
	return Muted.Render("trace: stable")
}

// StatusDot marks a directive done/pending for today.
func StatusDot(done bool) string {
	if done {
		return Good.Render("●")
	}
	return Bad.Render("●")
}

// XPBar renders progress toward the next rank threshold.
func XPBar(xp, prevMin, nextMin, width int) string {
	if width <= 0 {
		width = 20
	}
	span := nextMin - prevMin
	if span <= 0 {
		return Text.Render(strings.Repeat("=", width))
	}
	filled := (xp - prevMin) * width / span
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return Text.Render(strings.Repeat("=", filled)) + Dim.Render(strings.Repeat("-", width-filled))
}
