package tui

import (
	"fmt"
	"strings"
	"time"

	"habitexe/internal/dates"
	"habitexe/internal/engine"
	"habitexe/internal/storage"
	"habitexe/internal/ui"
)

const syslogPanelLines = 8

func (m dashModel) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if !m.booted {
		b.WriteString(ui.Muted.Render("[system_boot_sequence_initiated]"))
		b.WriteString("\n")
		b.WriteString(ui.Dim.Render("loading directives..."))
		b.WriteString("\n\n")
		b.WriteString(m.viewSyslog())
		return b.String()
	}

	b.WriteString(m.viewRank())
	b.WriteString("\n")

	switch m.mode {
	case modeDetail:
		b.WriteString(m.viewDetail())
	default:
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	b.WriteString(m.viewSyslog())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ui.Bad.Render("err: " + m.err.Error()))
	}
	return b.String()
}

func (m dashModel) viewHeader() string {
	left := ui.Title.Render("Habit.exe")
	date := strings.ToLower(time.Now().Format("Mon 01/02/2006"))
	right := fmt.Sprintf("%s  %s %s",
		ui.Muted.Render("date: "+date),
		ui.Muted.Render("logging_window:"),
		ui.Text.Render(m.remaining))
	return left + "  " + right + "\n" + ui.Dim.Render(strings.Repeat("─", 64))
}

func (m dashModel) viewRank() string {
	r := engine.RankFor(m.stats.XP)
	prevMin := engine.Ranks[r.Index].MinXP

	var line strings.Builder
	line.WriteString(ui.LabelValue("operator", m.operator))
	line.WriteString("  ")
	line.WriteString(ui.LabelValue("rank", ui.Text.Render(m.stats.RankTitle)))
	line.WriteString("  ")
	line.WriteString(ui.LabelValue("lvl", m.stats.Level))
	line.WriteString("\n")
	if r.MaxLevel {
		line.WriteString(fmt.Sprintf("%s %s %s",
			ui.XPBar(m.stats.XP, prevMin, m.stats.NextRankXP, 28),
			ui.Text.Render(fmt.Sprintf("%d xp", m.stats.XP)),
			ui.Muted.Render("[max_level]")))
	} else {
		line.WriteString(fmt.Sprintf("%s %s",
			ui.XPBar(m.stats.XP, prevMin, m.stats.NextRankXP, 28),
			ui.Muted.Render(fmt.Sprintf("%d / %d xp", m.stats.XP, m.stats.NextRankXP))))
	}
	return line.String()
}

func (m dashModel) viewList() string {
	var b strings.Builder
	b.WriteString(ui.Header.Render("active directives"))
	b.WriteString("\n")

	today := m.svc.Today()
	for i, h := range m.habits {
		done := false
		for _, l := range h.History {
			if l.Day == today && l.Status == storage.StatusCompleted {
				done = true
				break
			}
		}

		name := h.Name
		if i == m.selected {
			name = ui.SelectedRow.Render(" " + name + " ")
		} else {
			name = ui.Text.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s %s", ui.StatusDot(done), name))
		if h.Streak >= engine.StreakBonusThreshold && done {
			b.WriteString(" " + ui.BonusBadge)
		}
		b.WriteString("\n")

		status := "pending"
		if done {
			status = "complete"
		}
		meta := fmt.Sprintf("  streak: %d  status: %s", h.Streak, status)
		if h.Frequency > 1 {
			meta += fmt.Sprintf("  freq: %dd", h.Frequency)
		}
		b.WriteString(ui.Muted.Render(meta))
		b.WriteString("\n")

		trend, marks := engine.TrendFor(h.History, today)
		b.WriteString("  " + ui.TrendLabel(trend) + " " + ui.Sparkline(marks))
		b.WriteString("\n")

		window := dashWindow(today)
		cells := engine.HeatmapCells(h.History, window)
		b.WriteString("  " + ui.Heatmap(cells))
		b.WriteString("\n")
	}

	if len(m.habits) == 0 {
		b.WriteString(ui.Dim.Render("  no active directives. press a to initialize one."))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\n" + ui.Muted.Render("init new directive: ") + m.input.View())
	case modeEdit:
		b.WriteString("\n" + ui.Muted.Render("rename directive: ") + m.input.View())
	case modeConfirmDelete:
		if h := (&m).selectedHabit(); h != nil {
			b.WriteString("\n" + ui.Bad.Render("warning: destructive_action"))
			b.WriteString("\n" + ui.Text.Render(fmt.Sprintf("confirm termination of directive %q (y/n)", h.Name)))
		}
	}
	return b.String()
}

func (m dashModel) viewDetail() string {
	h := (&m).selectedHabit()
	if h == nil {
		return ""
	}
	view := m.habits[m.selected]
	today := m.svc.Today()

	window := engine.DetailWindow(view.History, today, m.detailFull)
	eff := engine.Efficiency(view.History, window)
	scope := "last_90_days"
	if m.detailFull {
		scope = "all_time"
	}

	var b strings.Builder
	b.WriteString(ui.Header.Render("protocol_details"))
	b.WriteString("\n")
	b.WriteString(ui.LabelValue("protocol_name", ui.Text.Render(h.Name)))
	b.WriteString("\n")
	b.WriteString(ui.LabelValue("frequency", fmt.Sprintf("every %dd (+/- to adjust)", h.Frequency)))
	b.WriteString("\n")
	b.WriteString(ui.LabelValue("streak", h.Streak))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s %s",
		ui.Muted.Render("efficiency:"),
		ui.Text.Render(fmt.Sprintf("%d%%", eff)),
		ui.Dim.Render("("+scope+")")))
	b.WriteString("\n\n")

	// Heatmap wrapped into rows.
	cells := engine.HeatmapCells(view.History, window)
	const rowWidth = 30
	for start := 0; start < len(cells); start += rowWidth {
		end := start + rowWidth
		if end > len(cells) {
			end = len(cells)
		}
		b.WriteString("  " + ui.Heatmap(cells[start:end]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashModel) viewSyslog() string {
	var b strings.Builder
	b.WriteString(ui.Header.Render("system_log"))
	b.WriteString("\n")

	logs := m.syslogs
	if len(logs) > syslogPanelLines {
		logs = logs[len(logs)-syslogPanelLines:]
	}
	for _, l := range logs {
		b.WriteString(ui.LogLine(l))
		b.WriteString("\n")
	}
	if len(logs) == 0 {
		b.WriteString(ui.Dim.Render("  (empty)"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashModel) viewFooter() string {
	if m.mode == modeDetail {
		return ui.Dim.Render("space toggle · f full history · +/- freq · esc back")
	}
	help := "space log/unlog · a add · e edit · d delete · x details · g analysis · r refresh · q quit"
	if m.analyzing {
		help = "processing tactical analysis... · " + help
	}
	return ui.Dim.Render(help)
}

// dashWindow is the compact 14-day heatmap range for the list view.
func dashWindow(today dates.Day) []dates.Day {
	return dates.Window(today, engine.HeatmapCompactDays)
}
