package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"habitexe/internal/dates"
	"habitexe/internal/engine"
	"habitexe/internal/storage"
	"habitexe/internal/uplink"
)

type viewMode int

const (
	modeList viewMode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
	modeDetail
)

type dashModel struct {
	ctx    context.Context
	svc    *engine.Service
	uplink *uplink.Client

	width  int
	height int

	stats    engine.UserStats
	operator string
	habits   []engine.HabitView
	syslogs  []storage.SystemLog

	selected    int
	mode        viewMode
	input       textinput.Model
	detailFull  bool
	booted      bool
	bootStep    int
	decayWarned bool
	analyzing   bool
	remaining   string
	err         error
}

type bootStepMsg struct{ step int }

type loadedMsg struct {
	stats    engine.UserStats
	operator string
	habits   []engine.HabitView
	syslogs  []storage.SystemLog
	err      error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

type mutatedMsg struct{ err error }

type analyzedMsg struct{ text string }

type tickMsg time.Time

func newDashModel(ctx context.Context, svc *engine.Service, up *uplink.Client) dashModel {
	in := textinput.New()
	in.Placeholder = "enter_protocol_name"
	in.CharLimit = 60
	in.Width = 32

	return dashModel{
		ctx:    ctx,
		svc:    svc,
		uplink: up,
		input:  in,
	}
}

func (m dashModel) Init() tea.Cmd {
	return tea.Batch(m.bootCmd(0), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

var bootLines = []struct {
	delay time.Duration
	text  string
}{
	{0, "bios check... ok"},
	{600 * time.Millisecond, "> loading directives... [25%]"},
	{800 * time.Millisecond, "> verifying data integrity... [88%]"},
	{400 * time.Millisecond, ""}, // welcome + weekly audit, built from live data
}

func (m dashModel) bootCmd(step int) tea.Cmd {
	if step >= len(bootLines) {
		return m.loadCmd()
	}
	delay := bootLines[step].delay
	if delay == 0 {
		return func() tea.Msg { return bootStepMsg{step: step} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return bootStepMsg{step: step} })
}

func (m dashModel) runBootStep(step int) tea.Cmd {
	line := bootLines[step].text
	if line != "" {
		m.svc.AppendSystemLog(m.ctx, storage.LogInfo, line)
		return m.bootCmd(step + 1)
	}

	// Final step: welcome plus the weekly audit summary.
	name, err := m.svc.OperatorName(m.ctx)
	if err != nil {
		name = storage.DefaultOperatorName
	}
	m.svc.AppendSystemLog(m.ctx, storage.LogSuccess,
		fmt.Sprintf("system initialized. welcome back, %s.", name))

	if views, err := m.svc.ListHabits(m.ctx); err == nil && len(views) > 0 {
		done, expected := weeklyAudit(views, m.svc.Today())
		pct := 0
		if expected > 0 {
			pct = done * 100 / expected
		}
		m.svc.AppendSystemLog(m.ctx, storage.LogInfo,
			fmt.Sprintf("weekly_audit: %d/%d directives executed. efficiency: %d%%", done, expected, pct))
	}
	return m.loadCmd()
}

// weeklyAudit counts completions across all directives over the last 7
// days against one expected slot per directive per day.
func weeklyAudit(views []engine.HabitView, today dates.Day) (done, expected int) {
	window := dates.Window(today, 7)
	for _, v := range views {
		completed := map[dates.Day]bool{}
		for _, l := range v.History {
			if l.Status == storage.StatusCompleted {
				completed[l.Day] = true
			}
		}
		for _, d := range window {
			expected++
			if completed[d] {
				done++
			}
		}
	}
	return done, expected
}

func (m dashModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.svc.Stats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		name, err := m.svc.OperatorName(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.ListHabits(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		logs, err := m.svc.SystemLogs(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{stats: stats, operator: name, habits: habits, syslogs: logs}
	}
}

func (m dashModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Toggle(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m dashModel) analyzeCmd() tea.Cmd {
	habits := make([]uplink.HabitBrief, 0, len(m.habits))
	for _, h := range m.habits {
		habits = append(habits, uplink.HabitBrief{Name: h.Name, Streak: h.Streak})
	}
	stats := uplink.StatsBrief{RankTitle: m.stats.RankTitle, XP: m.stats.XP}
	return func() tea.Msg {
		text, err := m.uplink.TacticalAnalysis(m.ctx, stats, habits)
		if err != nil {
			// Busy: a request is already in flight, nothing to log.
			return analyzedMsg{}
		}
		return analyzedMsg{text: text}
	}
}
