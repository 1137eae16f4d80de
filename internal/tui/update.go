package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitexe/internal/storage"
	"habitexe/internal/uplink"
)

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bootStepMsg:
		cmd := m.runBootStep(msg.step)
		m.bootStep = msg.step + 1
		return m, cmd

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.booted = true
		m.err = nil
		m.stats = msg.stats
		m.operator = msg.operator
		m.habits = msg.habits
		m.syslogs = msg.syslogs
		if m.selected >= len(m.habits) {
			m.selected = len(m.habits) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, m.maybeDecayWarning()

	case toggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, m.loadCmd()
		}
		return m, m.loadCmd()

	case mutatedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, m.loadCmd()

	case analyzedMsg:
		m.analyzing = false
		if msg.text != "" {
			kind := storage.LogAI
			if uplink.IsSentinel(msg.text) {
				kind = storage.LogError
			}
			m.svc.AppendSystemLog(m.ctx, kind, msg.text)
		}
		return m, m.loadCmd()

	case tickMsg:
		m.remaining = loggingWindow(time.Time(msg))
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// maybeDecayWarning emits one warning per session when the logging
// window is closing (after 20:00 local) with directives still pending.
func (m *dashModel) maybeDecayWarning() tea.Cmd {
	if m.decayWarned || time.Now().Hour() < 20 {
		return nil
	}
	today := m.svc.Today()
	pending := 0
	for _, h := range m.habits {
		done := false
		for _, l := range h.History {
			if l.Day == today && l.Status == storage.StatusCompleted {
				done = true
				break
			}
		}
		if !done {
			pending++
		}
	}
	if pending == 0 {
		return nil
	}
	m.decayWarned = true
	m.svc.AppendSystemLog(m.ctx, storage.LogError,
		"[decay warning] log window closing. immediate action required.")
	return m.loadCmd()
}

// loggingWindow formats the time left until midnight local time.
func loggingWindow(now time.Time) string {
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	d := end.Sub(now)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	mi := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, mi, s)
}

func (m dashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text-entry modes swallow everything except enter/esc.
	if m.mode == modeAdd || m.mode == modeEdit {
		switch msg.String() {
		case "enter":
			value := m.input.Value()
			m.input.Blur()
			m.input.SetValue("")
			if m.mode == modeAdd {
				m.mode = modeList
				return m, m.addCmd(value)
			}
			m.mode = modeList
			if h := m.selectedHabit(); h != nil {
				return m, m.editCmd(h.ID, value, h.Frequency)
			}
			return m, nil
		case "esc":
			m.mode = modeList
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	if m.mode == modeConfirmDelete {
		switch msg.String() {
		case "y", "enter":
			m.mode = modeList
			if h := m.selectedHabit(); h != nil {
				return m, m.deleteCmd(h.ID)
			}
			return m, nil
		case "n", "esc":
			m.mode = modeList
			return m, nil
		}
		return m, nil
	}

	if m.mode == modeDetail {
		switch msg.String() {
		case "esc", "x", "q":
			m.mode = modeList
			return m, nil
		case "f":
			m.detailFull = !m.detailFull
			return m, nil
		case "+", "=":
			if h := m.selectedHabit(); h != nil {
				return m, m.editCmd(h.ID, h.Name, h.Frequency+1)
			}
			return m, nil
		case "-":
			if h := m.selectedHabit(); h != nil {
				return m, m.editCmd(h.ID, h.Name, h.Frequency-1)
			}
			return m, nil
		case " ", "enter":
			if h := m.selectedHabit(); h != nil {
				return m, m.toggleCmd(h.ID)
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.habits)-1 {
			m.selected++
		}
		return m, nil
	case " ", "enter":
		if h := m.selectedHabit(); h != nil {
			return m, m.toggleCmd(h.ID)
		}
		return m, nil
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "enter_protocol_name"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "e":
		if h := m.selectedHabit(); h != nil {
			m.mode = modeEdit
			m.input.Placeholder = "protocol_name"
			m.input.SetValue(h.Name)
			m.input.Focus()
		}
		return m, nil
	case "d":
		if m.selectedHabit() != nil {
			m.mode = modeConfirmDelete
		}
		return m, nil
	case "x", "o":
		if m.selectedHabit() != nil {
			m.mode = modeDetail
			m.detailFull = false
		}
		return m, nil
	case "g":
		if m.analyzing || m.uplink.Busy() {
			return m, nil
		}
		m.analyzing = true
		m.svc.AppendSystemLog(m.ctx, storage.LogInfo,
			"establishing uplink... requesting tactical brief.")
		return m, tea.Batch(m.loadCmd(), m.analyzeCmd())
	}
	return m, nil
}

func (m *dashModel) selectedHabit() *storage.Habit {
	if m.selected < 0 || m.selected >= len(m.habits) {
		return nil
	}
	return &m.habits[m.selected].Habit
}

func (m dashModel) addCmd(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.CreateHabit(m.ctx, name)
		return mutatedMsg{err: err}
	}
}

func (m dashModel) editCmd(id, name string, frequency int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.UpdateHabit(m.ctx, id, name, frequency)
		return mutatedMsg{err: err}
	}
}

func (m dashModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{err: m.svc.DeleteHabit(m.ctx, id)}
	}
}
