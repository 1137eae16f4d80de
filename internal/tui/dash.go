package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"habitexe/internal/engine"
	"habitexe/internal/uplink"
)

// RunDashboard starts the interactive terminal.
func RunDashboard(ctx context.Context, svc *engine.Service, up *uplink.Client, out io.Writer) error {
	m := newDashModel(ctx, svc, up)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
