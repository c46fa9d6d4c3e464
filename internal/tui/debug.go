package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// logMsg logs a tea.Msg to the debug logger if one is configured.
// This is a no-op when debugLog is nil (the common case).
func (m Model) logMsg(msg tea.Msg) {
	if m.debugLog == nil {
		return
	}
	m.debugLog.Info("msg",
		"type", fmt.Sprintf("%T", msg),
		"detail", formatMsgDetail(msg),
	)
}

// formatMsgDetail extracts key fields from known message types for readable
// log output. Unknown types log their type name only, never %#v, since
// tea.EnvMsg carries the full environment.
func formatMsgDetail(msg tea.Msg) string {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return msg.String()
	case tea.WindowSizeMsg:
		return fmt.Sprintf("%dx%d", msg.Width, msg.Height)
	case tea.MouseClickMsg:
		return fmt.Sprintf("x=%d y=%d", msg.X, msg.Y)
	case tea.MouseWheelMsg:
		return fmt.Sprintf("x=%d y=%d", msg.X, msg.Y)
	case tea.BackgroundColorMsg:
		return fmt.Sprintf("dark=%t", msg.IsDark())
	case dropdownDoneMsg:
		if msg.err != nil {
			return fmt.Sprintf("id=%d op=%s err=%q", msg.id, msg.op, msg.err.Error())
		}
		return fmt.Sprintf("id=%d op=%s", msg.id, msg.op)
	default:
		return ""
	}
}
