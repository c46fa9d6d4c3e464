package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/scientech-com-ua/dropdown/internal/dropdown"
	"github.com/scientech-com-ua/dropdown/internal/overlay"
)

// --- Mouse click handler ---

func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return m, nil
	}

	if h, ok := m.mgr.HitTest(msg.X, msg.Y); ok {
		return m.handlePanelClick(h, msg.Y)
	}

	if id, ok := m.bar.TriggerAt(msg.X, msg.Y); ok {
		m.focus = id
		target := dropdown.Event{Target: dropdown.Element(triggerID(id)), X: msg.X, Y: msg.Y}
		return m, m.toggleCmd(id, target)
	}

	// Backdrop: everything that is neither a panel nor a trigger.
	var cmds []tea.Cmd
	for id, t := range m.triggers {
		if t.ctrl.IsShown() && t.ctrl.Options().BackdropClickToClose {
			cmds = append(cmds, m.runOp(id, opHide, nil))
		}
	}
	return m, tea.Batch(cmds...)
}

// handlePanelClick routes a click inside a panel body to its content.
func (m Model) handlePanelClick(h *overlay.Handle, y int) (tea.Model, tea.Cmd) {
	id, ok := m.triggerFor(h)
	if !ok {
		return m, nil
	}
	m.focus = id

	cl, ok := m.triggers[id].content.(*checklist)
	if !ok {
		return m, nil
	}
	el := h.Element()
	l, size := el.Layout(), el.Size()
	// Skip the top and bottom border rows.
	if y <= l.Top || y >= l.Top+size.Height-1 {
		return m, nil
	}
	row := y - l.Top - 1 + el.Region().Offset()
	if cl.ClickRow(row) {
		m.refresh(id)
	}
	return m, nil
}

// --- Mouse wheel handler ---

func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	h, ok := m.mgr.HitTest(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		h.ScrollBy(-1)
	case tea.MouseWheelDown:
		h.ScrollBy(1)
	}
	return m, nil
}
