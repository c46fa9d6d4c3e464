package tui

import (
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/scientech-com-ua/dropdown/internal/config"
	"github.com/scientech-com-ua/dropdown/internal/dropdown"
)

// Update implements tea.Model by dispatching messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logMsg(msg)

	if m.startupErr != nil {
		keyMsg, ok := msg.(tea.KeyPressMsg)
		if !ok {
			return m, nil
		}
		if key.Matches(keyMsg, Keys.Back) ||
			key.Matches(keyMsg, Keys.Quit) ||
			key.Matches(keyMsg, Keys.Toggle) {
			m.exited = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.BackgroundColorMsg:
		if m.theme != config.ThemeDark && m.theme != config.ThemeLight {
			SetTheme(ThemeForBackground(msg.IsDark()))
			m.refreshAll()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Resize(msg.Width, msg.Height)
		if m.debugLog != nil {
			m.debugLog.Debug("layout", "toolbar", m.bar.String())
		}
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)
	case dropdownDoneMsg:
		return m.handleDropdownDone(msg)
	}
	return m, nil
}

func (m Model) handleDropdownDone(msg dropdownDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		m.lastErr = nil
	case errors.Is(msg.err, dropdown.ErrInvalidState):
		// A toggle raced another operation on the same dropdown; the queue
		// already settled it.
	default:
		m.lastErr = msg.err
	}
	if msg.err != nil && m.debugLog != nil {
		m.debugLog.Warn("dropdown op failed", "trigger", m.triggers[msg.id].title, "op", msg.op.String(), "err", msg.err)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if cl, ok := m.activeChecklist(); ok {
		if handled, cmd := cl.HandleKey(msg); handled {
			m.refresh(m.focus)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, Keys.Back):
		if id, ok := m.topmostClosable(func(o dropdown.Options) bool { return o.HardwareBackButtonClose }); ok {
			return m, m.runOp(id, opHide, nil)
		}
		return m.quit()
	case key.Matches(msg, Keys.Quit):
		return m.quit()
	case key.Matches(msg, Keys.Next):
		if n := len(m.triggers); n > 0 {
			m.focus = (m.focus + 1) % n
		}
		return m, nil
	case key.Matches(msg, Keys.Prev):
		if n := len(m.triggers); n > 0 {
			m.focus = (m.focus - 1 + n) % n
		}
		return m, nil
	case key.Matches(msg, Keys.Toggle), key.Matches(msg, Keys.Check):
		if m.focus < len(m.triggers) {
			return m, m.toggleCmd(m.focus, dropdown.Element(triggerID(m.focus)))
		}
		return m, nil
	case key.Matches(msg, Keys.Toolbar):
		m.bar.SetBottom(!m.bar.Bottom())
		return m, nil
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.exited = true
	return m, m.quitCmd()
}

// topmostClosable returns the topmost shown dropdown whose options allow
// closing it the way accept describes.
func (m Model) topmostClosable(accept func(dropdown.Options) bool) (int, bool) {
	shown := m.mgr.Shown()
	for i := len(shown) - 1; i >= 0; i-- {
		id, ok := m.triggerFor(shown[i])
		if ok && accept(m.triggers[id].ctrl.Options()) {
			return id, true
		}
	}
	return 0, false
}
