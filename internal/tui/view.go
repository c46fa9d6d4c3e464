package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/scientech-com-ua/dropdown/internal/dropdown"
)

const appName = "dropdown"

// View implements tea.Model by rendering the screen with open dropdowns on top.
func (m Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.startupErr != nil {
		v.Content = m.renderStartupError()
		return v
	}
	if m.width <= 0 || m.height <= 0 {
		return v
	}

	v.Content = m.mgr.Compose(m.renderBackground(), m.width, m.height)
	return v
}

func (m Model) renderStartupError() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		activeTheme.ErrorText.Render("Could not start "+appName),
		"",
		m.startupErr.Error(),
		"",
		activeTheme.HintText.Render("press q to quit"),
	)
}

// renderBackground draws everything below the overlays: title, toolbar,
// body and status bar, one string per screen row.
func (m Model) renderBackground() string {
	rows := make([]string, m.height)
	used := make([]bool, m.height)
	put := func(y int, s string) {
		if y >= 0 && y < m.height {
			rows[y] = s
			used[y] = true
		}
	}

	put(0, activeTheme.Title.Render(appName)+" "+activeTheme.HintText.Render("open a dropdown with a click or enter"))

	top := m.bar.Row()
	for i, line := range strings.Split(m.renderToolbar(), "\n") {
		put(top+i, line)
	}
	put(m.height-1, m.renderStatusBar())

	y := 2
	for _, line := range m.renderBody() {
		for y < m.height && used[y] {
			y++
		}
		put(y, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderToolbar() string {
	parts := make([]string, 0, 2*len(m.triggers))
	for i, t := range m.triggers {
		style := activeTheme.Button
		switch {
		case t.ctrl.IsShown():
			style = activeTheme.ButtonOpen
		case i == m.focus:
			style = activeTheme.ButtonFocused
		}
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", buttonGap))
		}
		parts = append(parts, style.Render(t.title))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	pad := strings.Repeat(" ", toolbarLeft)
	lines := strings.Split(bar, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderBody lists checklist selections and the recent lifecycle events.
func (m Model) renderBody() []string {
	var lines []string
	for _, t := range m.triggers {
		cl, ok := t.content.(*checklist)
		if !ok {
			continue
		}
		picked := cl.Selected()
		summary := activeTheme.DimText.Render("nothing selected")
		if len(picked) > 0 {
			summary = activeTheme.Normal.Render(strings.Join(picked, ", "))
		}
		lines = append(lines, fmt.Sprintf("%s %s", activeTheme.HintText.Render(t.title+":"), summary))
	}

	entries := m.events.Entries()
	if len(entries) > 0 {
		lines = append(lines, "", activeTheme.HintText.Render("events"))
		for _, e := range entries {
			lines = append(lines, "  "+activeTheme.DimText.Render(e))
		}
	}
	return lines
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.lastErr != nil:
		left = activeTheme.ErrorText.Render(m.lastErr.Error())
	case m.focus < len(m.triggers):
		t := m.triggers[m.focus]
		left = fmt.Sprintf("%s [%s] %s", t.title, t.kind, stateLabel(t.ctrl))
	}
	help := helpLine(Keys.Next, Keys.Toggle, Keys.Back, Keys.Toolbar, Keys.Quit)
	line := ansi.Truncate(left+"  "+activeTheme.HintText.Render(help), max(m.width-2, 0), "…")
	return activeTheme.StatusBar.Width(m.width).Render(line)
}

func stateLabel(c *dropdown.Controller) string {
	st := c.State().String()
	if p := c.Placement(); c.State() == dropdown.Shown && p.Flipped {
		st += " (above)"
	}
	return st
}
