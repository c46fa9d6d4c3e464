package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/scientech-com-ua/dropdown/internal/config"
	"github.com/scientech-com-ua/dropdown/internal/dropdown"
	"github.com/scientech-com-ua/dropdown/internal/position"
)

// ── Model Builder ───────────────────────────────────────────────────

// testModelConfig holds configuration for building a test Model.
// Options populate this struct; newTestModel reads it once to construct
// the Model.
type testModelConfig struct {
	cfg    config.Config
	width  int
	height int
}

// TestModelOption configures a test Model via testModelConfig.
type TestModelOption func(*testModelConfig)

func WithSize(w, h int) TestModelOption {
	return func(c *testModelConfig) { c.width = w; c.height = h }
}

func WithDropdown(fn func(*config.Dropdown)) TestModelOption {
	return func(c *testModelConfig) { fn(&c.cfg.Dropdown) }
}

func WithTriggers(triggers ...config.Trigger) TestModelOption {
	return func(c *testModelConfig) { c.cfg.Triggers = triggers }
}

// newTestModel creates a Model with the sample triggers on an 80x24
// screen and no hide delay.
func newTestModel(opts ...TestModelOption) Model {
	cfg := config.Default()
	cfg.Dropdown.HideDelay = 0
	c := &testModelConfig{cfg: cfg, width: 80, height: 24}
	for _, opt := range opts {
		opt(c)
	}

	m := NewModel(Options{Config: c.cfg, IconMode: IconModeNone})
	result, _ := m.Update(tea.WindowSizeMsg{Width: c.width, Height: c.height})
	return result.(Model)
}

func boolPtr(b bool) *bool { return &b }

// ── Key Factories ───────────────────────────────────────────────────

// runeKey creates a tea.KeyPressMsg for a rune string (e.g., "j", "/").
func runeKey(r string) tea.KeyPressMsg {
	runes := []rune(r)
	return tea.KeyPressMsg{Code: runes[0], Text: r}
}

// specialKey creates a tea.KeyPressMsg for a special key code (e.g., tea.KeyEsc).
func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func spaceKey() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
}

func leftClick(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

// ── Dispatch Helpers ────────────────────────────────────────────────

// sendKey dispatches a tea.KeyPressMsg through Model.Update and asserts the
// returned value is a Model.
func sendKey(t *testing.T, m Model, key tea.KeyPressMsg) (Model, tea.Cmd) {
	t.Helper()
	return sendMsg(t, m, key)
}

// sendMsg dispatches any tea.Msg through Model.Update and asserts the
// returned value is a Model.
func sendMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	updated, ok := result.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want tui.Model", result)
	}
	return updated, cmd
}

// settle runs cmd and feeds dropdown results back through Update until no
// command is left. Other messages are dropped.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(t, m, c)
		}
	case dropdownDoneMsg:
		var next tea.Cmd
		m, next = sendMsg(t, m, msg)
		m = settle(t, m, next)
	}
	return m
}

// press sends a key and settles the resulting command.
func press(t *testing.T, m Model, key tea.KeyPressMsg) Model {
	t.Helper()
	m, cmd := sendKey(t, m, key)
	return settle(t, m, cmd)
}

// click sends a left click and settles the resulting command.
func click(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	m, cmd := sendMsg(t, m, leftClick(x, y))
	return settle(t, m, cmd)
}

// ── Assertion Helpers ───────────────────────────────────────────────

// isQuitCmd checks whether a tea.Cmd produces a tea.QuitMsg.
func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	msg := cmd()
	_, ok := msg.(tea.QuitMsg)
	return ok
}

func requireState(t *testing.T, m Model, id int, want dropdown.State) {
	t.Helper()
	if got := m.triggers[id].ctrl.State(); got != want {
		t.Fatalf("trigger %d state = %s, want %s", id, got, want)
	}
}

func anchorOf(t *testing.T, m Model, id int) position.Anchor {
	t.Helper()
	a, ok := m.bar.Bounds(triggerID(id))
	if !ok {
		t.Fatalf("no anchor for trigger %d", id)
	}
	return a
}

// ── Golden Test Helpers ─────────────────────────────────────────────

// stripForGolden removes ANSI escape codes and trailing whitespace from
// rendered output.
func stripForGolden(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
