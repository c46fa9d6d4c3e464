package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// KeyMap lists every binding the demo understands.
type KeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Toggle  key.Binding
	Up      key.Binding
	Down    key.Binding
	Check   key.Binding
	Filter  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Toolbar key.Binding
}

// Keys is the default key map.
var Keys = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", "tab"),
		key.WithHelp("→/tab", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "shift+tab"),
		key.WithHelp("←", "prev"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/close"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Check: key.NewBinding(
		key.WithKeys("space", "x"),
		key.WithHelp("space", "check"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Toolbar: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "move toolbar"),
	),
}

// helpLine renders the enabled bindings as "key desc" pairs.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
