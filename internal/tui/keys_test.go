package tui

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

func TestKeysMatch(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{"right matches Next", tea.KeyPressMsg{Code: tea.KeyRight}, Keys.Next},
		{"tab matches Next", tea.KeyPressMsg{Code: tea.KeyTab}, Keys.Next},
		{"shift+tab matches Prev", tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, Keys.Prev},
		{"enter matches Toggle", tea.KeyPressMsg{Code: tea.KeyEnter}, Keys.Toggle},
		{"space matches Check", tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, Keys.Check},
		{"esc matches Back", tea.KeyPressMsg{Code: tea.KeyEscape}, Keys.Back},
		{"q matches Quit", tea.KeyPressMsg{Code: 'q', Text: "q"}, Keys.Quit},
		{"ctrl+c matches Quit", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, Keys.Quit},
		{"/ matches Filter", tea.KeyPressMsg{Code: '/', Text: "/"}, Keys.Filter},
		{"t matches Toolbar", tea.KeyPressMsg{Code: 't', Text: "t"}, Keys.Toolbar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("key.Matches(%q) = false", tt.msg.String())
			}
		})
	}
}

func TestHelpLineSkipsDisabled(t *testing.T) {
	off := key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zap"), key.WithDisabled())
	nohelp := key.NewBinding(key.WithKeys("y"))

	got := helpLine(Keys.Toggle, off, nohelp, Keys.Quit)
	if got != "enter open/close  q quit" {
		t.Fatalf("helpLine = %q", got)
	}
	if strings.Contains(got, "zap") {
		t.Fatal("disabled binding leaked into help")
	}
}
