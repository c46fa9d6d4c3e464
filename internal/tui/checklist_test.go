package tui

import (
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

func TestChecklistToggleAndMove(t *testing.T) {
	c := newChecklist([]string{"alpha", "beta", "gamma"})

	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want []string
	}{
		{"check first", spaceKey(), []string{"alpha"}},
		{"move down", runeKey("j"), []string{"alpha"}},
		{"check second", runeKey("x"), []string{"alpha", "beta"}},
		{"move past end clamps", specialKey(tea.KeyDown), []string{"alpha", "beta"}},
		{"still on last", specialKey(tea.KeyDown), []string{"alpha", "beta"}},
		{"check last", spaceKey(), []string{"alpha", "beta", "gamma"}},
		{"move up", runeKey("k"), []string{"alpha", "beta", "gamma"}},
		{"uncheck second", spaceKey(), []string{"alpha", "gamma"}},
	}
	for _, tc := range tests {
		handled, _ := c.HandleKey(tc.key)
		if !handled {
			t.Fatalf("%s: key %q not handled", tc.name, tc.key.String())
		}
		if got := c.Selected(); !slices.Equal(got, tc.want) {
			t.Fatalf("%s: selected = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestChecklistIgnoresUnrelatedKeys(t *testing.T) {
	c := newChecklist([]string{"a"})
	for _, k := range []tea.KeyPressMsg{specialKey(tea.KeyEnter), specialKey(tea.KeyEscape), runeKey("q"), runeKey("l")} {
		if handled, _ := c.HandleKey(k); handled {
			t.Fatalf("key %q should pass through an unfocused checklist", k.String())
		}
	}
}

func TestChecklistFilter(t *testing.T) {
	c := newChecklist([]string{"apple", "banana", "cherry", "grape"})

	if handled, _ := c.HandleKey(runeKey("/")); !handled || !c.Focused() {
		t.Fatal("/ should focus the filter")
	}
	for _, r := range "ape" {
		c.HandleKey(runeKey(string(r)))
	}
	got := c.Visible()
	if !slices.Contains(got, "apple") || !slices.Contains(got, "grape") || slices.Contains(got, "cherry") {
		t.Fatalf("visible = %v, want apple and grape only", got)
	}

	// j is text while the filter is focused, arrows still move.
	c.HandleKey(runeKey("j"))
	if len(c.Visible()) != 0 {
		t.Fatalf("visible = %v after typing j, want none", c.Visible())
	}
	out, err := c.Render(20)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(ansi.Strip(out), "no matches") {
		t.Fatalf("empty filter result should say so:\n%s", ansi.Strip(out))
	}

	c.HandleKey(specialKey(tea.KeyEnter))
	if c.Focused() {
		t.Fatal("enter should leave the filter")
	}
}

func TestChecklistCheckedSurvivesFilter(t *testing.T) {
	c := newChecklist([]string{"one", "two", "three"})
	c.HandleKey(runeKey("j"))
	c.HandleKey(spaceKey())

	c.HandleKey(runeKey("/"))
	c.HandleKey(runeKey("o"))
	c.HandleKey(runeKey("n"))
	c.HandleKey(specialKey(tea.KeyEscape))

	if got := c.Selected(); !slices.Equal(got, []string{"two"}) {
		t.Fatalf("selected = %v, want [two]", got)
	}
}

func TestChecklistClickRow(t *testing.T) {
	c := newChecklist([]string{"a", "b"})

	if !c.ClickRow(2) {
		t.Fatal("row 2 is the second item")
	}
	if got := c.Selected(); !slices.Equal(got, []string{"b"}) {
		t.Fatalf("selected = %v, want [b]", got)
	}
	if c.ClickRow(3) {
		t.Fatal("row past the items should not be handled")
	}
	if !c.ClickRow(0) || !c.Focused() {
		t.Fatal("the header row should focus the filter")
	}
}

func TestChecklistRender(t *testing.T) {
	c := newChecklist([]string{"first", "second"})
	c.HandleKey(runeKey("j"))
	c.HandleKey(spaceKey())

	out, err := c.Render(20)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want filter plus two items: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "/ ") {
		t.Fatalf("first line should be the filter prompt, got %q", lines[0])
	}
	if lines[1] != "[ ] first" || lines[2] != "[x] second" {
		t.Fatalf("items rendered as %q", lines[1:])
	}
}

func TestHighlightMatches(t *testing.T) {
	out := highlightMatches("grape", []int{2, 3, 4})
	if ansi.Strip(out) != "grape" {
		t.Fatalf("highlight changed text: %q", ansi.Strip(out))
	}
	if highlightMatches("plain", nil) != "plain" {
		t.Fatal("no matches should return the input unchanged")
	}
}

func TestHighlightMatchesMultiByte(t *testing.T) {
	tests := []struct {
		name  string
		item  string
		query string
		want  string
	}{
		{"accent before match", "Café bar", "b", "Café " + activeTheme.Match.Render("b") + "ar"},
		{"match after wide runes", "日本 tea", "t", "日本 " + activeTheme.Match.Render("t") + "ea"},
		{"match on the accented rune", "Café", "é", "Caf" + activeTheme.Match.Render("é")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matches := fuzzy.Find(tc.query, []string{tc.item})
			if len(matches) != 1 {
				t.Fatalf("fuzzy.Find(%q) matched %d items", tc.query, len(matches))
			}
			if got := highlightMatches(tc.item, matches[0].MatchedIndexes); got != tc.want {
				t.Fatalf("highlightMatches = %q, want %q", got, tc.want)
			}
		})
	}
}
