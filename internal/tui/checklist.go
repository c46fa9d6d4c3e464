package tui

import (
	"strings"
	"sync"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"
)

// checklistHeaderRows is the number of body rows above the first item.
const checklistHeaderRows = 1

// checklist is dropdown content with toggleable items and a fuzzy filter.
// Update runs on the UI goroutine while Render runs inside show commands,
// so every field is guarded by mu.
type checklist struct {
	mu      sync.Mutex
	items   []string
	checked []bool
	visible []int
	matched map[int][]int
	cursor  int
	filter  textinput.Model
}

func newChecklist(items []string) *checklist {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.CharLimit = 60
	s := ti.Styles()
	s.Focused.Prompt = activeTheme.HintText
	s.Blurred.Prompt = activeTheme.DimText
	ti.SetStyles(s)

	c := &checklist{
		items:   append([]string(nil), items...),
		checked: make([]bool, len(items)),
		filter:  ti,
	}
	c.applyFilter()
	return c
}

// Focus puts the cursor in the filter input.
func (c *checklist) Focus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Focus()
}

// Focused reports whether the filter input has the cursor.
func (c *checklist) Focused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.Focused()
}

// Selected returns the checked items in list order.
func (c *checklist) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for i, ok := range c.checked {
		if ok {
			out = append(out, c.items[i])
		}
	}
	return out
}

// Visible returns the items that pass the filter, best match first.
func (c *checklist) Visible() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.visible))
	for i, idx := range c.visible {
		out[i] = c.items[idx]
	}
	return out
}

// HandleKey applies a key press. It reports false for keys the checklist
// does not use so the caller can route them elsewhere.
func (c *checklist) HandleKey(msg tea.KeyPressMsg) (bool, tea.Cmd) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case key.Matches(msg, Keys.Up):
		if !c.filter.Focused() || msg.Code == tea.KeyUp {
			c.move(-1)
			return true, nil
		}
	case key.Matches(msg, Keys.Down):
		if !c.filter.Focused() || msg.Code == tea.KeyDown {
			c.move(1)
			return true, nil
		}
	}

	if c.filter.Focused() {
		if key.Matches(msg, Keys.Back) || key.Matches(msg, Keys.Toggle) {
			c.filter.Blur()
			return true, nil
		}
		var cmd tea.Cmd
		before := c.filter.Value()
		c.filter, cmd = c.filter.Update(msg)
		if c.filter.Value() != before {
			c.applyFilter()
		}
		return true, cmd
	}

	switch {
	case key.Matches(msg, Keys.Check):
		c.toggleCursor()
		return true, nil
	case key.Matches(msg, Keys.Filter):
		return true, c.filter.Focus()
	}
	return false, nil
}

// ClickRow toggles the item drawn at body row. Row 0 is the filter line,
// which takes focus instead.
func (c *checklist) ClickRow(row int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row < checklistHeaderRows {
		c.filter.Focus()
		return true
	}
	i := row - checklistHeaderRows
	if i >= len(c.visible) {
		return false
	}
	c.cursor = i
	c.toggleCursor()
	return true
}

func (c *checklist) move(delta int) {
	if len(c.visible) == 0 {
		c.cursor = 0
		return
	}
	c.cursor = min(max(c.cursor+delta, 0), len(c.visible)-1)
}

func (c *checklist) toggleCursor() {
	if c.cursor < 0 || c.cursor >= len(c.visible) {
		return
	}
	idx := c.visible[c.cursor]
	c.checked[idx] = !c.checked[idx]
}

func (c *checklist) applyFilter() {
	query := strings.TrimSpace(c.filter.Value())
	c.matched = nil
	if query == "" {
		c.visible = make([]int, len(c.items))
		for i := range c.items {
			c.visible[i] = i
		}
	} else {
		matches := fuzzy.Find(query, c.items)
		c.visible = make([]int, 0, len(matches))
		c.matched = make(map[int][]int, len(matches))
		for _, m := range matches {
			c.visible = append(c.visible, m.Index)
			c.matched[m.Index] = m.MatchedIndexes
		}
	}
	c.move(0)
}

func (c *checklist) Render(width int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter.SetWidth(max(width-len(c.filter.Prompt)-1, 1))
	lines := make([]string, 0, len(c.visible)+checklistHeaderRows)
	lines = append(lines, c.filter.View())

	if len(c.visible) == 0 {
		lines = append(lines, activeTheme.DimText.Render("no matches"))
		return strings.Join(lines, "\n"), nil
	}
	for i, idx := range c.visible {
		box := "[ ] "
		if c.checked[idx] {
			box = activeTheme.Checked.Render("[x]") + " "
		}
		label := highlightMatches(c.items[idx], c.matched[idx])
		line := box + label
		if i == c.cursor && !c.filter.Focused() {
			line = activeTheme.Cursor.Render(box + c.items[idx])
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// highlightMatches styles the runes of s at the fuzzy match positions,
// which are byte offsets.
func highlightMatches(s string, positions []int) string {
	if len(positions) == 0 {
		return s
	}
	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(activeTheme.Match.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
