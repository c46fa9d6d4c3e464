package tui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/scientech-com-ua/dropdown/internal/position"
)

// Toolbar geometry. Buttons are bordered boxes with one column of padding
// on each side of the title.
const (
	buttonHeight   = 3
	buttonChrome   = 4
	buttonGap      = 1
	toolbarLeft    = 1
	toolbarTopRow  = 2
	statusBarRows  = 1
	triggerIDStart = "trigger-"
)

func triggerID(i int) string { return triggerIDStart + strconv.Itoa(i) }

func triggerIndex(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, triggerIDStart)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// toolbar lays out the trigger buttons and answers geometry queries for
// the dropdown controllers. Queries come from show commands running off
// the UI goroutine, so state is guarded by mu.
type toolbar struct {
	mu      sync.Mutex
	titles  []string
	width   int
	height  int
	bottom  bool
	anchors []position.Anchor
}

func newToolbar(titles []string) *toolbar {
	t := &toolbar{titles: append([]string(nil), titles...)}
	t.relayout()
	return t
}

// Resize records the new screen size.
func (t *toolbar) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
	t.relayout()
}

// SetBottom docks the toolbar at the bottom of the screen, or back at the top.
func (t *toolbar) SetBottom(bottom bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bottom = bottom
	t.relayout()
}

func (t *toolbar) Bottom() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bottom
}

// Row returns the screen row of the buttons' top border.
func (t *toolbar) Row() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.row()
}

func (t *toolbar) row() int {
	if !t.bottom {
		return toolbarTopRow
	}
	return max(t.height-statusBarRows-buttonHeight, 0)
}

func (t *toolbar) relayout() {
	top := t.row()
	left := toolbarLeft
	t.anchors = make([]position.Anchor, len(t.titles))
	for i, title := range t.titles {
		w := ansi.StringWidth(title) + buttonChrome
		t.anchors[i] = position.Anchor{Left: left, Top: top, Width: w, Height: buttonHeight}
		left += w + buttonGap
	}
}

// Anchors returns a copy of the button rectangles in trigger order.
func (t *toolbar) Anchors() []position.Anchor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]position.Anchor(nil), t.anchors...)
}

// TriggerAt returns the trigger whose button covers cell (x, y).
func (t *toolbar) TriggerAt(x, y int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, a := range t.anchors {
		if a.Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// Bounds implements dropdown.Geometry.
func (t *toolbar) Bounds(id string) (position.Anchor, bool) {
	i, ok := triggerIndex(id)
	if !ok {
		return position.Anchor{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if i >= len(t.anchors) {
		return position.Anchor{}, false
	}
	return t.anchors[i], true
}

// Viewport implements dropdown.Geometry.
func (t *toolbar) Viewport() position.Viewport {
	t.mu.Lock()
	defer t.mu.Unlock()
	return position.Viewport{Width: t.width, Height: t.height}
}

func (t *toolbar) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("toolbar %dx%d row=%d buttons=%d", t.width, t.height, t.row(), len(t.anchors))
}
