package overlay

import (
	"fmt"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/scientech-com-ua/dropdown/internal/position"
)

// ClassFlipped marks a panel placed above its anchor, so its open edge
// faces down toward the anchor.
const ClassFlipped = "dropdown-bottom"

// Layout is what a position callback applies to an element.
type Layout struct {
	Left    int
	Top     int
	Width   int
	Flipped bool
	// Visible reveals the panel. A mounted panel stays invisible until a
	// position callback has placed it.
	Visible bool
}

// LayoutFor converts a resolved placement into a visible layout.
func LayoutFor(p position.Placement) Layout {
	return Layout{Left: p.Left, Top: p.Top, Width: p.Width, Flipped: p.Flipped, Visible: true}
}

// FrameFunc draws the chrome around a panel body.
type FrameFunc func(body string, flipped bool) string

var defaultFrameStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder())

// DefaultFrame draws a plain single-line border.
func DefaultFrame(body string, _ bool) string {
	return defaultFrameStyle.Render(body)
}

// Element is a mounted panel: its content, scroll region and layout.
type Element struct {
	mu        sync.Mutex
	content   Content
	region    ScrollableRegion
	frame     FrameFunc
	maxHeight int
	class     string

	size   position.Size
	inner  int
	rows   int
	lines  int
	layout Layout
}

func newElement(content Content, cfg Config) *Element {
	frame := cfg.Frame
	if frame == nil {
		frame = DefaultFrame
	}
	return &Element{
		content:   content,
		region:    newDropdownView(cfg.ViewType),
		frame:     frame,
		maxHeight: cfg.MaxHeight,
		class:     cfg.Class,
	}
}

// frameSize returns the columns and rows the frame adds around a body.
func (e *Element) frameSize() (int, int) {
	framed := e.frame("x", false)
	return lipgloss.Width(framed) - 1, lipgloss.Height(framed) - 1
}

// Measure renders the content for a panel of the given outer width and
// returns the panel's real size. Empty content measures zero rows. The
// body is at least one column wide, so a width narrower than the frame
// plus one cell measures wider than asked; View clips it back.
func (e *Element) Measure(width int) (position.Size, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fw, fh := e.frameSize()
	inner := max(width-fw, 1)

	body, err := e.content.Render(inner)
	if err != nil {
		return position.Size{}, fmt.Errorf("rendering content: %w", err)
	}
	lines := fitLines(body, inner)
	e.inner = inner
	e.lines = len(lines)
	if e.lines == 0 {
		e.rows = 0
		e.size = position.Size{Width: width, Height: 0}
		e.region.SetSize(inner, 0)
		e.region.SetContent("")
		return e.size, nil
	}

	height := e.lines
	if e.maxHeight > 0 {
		height = min(height, e.maxHeight)
	}
	e.rows = height
	e.region.SetSize(inner, height)
	e.region.SetContent(strings.Join(lines, "\n"))
	e.size = position.Size{Width: inner + fw, Height: height + fh}
	return e.size, nil
}

// Refresh renders the content again into the measured box. The size and
// layout are kept; shorter content is padded with blank rows and longer
// content scrolls. It does nothing before the first measure.
func (e *Element) Refresh() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rows == 0 {
		return nil
	}

	body, err := e.content.Render(e.inner)
	if err != nil {
		return fmt.Errorf("rendering content: %w", err)
	}
	lines := fitLines(body, e.inner)
	for len(lines) < e.rows {
		lines = append(lines, strings.Repeat(" ", e.inner))
	}
	e.lines = len(lines)
	e.region.SetContent(strings.Join(lines, "\n"))
	return nil
}

// fitLines splits body into lines cut and padded to exactly width cells.
func fitLines(body string, width int) []string {
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return nil
	}
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		l = ansi.Truncate(l, width, "")
		if w := ansi.StringWidth(l); w < width {
			l += strings.Repeat(" ", width-w)
		}
		lines[i] = l
	}
	return lines
}

// Apply sets the element's layout.
func (e *Element) Apply(l Layout) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = l
}

// Layout returns the last applied layout.
func (e *Element) Layout() Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout
}

// Size returns the last measured size.
func (e *Element) Size() position.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.size
}

// Width returns the columns the panel covers on screen. A placed panel
// never extends past its layout width, even when the frame measured wider.
func (e *Element) Width() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width()
}

func (e *Element) width() int {
	if e.layout.Visible {
		return min(e.size.Width, max(e.layout.Width, 0))
	}
	return e.size.Width
}

// Region returns the element's scrollable body.
func (e *Element) Region() ScrollableRegion { return e.region }

// Scrollable reports whether the body holds more rows than it shows.
func (e *Element) Scrollable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rows > 0 && e.lines > e.rows
}

// ScrollBy scrolls the body by n rows.
func (e *Element) ScrollBy(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.region.ScrollBy(n)
}

// Classes lists the element's style classes.
func (e *Element) Classes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	classes := e.region.Classes()
	if e.class != "" {
		classes = append(classes, e.class)
	}
	if e.layout.Flipped {
		classes = append(classes, ClassFlipped)
	}
	return classes
}

// HasClass reports whether name is among the element's classes.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// View renders the framed panel, or "" when nothing was measured.
func (e *Element) View() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lines == 0 {
		return ""
	}
	view := e.frame(e.region.View(), e.layout.Flipped)
	w := e.width()
	if w >= e.size.Width {
		return view
	}
	lines := strings.Split(view, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, w, "")
	}
	return strings.Join(lines, "\n")
}
