// Package overlay mounts floating panels over a terminal screen. It knows
// nothing about where panels go: callers pass a position callback on each
// show, which measures the mounted element and applies a layout. The
// manager composites every shown panel over a background frame.
package overlay

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Sentinel errors.
var (
	ErrNilContent = errors.New("overlay content is nil")
	ErrRemoved    = errors.New("overlay has been removed")
	ErrNoPosition = errors.New("overlay show needs a position callback")
)

// DefaultHideDelay is how long a hide takes before the panel counts as hidden.
const DefaultHideDelay = time.Millisecond

// Content renders a panel body for a given inner width.
type Content interface {
	Render(width int) (string, error)
}

// Focuser is implemented by content that holds a focusable input.
type Focuser interface {
	Focus()
}

// Config describes how a panel is mounted.
type Config struct {
	// ViewType is the class of the panel body. Defaults to "dropdown-view".
	ViewType string
	// Class is an extra class on the panel.
	Class string
	// ShowDelay and HideDelay stand in for entry and exit animations.
	ShowDelay time.Duration
	HideDelay time.Duration
	// MaxHeight caps the body rows; taller content scrolls. Zero means no cap.
	MaxHeight int
	// Frame draws the panel chrome. Defaults to DefaultFrame.
	Frame FrameFunc
}

// PositionFunc places a mounted element next to the anchor it is shown for.
// It runs after the element exists, so it can measure real dimensions.
type PositionFunc func(anchor string, el *Element) error

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// Manager owns the mounted panels. Later mounts stack on top.
type Manager struct {
	mu      sync.Mutex
	handles []*Handle
	log     *slog.Logger
}

// NewManager returns an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Mount creates a hidden panel for content.
func (m *Manager) Mount(content Content, cfg Config) (*Handle, error) {
	if content == nil {
		return nil, ErrNilContent
	}
	if cfg.ViewType == "" {
		cfg.ViewType = ClassDropdownView
	}
	h := &Handle{mgr: m, cfg: cfg, el: newElement(content, cfg)}

	m.mu.Lock()
	m.handles = append(m.handles, h)
	n := len(m.handles)
	m.mu.Unlock()

	m.log.Debug("overlay mounted", "view_type", cfg.ViewType, "mounted", n)
	return h, nil
}

func (m *Manager) detach(h *Handle) {
	m.mu.Lock()
	for i, cur := range m.handles {
		if cur == h {
			m.handles = append(m.handles[:i], m.handles[i+1:]...)
			break
		}
	}
	n := len(m.handles)
	m.mu.Unlock()

	m.log.Debug("overlay removed", "mounted", n)
}

// Mounted returns the number of mounted panels.
func (m *Manager) Mounted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles)
}

// Shown returns the shown panels, bottom first.
func (m *Manager) Shown() []*Handle {
	m.mu.Lock()
	all := make([]*Handle, len(m.handles))
	copy(all, m.handles)
	m.mu.Unlock()

	out := make([]*Handle, 0, len(all))
	for _, h := range all {
		if h.IsShown() && h.el.Layout().Visible {
			out = append(out, h)
		}
	}
	return out
}

// HitTest returns the topmost shown panel covering cell (x, y).
func (m *Manager) HitTest(x, y int) (*Handle, bool) {
	shown := m.Shown()
	for i := len(shown) - 1; i >= 0; i-- {
		h := shown[i]
		l := h.el.Layout()
		s := h.el.Size()
		if x >= l.Left && x < l.Left+h.el.Width() && y >= l.Top && y < l.Top+s.Height {
			return h, true
		}
	}
	return nil, false
}

// Compose draws every shown panel over background, which is first padded
// or cut to exactly height rows of width cells. Panel cells outside the
// screen are clipped.
func (m *Manager) Compose(background string, width, height int) string {
	if width <= 0 || height <= 0 {
		return background
	}
	rows := strings.Split(background, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, r := range rows {
		rows[i] = padTo(ansi.Truncate(r, width, ""), width)
	}

	for _, h := range m.Shown() {
		l := h.el.Layout()
		view := h.el.View()
		if view == "" {
			continue
		}
		for i, line := range strings.Split(view, "\n") {
			y := l.Top + i
			if y < 0 || y >= height {
				continue
			}
			rows[y] = splice(rows[y], line, l.Left, width)
		}
	}
	return strings.Join(rows, "\n")
}

// splice overwrites bg with line starting at column x. bg must already be
// exactly width cells.
func splice(bg, line string, x, width int) string {
	if x < 0 {
		line = ansi.TruncateLeft(line, -x, "")
		x = 0
	}
	if x >= width {
		return bg
	}
	line = ansi.Truncate(line, width-x, "")
	w := ansi.StringWidth(line)
	if w == 0 {
		return bg
	}
	prefix := ansi.Truncate(bg, x, "")
	suffix := ansi.TruncateLeft(bg, x+w, "")
	return prefix + line + suffix
}

func padTo(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
