package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/scientech-com-ua/dropdown/internal/config"
	"github.com/scientech-com-ua/dropdown/internal/dropdown"
	"github.com/scientech-com-ua/dropdown/internal/overlay"
	"github.com/scientech-com-ua/dropdown/internal/scope"
)

const eventLogSize = 8

// trigger is a toolbar button bound to the dropdown it opens.
type trigger struct {
	title   string
	kind    string
	content overlay.Content
	ctrl    *dropdown.Controller
}

// Model is the demo host: a toolbar of triggers, each owning a dropdown.
type Model struct {
	ctx        context.Context
	mgr        *overlay.Manager
	bar        *toolbar
	triggers   []trigger
	events     *eventLog
	theme      config.Theme
	focus      int
	lastErr    error
	startupErr error // startup failure shown in a dedicated fail-fast view
	exited     bool

	width  int
	height int

	debugLog *slog.Logger
}

// NewModel builds the toolbar and creates one hidden dropdown per trigger.
// A dropdown that cannot be created leaves the model in a fail-fast error
// view instead of panicking.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if len(cfg.Triggers) == 0 {
		cfg.Triggers = config.DefaultTriggers()
	}
	icons := opts.IconMode
	if icons == "" {
		icons = IconModeNerdFont
	}
	switch cfg.Theme {
	case config.ThemeDark:
		SetTheme(ThemeDark())
	case config.ThemeLight:
		SetTheme(ThemeLight())
	}

	titles := make([]string, len(cfg.Triggers))
	for i, t := range cfg.Triggers {
		titles[i] = t.Title
	}
	bar := newToolbar(titles)
	mgr := overlay.NewManager(overlay.WithLogger(opts.DebugLog))
	root := scope.NewRoot()

	d := cfg.Dropdown
	factory := dropdown.NewFactory(dropdown.Terminal(mgr), bar, root,
		dropdown.WithFocusFirstInput(d.FocusFirstInput),
		dropdown.WithBackdropClickToClose(d.BackdropClose()),
		dropdown.WithHardwareBackButtonClose(d.HardwareBackClose()),
		dropdown.WithHideDelay(d.HideDelay),
		dropdown.WithMaxHeight(d.MaxHeight),
		dropdown.WithFrame(panelFrame),
		dropdown.WithLogger(opts.DebugLog),
	)

	m := Model{
		ctx:      ctx,
		mgr:      mgr,
		bar:      bar,
		events:   newEventLog(eventLogSize),
		theme:    cfg.Theme,
		debugLog: opts.DebugLog,
	}

	titleOf := make(map[*dropdown.Controller]string, len(cfg.Triggers))
	for _, t := range cfg.Triggers {
		content := newContent(t, icons)
		var perTrigger []dropdown.Option
		if t.FocusFirstInput != nil {
			perTrigger = append(perTrigger, dropdown.WithFocusFirstInput(*t.FocusFirstInput))
		}
		ctrl, err := factory.Create(content, perTrigger...)
		if err != nil {
			m.startupErr = fmt.Errorf("trigger %q: %w", t.Title, err)
			return m
		}
		titleOf[ctrl] = t.Title
		m.triggers = append(m.triggers, trigger{title: t.Title, kind: t.Kind, content: content, ctrl: ctrl})
	}

	m.events.listen(root, func(payload any) string {
		if c, ok := payload.(*dropdown.Controller); ok {
			return titleOf[c]
		}
		return ""
	}, dropdown.EventShown, dropdown.EventHidden, dropdown.EventRemoved)

	return m
}

// Init implements tea.Model by asking for the terminal background.
func (m Model) Init() tea.Cmd {
	if m.startupErr != nil {
		return nil
	}
	return tea.RequestBackgroundColor
}

// Exited reports whether the user asked to quit.
func (m Model) Exited() bool { return m.exited }

// --- Commands ---

// runOp runs one controller operation off the UI goroutine.
func (m Model) runOp(id int, op dropdownOp, target dropdown.Target) tea.Cmd {
	ctx := m.ctx
	ctrl := m.triggers[id].ctrl
	return func() tea.Msg {
		var err error
		switch op {
		case opShow:
			err = ctrl.Show(ctx, target)
		case opHide:
			err = ctrl.Hide(ctx)
		case opRemove:
			err = ctrl.Remove(ctx)
		}
		return dropdownDoneMsg{id: id, op: op, err: err}
	}
}

// toggleCmd hides an open dropdown and shows a closed one.
func (m Model) toggleCmd(id int, target dropdown.Target) tea.Cmd {
	op := opShow
	if m.triggers[id].ctrl.IsShown() {
		op = opHide
	}
	return m.runOp(id, op, target)
}

// quitCmd removes every dropdown and then quits.
func (m Model) quitCmd() tea.Cmd {
	ctx := m.ctx
	ctrls := make([]*dropdown.Controller, len(m.triggers))
	for i, t := range m.triggers {
		ctrls[i] = t.ctrl
	}
	return func() tea.Msg {
		for _, c := range ctrls {
			if c.State() != dropdown.Removed {
				_ = c.Remove(ctx)
			}
		}
		return tea.Quit()
	}
}

// --- Lookups ---

// triggerFor maps a shown overlay back to the trigger that owns it.
func (m Model) triggerFor(h *overlay.Handle) (int, bool) {
	for i, t := range m.triggers {
		if t.ctrl.Handle() == h {
			return i, true
		}
	}
	return 0, false
}

// activeChecklist returns the focused trigger's checklist when it is open.
func (m Model) activeChecklist() (*checklist, bool) {
	if m.focus < 0 || m.focus >= len(m.triggers) {
		return nil, false
	}
	t := m.triggers[m.focus]
	cl, ok := t.content.(*checklist)
	if !ok || t.ctrl.State() != dropdown.Shown {
		return nil, false
	}
	return cl, true
}

// refresh re-renders an open dropdown after its content changed.
func (m Model) refresh(id int) {
	h, ok := m.triggers[id].ctrl.Handle().(*overlay.Handle)
	if !ok || !h.IsShown() {
		return
	}
	if err := h.Refresh(); err != nil && m.debugLog != nil {
		m.debugLog.Warn("refresh failed", "trigger", m.triggers[id].title, "err", err)
	}
}

func (m Model) refreshAll() {
	for i := range m.triggers {
		m.refresh(i)
	}
}
