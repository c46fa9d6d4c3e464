package dropdown

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/scientech-com-ua/dropdown/internal/overlay"
	"github.com/scientech-com-ua/dropdown/internal/position"
	"github.com/scientech-com-ua/dropdown/internal/scope"
)

// --- Collaborators ---

// Manager mounts panels.
type Manager interface {
	Mount(content overlay.Content, cfg overlay.Config) (Handle, error)
}

// Handle controls one mounted panel.
type Handle interface {
	Show(ctx context.Context, anchor string, position overlay.PositionFunc) error
	Hide(ctx context.Context) error
	Remove(ctx context.Context) error
	IsShown() bool
}

// Geometry reports where things are on screen right now.
type Geometry interface {
	Bounds(id string) (position.Anchor, bool)
	Viewport() position.Viewport
}

type terminalManager struct {
	m *overlay.Manager
}

// Terminal adapts an overlay.Manager for use by controllers.
func Terminal(m *overlay.Manager) Manager {
	return terminalManager{m: m}
}

func (t terminalManager) Mount(content overlay.Content, cfg overlay.Config) (Handle, error) {
	h, err := t.m.Mount(content, cfg)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// --- Targets ---

// Target is what a dropdown aligns itself to: an Element or an Event.
type Target interface {
	TargetID() string
}

// Element identifies a trigger on screen.
type Element string

func (e Element) TargetID() string { return string(e) }

// Event is an interaction aimed at a trigger.
type Event struct {
	Target Element
	X, Y   int
}

func (e Event) TargetID() string { return e.Target.TargetID() }

// --- Controller ---

// Controller owns one dropdown's lifecycle. Operations on a controller are
// served one at a time in the order they were issued; an operation issued
// while another is in flight waits for it to finish. Lifecycle events are
// emitted while the operation still holds its turn, so event handlers must
// not call back into the same controller synchronously.
type Controller struct {
	mgr     Manager
	geo     Geometry
	content overlay.Content
	opts    Options
	scope   *scope.Scope
	log     *slog.Logger
	turn    *semaphore.Weighted

	mu        sync.Mutex
	state     State
	handle    Handle
	placement position.Placement
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsShown reports whether the dropdown is shown or on its way there.
func (c *Controller) IsShown() bool {
	st := c.State()
	return st == Showing || st == Shown
}

// Options returns the resolved options.
func (c *Controller) Options() Options { return c.opts }

// Scope returns the scope the controller emits its events from.
func (c *Controller) Scope() *scope.Scope { return c.scope }

// Handle returns the mounted panel, or nil before the first show.
func (c *Controller) Handle() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

// Placement returns the placement computed by the last show.
func (c *Controller) Placement() position.Placement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placement
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	from := c.state
	c.state = s
	c.mu.Unlock()
	c.log.Debug("dropdown transition", "from", from.String(), "to", s.String())
}

func (c *Controller) invalid(op string, st State) error {
	return fmt.Errorf("%s: %w: dropdown is %s", op, ErrInvalidState, st)
}

// Show mounts the dropdown on first use, positions it against target and
// reveals it. Showing an already shown dropdown does nothing. On failure
// the dropdown stays hidden.
func (c *Controller) Show(ctx context.Context, target Target) error {
	if err := c.turn.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.turn.Release(1)

	switch st := c.State(); st {
	case Removed:
		return c.invalid("show", st)
	case Shown:
		return nil
	}
	if target == nil {
		return fmt.Errorf("show: %w: %w: no target", ErrMount, ErrUnknownAnchor)
	}

	c.setState(Showing)

	h := c.Handle()
	if h == nil {
		mounted, err := c.mgr.Mount(c.content, c.opts.overlayConfig())
		if err != nil {
			c.setState(Hidden)
			return fmt.Errorf("show: %w: %w", ErrMount, err)
		}
		c.mu.Lock()
		c.handle = mounted
		c.mu.Unlock()
		h = mounted
	}

	if err := h.Show(ctx, target.TargetID(), c.positionView); err != nil {
		c.setState(Hidden)
		return fmt.Errorf("show: %w: %w", ErrMount, err)
	}

	c.setState(Shown)
	if c.opts.FocusFirstInput {
		if f, ok := c.content.(overlay.Focuser); ok {
			f.Focus()
		}
	}
	c.scope.Emit(EventShown, c)
	return nil
}

// positionView is the position callback handed to the overlay on every
// show. Geometry is read fresh each time since the anchor may have moved.
func (c *Controller) positionView(anchorID string, el *overlay.Element) error {
	anchor, ok := c.geo.Bounds(anchorID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnchor, anchorID)
	}
	size, err := el.Measure(anchor.Width)
	if err != nil {
		return err
	}
	p := position.Resolve(anchor, size, c.geo.Viewport())
	el.Apply(overlay.LayoutFor(p))

	c.mu.Lock()
	c.placement = p
	c.mu.Unlock()

	c.log.Debug("dropdown positioned", "anchor", anchorID, "placement", p.String())
	return nil
}

// Hide takes a shown dropdown off screen. Its resources are kept so a
// later Show works.
func (c *Controller) Hide(ctx context.Context) error {
	if err := c.turn.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.turn.Release(1)

	st := c.State()
	if st != Shown {
		return c.invalid("hide", st)
	}

	c.setState(Hiding)
	if err := c.Handle().Hide(ctx); err != nil {
		c.setState(Shown)
		return fmt.Errorf("hide: %w: %w", ErrMount, err)
	}
	c.setState(Hidden)
	c.scope.Emit(EventHidden, c)
	return nil
}

// Remove hides the dropdown if needed and releases the panel and scope.
// Both dropdown.hidden and dropdown.removed are emitted, in that order.
func (c *Controller) Remove(ctx context.Context) error {
	if err := c.turn.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.turn.Release(1)

	st := c.State()
	if st == Removed {
		return c.invalid("remove", st)
	}

	if h := c.Handle(); h != nil {
		if st == Shown {
			c.setState(Hiding)
		}
		if err := h.Remove(ctx); err != nil {
			c.setState(st)
			return fmt.Errorf("remove: %w: %w", ErrMount, err)
		}
	}

	c.setState(Removed)
	c.scope.Emit(EventHidden, c)
	c.scope.Emit(EventRemoved, c)
	c.scope.Destroy()
	return nil
}
