package overlay

import (
	"context"
	"sync"
	"time"
)

// Handle controls one mounted panel.
type Handle struct {
	mgr *Manager
	cfg Config
	el  *Element

	mu      sync.Mutex
	shown   bool
	removed bool
	anchor  string
}

// Element returns the mounted element.
func (h *Handle) Element() *Element { return h.el }

// Config returns the mount configuration.
func (h *Handle) Config() Config { return h.cfg }

// Anchor returns the anchor of the last successful show.
func (h *Handle) Anchor() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.anchor
}

// IsShown reports whether the panel is on screen.
func (h *Handle) IsShown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shown
}

// Removed reports whether Remove has completed.
func (h *Handle) Removed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removed
}

// Show places the panel with position and puts it on screen once the show
// delay has passed. On any error the panel stays hidden.
func (h *Handle) Show(ctx context.Context, anchor string, position PositionFunc) error {
	if h.Removed() {
		return ErrRemoved
	}
	if position == nil {
		return ErrNoPosition
	}
	if err := position(anchor, h.el); err != nil {
		h.el.Apply(Layout{})
		return err
	}
	if err := wait(ctx, h.cfg.ShowDelay); err != nil {
		h.el.Apply(Layout{})
		return err
	}

	h.mu.Lock()
	h.shown = true
	h.anchor = anchor
	h.mu.Unlock()

	l := h.el.Layout()
	h.mgr.log.Debug("overlay shown", "anchor", anchor, "left", l.Left, "top", l.Top, "width", l.Width, "flipped", l.Flipped)
	return nil
}

// Hide takes the panel off screen after the hide delay. The element and
// its content are kept for the next show.
func (h *Handle) Hide(ctx context.Context) error {
	if h.Removed() {
		return ErrRemoved
	}
	if err := wait(ctx, h.hideDelay()); err != nil {
		return err
	}

	h.mu.Lock()
	h.shown = false
	h.mu.Unlock()

	h.mgr.log.Debug("overlay hidden", "anchor", h.Anchor())
	return nil
}

// Remove hides the panel if needed and unmounts it.
func (h *Handle) Remove(ctx context.Context) error {
	if h.Removed() {
		return ErrRemoved
	}
	if h.IsShown() {
		if err := h.Hide(ctx); err != nil {
			return err
		}
	}

	h.mu.Lock()
	h.removed = true
	h.mu.Unlock()

	h.mgr.detach(h)
	return nil
}

// ScrollBy scrolls the panel body.
func (h *Handle) ScrollBy(n int) { h.el.ScrollBy(n) }

// Refresh re-renders the content of a mounted panel in place.
func (h *Handle) Refresh() error {
	if h.Removed() {
		return ErrRemoved
	}
	return h.el.Refresh()
}

func (h *Handle) hideDelay() time.Duration {
	if h.cfg.HideDelay < 0 {
		return 0
	}
	return h.cfg.HideDelay
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
