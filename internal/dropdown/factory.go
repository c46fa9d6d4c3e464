// Package dropdown implements anchored dropdowns: a panel that opens next
// to the trigger that asked for it, flips above the trigger when there is
// no room below, and moves through a hidden/shown/removed lifecycle.
//
// A Factory binds the collaborators (an overlay manager and a geometry
// source) and creates independent Controllers:
//
//	f := dropdown.NewFactory(dropdown.Terminal(mgr), layout, root)
//	c, err := f.Create(content, dropdown.WithMaxHeight(10))
//	err = c.Show(ctx, dropdown.Element("menu-button"))
//	...
//	err = c.Hide(ctx)
//	err = c.Remove(ctx)
//
// Controllers emit dropdown.shown, dropdown.hidden and dropdown.removed
// from their own scope, so listeners on any ancestor scope hear them.
package dropdown

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/scientech-com-ua/dropdown/internal/overlay"
	"github.com/scientech-com-ua/dropdown/internal/scope"
)

// Factory creates controllers that share a manager and geometry source.
type Factory struct {
	mgr      Manager
	geo      Geometry
	root     *scope.Scope
	defaults []Option
}

// NewFactory returns a factory. A nil root gets a fresh root scope.
// defaults are applied to every Create before its own options.
func NewFactory(mgr Manager, geo Geometry, root *scope.Scope, defaults ...Option) *Factory {
	if mgr == nil || geo == nil {
		panic("dropdown.NewFactory: manager and geometry must be provided")
	}
	if root == nil {
		root = scope.NewRoot()
	}
	return &Factory{mgr: mgr, geo: geo, root: root, defaults: defaults}
}

// Root returns the scope controllers default to.
func (f *Factory) Root() *scope.Scope { return f.root }

// Create builds a hidden controller for content. Nothing is mounted until
// the first Show. Malformed options fail here with ErrConfiguration.
func (f *Factory) Create(content overlay.Content, opts ...Option) (*Controller, error) {
	if content == nil {
		return nil, fmt.Errorf("create: %w: content is nil", ErrConfiguration)
	}

	o := defaultOptions()
	for _, opt := range f.defaults {
		if opt != nil {
			opt(&o)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Scope == nil {
		o.Scope = f.root
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	log := o.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		mgr:     f.mgr,
		geo:     f.geo,
		content: content,
		opts:    o,
		scope:   o.Scope.NewChild(),
		log:     log,
		turn:    semaphore.NewWeighted(1),
		state:   Hidden,
	}, nil
}
