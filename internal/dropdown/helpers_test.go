package dropdown

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/scientech-com-ua/dropdown/internal/overlay"
	"github.com/scientech-com-ua/dropdown/internal/position"
	"github.com/scientech-com-ua/dropdown/internal/scope"
)

// ── Content ─────────────────────────────────────────────────────────

type textContent string

func (c textContent) Render(int) (string, error) { return string(c), nil }

// rows returns content that measures exactly height rows with the default frame.
func rows(height int) textContent {
	return textContent(strings.TrimSuffix(strings.Repeat("x\n", height-2), "\n"))
}

type focusContent struct {
	textContent
	focused int
}

func (f *focusContent) Focus() { f.focused++ }

// ── Geometry ────────────────────────────────────────────────────────

type fakeGeometry struct {
	mu       sync.Mutex
	anchors  map[string]position.Anchor
	viewport position.Viewport
}

func newGeometry(height int, anchors map[string]position.Anchor) *fakeGeometry {
	return &fakeGeometry{anchors: anchors, viewport: position.Viewport{Width: 1000, Height: height}}
}

func (g *fakeGeometry) Bounds(id string) (position.Anchor, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.anchors[id]
	return a, ok
}

func (g *fakeGeometry) Viewport() position.Viewport {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewport
}

func (g *fakeGeometry) move(id string, a position.Anchor) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.anchors[id] = a
}

// ── Fake overlay ────────────────────────────────────────────────────

type fakeHandle struct {
	mu      sync.Mutex
	shown   bool
	release chan struct{}
	hideErr error
	shows   int
	hides   int
	removes int
}

func (h *fakeHandle) Show(ctx context.Context, _ string, _ overlay.PositionFunc) error {
	if h.release != nil {
		select {
		case <-h.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shows++
	h.shown = true
	return nil
}

func (h *fakeHandle) Hide(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hideErr != nil {
		return h.hideErr
	}
	h.hides++
	h.shown = false
	return nil
}

func (h *fakeHandle) Remove(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removes++
	h.shown = false
	return nil
}

func (h *fakeHandle) IsShown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shown
}

type fakeManager struct {
	mu       sync.Mutex
	handle   *fakeHandle
	mountErr error
	mounts   int
}

func (m *fakeManager) Mount(overlay.Content, overlay.Config) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mountErr != nil {
		return nil, m.mountErr
	}
	m.mounts++
	return m.handle, nil
}

// ── Event recording ─────────────────────────────────────────────────

type recorder struct {
	mu     sync.Mutex
	events []string
	last   any
}

func record(s *scope.Scope) *recorder {
	r := &recorder{}
	for _, name := range []string{EventShown, EventHidden, EventRemoved} {
		s.On(name, func(e scope.Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, e.Name)
			r.last = e.Payload
		})
	}
	return r
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.names() {
		if e == name {
			n++
		}
	}
	return n
}

// ── Builders ────────────────────────────────────────────────────────

var testAnchor = position.Anchor{Left: 10, Top: 500, Width: 100, Height: 40}

type fixture struct {
	root *scope.Scope
	mgr  *overlay.Manager
	geo  *fakeGeometry
	f    *Factory
	rec  *recorder
}

func newFixture(viewportHeight int) *fixture {
	root := scope.NewRoot()
	mgr := overlay.NewManager()
	geo := newGeometry(viewportHeight, map[string]position.Anchor{"button": testAnchor})
	return &fixture{
		root: root,
		mgr:  mgr,
		geo:  geo,
		f:    NewFactory(Terminal(mgr), geo, root, WithHideDelay(0)),
		rec:  record(root),
	}
}

func mustCreate(t *testing.T, f *Factory, c overlay.Content, opts ...Option) *Controller {
	t.Helper()
	ctrl, err := f.Create(c, opts...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return ctrl
}

func newFakeFactory(h *fakeHandle) (*Factory, *fakeManager, *recorder) {
	root := scope.NewRoot()
	mgr := &fakeManager{handle: h}
	geo := newGeometry(600, map[string]position.Anchor{"button": testAnchor})
	return NewFactory(mgr, geo, root), mgr, record(root)
}
