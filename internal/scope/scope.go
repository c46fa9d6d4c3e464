// Package scope provides a tree of event contexts. An event emitted on a
// scope is delivered to that scope's handlers and then to every ancestor,
// so a parent hears everything its children emit.
package scope

import "sync"

// Event is delivered to handlers.
type Event struct {
	Name    string
	Payload any
	// Origin is the scope the event was emitted on.
	Origin *Scope
}

// Handler is a callback for events.
type Handler func(Event)

// Scope is one node of the context tree. The zero value is not usable;
// start from NewRoot.
type Scope struct {
	mu        sync.RWMutex
	parent    *Scope
	children  map[*Scope]struct{}
	handlers  map[string]map[int]Handler
	nextID    int
	destroyed bool
}

// NewRoot creates a scope with no parent.
func NewRoot() *Scope {
	return newScope(nil)
}

func newScope(parent *Scope) *Scope {
	return &Scope{
		parent:   parent,
		children: make(map[*Scope]struct{}),
		handlers: make(map[string]map[int]Handler),
	}
}

// NewChild creates a scope whose events are also delivered to s.
// A child of a destroyed scope is created already destroyed.
func (s *Scope) NewChild() *Scope {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := newScope(s)
	if s.destroyed {
		c.destroyed = true
		return c
	}
	s.children[c] = struct{}{}
	return c
}

// Parent returns the parent scope, or nil for a root.
func (s *Scope) Parent() *Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parent
}

// On registers a handler for events named name and returns a function
// that removes it.
func (s *Scope) On(name string, h Handler) func() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextID
	s.nextID++
	if s.handlers[name] == nil {
		s.handlers[name] = make(map[int]Handler)
	}
	s.handlers[name][id] = h
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers[name], id)
		s.mu.Unlock()
	}
}

// Emit delivers an event to s and then to each ancestor, innermost first.
// Handlers run synchronously on the caller's goroutine. Emitting on a
// destroyed scope does nothing.
func (s *Scope) Emit(name string, payload any) {
	if s.Destroyed() {
		return
	}
	ev := Event{Name: name, Payload: payload, Origin: s}
	for cur := s; cur != nil; cur = cur.Parent() {
		for _, h := range cur.snapshot(name) {
			h(ev)
		}
	}
}

// snapshot copies the handler set so handlers may subscribe or
// unsubscribe while an event is being delivered.
func (s *Scope) snapshot(name string) []Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return nil
	}
	hs := s.handlers[name]
	// Deliver in registration order.
	out := make([]Handler, 0, len(hs))
	for id := 0; id < s.nextID && len(out) < len(hs); id++ {
		if h, ok := hs[id]; ok {
			out = append(out, h)
		}
	}
	return out
}

// Count returns the number of handlers registered for name on s itself.
func (s *Scope) Count(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers[name])
}

// Destroy detaches s from its parent and destroys all of its descendants.
// Handlers are dropped; later emits are ignored.
func (s *Scope) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.handlers = make(map[string]map[int]Handler)
	children := make([]*Scope, 0, len(s.children))
	for c := range s.children {
		children = append(children, c)
	}
	s.children = make(map[*Scope]struct{})
	parent := s.parent
	s.mu.Unlock()

	for _, c := range children {
		c.Destroy()
	}
	if parent != nil {
		parent.mu.Lock()
		delete(parent.children, s)
		parent.mu.Unlock()
	}
}

// Destroyed reports whether Destroy has been called.
func (s *Scope) Destroyed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.destroyed
}

// Len returns the number of live children.
func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.children)
}
