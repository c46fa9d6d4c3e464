package overlay

import (
	"charm.land/bubbles/v2/viewport"
)

// Class names attached to scrollable regions.
const (
	ClassScrollContent = "scroll-content"
	ClassDropdownView  = "dropdown-view"
)

// ScrollableRegion is a content area that scrolls independently of the
// screen behind it.
type ScrollableRegion interface {
	SetContent(s string)
	SetSize(width, height int)
	ScrollBy(lines int)
	Offset() int
	View() string
	Classes() []string
}

// scrollRegion is the generic scrolling container.
type scrollRegion struct {
	vp viewport.Model
}

func newScrollRegion() *scrollRegion {
	return &scrollRegion{vp: viewport.New()}
}

func (r *scrollRegion) SetContent(s string) {
	offset := r.vp.YOffset()
	r.vp.SetContent(s)
	r.vp.SetYOffset(offset)
}

func (r *scrollRegion) SetSize(width, height int) {
	r.vp.SetWidth(width)
	r.vp.SetHeight(height)
}

// ScrollBy scrolls down for positive n and up for negative n.
func (r *scrollRegion) ScrollBy(n int) {
	switch {
	case n > 0:
		r.vp.ScrollDown(n)
	case n < 0:
		r.vp.ScrollUp(-n)
	}
}

func (r *scrollRegion) Offset() int { return r.vp.YOffset() }

func (r *scrollRegion) View() string { return r.vp.View() }

func (r *scrollRegion) Classes() []string { return []string{ClassScrollContent} }

// dropdownView is a scrollRegion tagged as the body of a dropdown panel.
type dropdownView struct {
	*scrollRegion
	class string
}

func newDropdownView(viewType string) *dropdownView {
	if viewType == "" {
		viewType = ClassDropdownView
	}
	return &dropdownView{scrollRegion: newScrollRegion(), class: viewType}
}

func (d *dropdownView) Classes() []string {
	return append(d.scrollRegion.Classes(), d.class)
}
