// Package position decides where a dropdown panel goes relative to the
// element that triggered it. All values are terminal cells in viewport
// coordinates.
package position

import "fmt"

// Anchor is the trigger element's position and size.
type Anchor struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Bottom returns the first row below the anchor.
func (a Anchor) Bottom() int { return a.Top + a.Height }

// Right returns the first column right of the anchor.
func (a Anchor) Right() int { return a.Left + a.Width }

// Contains reports whether the cell (x, y) lies inside the anchor.
func (a Anchor) Contains(x, y int) bool {
	return x >= a.Left && x < a.Right() && y >= a.Top && y < a.Bottom()
}

// Size is a panel's rendered size.
type Size struct {
	Width  int
	Height int
}

// Viewport is the visible screen area. Only Height takes part in placement.
type Viewport struct {
	Width  int
	Height int
}

// Placement is a resolved panel position. Flipped is set when the panel
// sits above the anchor instead of below it.
type Placement struct {
	Left    int
	Top     int
	Width   int
	Flipped bool
}

func (p Placement) String() string {
	return fmt.Sprintf("left=%d top=%d width=%d flipped=%t", p.Left, p.Top, p.Width, p.Flipped)
}

// Resolve places a panel of the given size directly below the anchor, or
// directly above it when below would run past the bottom of the viewport.
// Left and width always follow the anchor; horizontal overflow is not
// corrected. A zero-height panel never flips, so callers must measure the
// panel before resolving.
func Resolve(anchor Anchor, size Size, viewport Viewport) Placement {
	p := Placement{
		Left:  anchor.Left,
		Top:   anchor.Bottom(),
		Width: anchor.Width,
	}
	if anchor.Bottom()+size.Height > viewport.Height {
		p.Top = anchor.Top - size.Height
		p.Flipped = true
	}
	return p
}
