package dropdown

// State is a dropdown's lifecycle state.
type State int

const (
	Hidden State = iota
	Showing
	Shown
	Hiding
	Removed
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Showing:
		return "showing"
	case Shown:
		return "shown"
	case Hiding:
		return "hiding"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Lifecycle events, emitted with the *Controller as payload.
const (
	EventShown   = "dropdown.shown"
	EventHidden  = "dropdown.hidden"
	EventRemoved = "dropdown.removed"
)
