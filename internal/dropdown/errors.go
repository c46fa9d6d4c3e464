package dropdown

import "errors"

// Sentinel errors for dropdown operations.
var (
	ErrInvalidState  = errors.New("invalid dropdown state")
	ErrMount         = errors.New("dropdown mount failed")
	ErrConfiguration = errors.New("invalid dropdown configuration")
	ErrUnknownAnchor = errors.New("anchor is not on screen")
)
