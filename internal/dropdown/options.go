package dropdown

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/scientech-com-ua/dropdown/internal/overlay"
	"github.com/scientech-com-ua/dropdown/internal/scope"
)

// ViewType is the class given to every dropdown body.
const ViewType = overlay.ClassDropdownView

// Options is a dropdown's configuration after defaults are applied.
type Options struct {
	// Scope is the parent context. The dropdown emits from its own child of it.
	Scope *scope.Scope
	// FocusFirstInput focuses the content's input when shown.
	FocusFirstInput bool
	// BackdropClickToClose hides the dropdown on a click outside it.
	BackdropClickToClose bool
	// HardwareBackButtonClose hides the dropdown on the back key.
	HardwareBackButtonClose bool
	// HideDelay is how long a hide takes.
	HideDelay time.Duration
	// MaxHeight caps the visible body rows; 0 means no cap.
	MaxHeight int
	// Frame draws the panel chrome.
	Frame overlay.FrameFunc
	Logger *slog.Logger
}

func defaultOptions() Options {
	return Options{
		BackdropClickToClose:    true,
		HardwareBackButtonClose: true,
		HideDelay:               overlay.DefaultHideDelay,
	}
}

type Option func(*Options)

func WithScope(s *scope.Scope) Option {
	return func(o *Options) { o.Scope = s }
}

func WithFocusFirstInput(v bool) Option {
	return func(o *Options) { o.FocusFirstInput = v }
}

func WithBackdropClickToClose(v bool) Option {
	return func(o *Options) { o.BackdropClickToClose = v }
}

func WithHardwareBackButtonClose(v bool) Option {
	return func(o *Options) { o.HardwareBackButtonClose = v }
}

func WithHideDelay(d time.Duration) Option {
	return func(o *Options) { o.HideDelay = d }
}

func WithMaxHeight(rows int) Option {
	return func(o *Options) { o.MaxHeight = rows }
}

func WithFrame(f overlay.FrameFunc) Option {
	return func(o *Options) { o.Frame = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Validate reports malformed option values.
func (o Options) Validate() error {
	if o.HideDelay < 0 {
		return fmt.Errorf("%w: hide delay %s is negative", ErrConfiguration, o.HideDelay)
	}
	if o.MaxHeight < 0 {
		return fmt.Errorf("%w: max height %d is negative", ErrConfiguration, o.MaxHeight)
	}
	if o.Scope != nil && o.Scope.Destroyed() {
		return fmt.Errorf("%w: scope is destroyed", ErrConfiguration)
	}
	return nil
}

func (o Options) overlayConfig() overlay.Config {
	return overlay.Config{
		ViewType:  ViewType,
		HideDelay: o.HideDelay,
		MaxHeight: o.MaxHeight,
		Frame:     o.Frame,
	}
}
