package tui

import (
	"context"
	"log/slog"

	"github.com/scientech-com-ua/dropdown/internal/config"
)

// Options configures the TUI model.
type Options struct {
	// Config supplies the triggers and the dropdown defaults.
	Config config.Config

	// IconMode controls the icon shown in code snippet headers.
	// Valid values: IconModeNerdFont (default), IconModeUnicode, IconModeNone.
	IconMode IconMode

	// Context bounds every dropdown operation. Defaults to context.Background.
	Context context.Context

	// DebugLog, when non-nil, receives structured JSON logs of every tea.Msg
	// processed by Update() and of every dropdown transition. Set via the
	// DROPDOWN_DEBUG environment variable.
	DebugLog *slog.Logger
}
