package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	devicons "github.com/epilande/go-devicons"
)

// IconMode controls which icon set the TUI uses.
type IconMode string

// Icon mode values controlling which icon set is displayed.
const (
	IconModeNerdFont IconMode = "nerdfont"
	IconModeUnicode  IconMode = "unicode"
	IconModeNone     IconMode = "none"
)

var validIconModes = []IconMode{IconModeNerdFont, IconModeUnicode, IconModeNone}

// ParseIconMode validates and normalizes an icon mode string.
func ParseIconMode(s string) (IconMode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return IconModeNerdFont, nil
	}
	for _, m := range validIconModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid icons mode %q (valid: nerdfont, unicode, none)", s)
}

// unicodeIcons covers the snippet languages people actually paste.
var unicodeIcons = map[string]string{
	".md":   "\U0001F4DD", // 📝
	".yaml": "\u2699",     // ⚙
	".yml":  "\u2699",     // ⚙
	".toml": "\u2699",     // ⚙
	".json": "\u2699",     // ⚙
	".sh":   "\u25B6",     // ▶
	".bash": "\u25B6",     // ▶
	".zsh":  "\u25B6",     // ▶
}

const unicodeDefaultIcon = "\U0001F4C4" // 📄

func fileIcon(name string, mode IconMode) string {
	switch mode {
	case IconModeUnicode:
		if icon, ok := unicodeIcons[strings.ToLower(filepath.Ext(name))]; ok {
			return icon
		}
		return unicodeDefaultIcon
	case IconModeNerdFont:
		return devicons.IconForPath(name).Icon
	default:
		return ""
	}
}

// renderFileIcon returns the icon for name followed by a space, colored
// with the devicons palette in nerdfont mode. It is "" in none mode.
func renderFileIcon(name string, mode IconMode) string {
	icon := fileIcon(name, mode)
	if icon == "" {
		return ""
	}
	if mode == IconModeNerdFont {
		if hex := devicons.IconForPath(name).Color; hex != "" {
			icon = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(icon)
		}
	}
	return icon + " "
}
