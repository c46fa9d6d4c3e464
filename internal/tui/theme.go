package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	catppuccin "github.com/catppuccin/go"
)

// Theme holds all semantic colors and pre-computed styles for the TUI.
type Theme struct {
	Primary color.Color
	Accent  color.Color
	Success color.Color
	Danger  color.Color
	Dim     color.Color

	Normal   lipgloss.Style
	DimText  lipgloss.Style
	HintText lipgloss.Style
	Title    lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonOpen    lipgloss.Style

	Panel        lipgloss.Style
	PanelFlipped lipgloss.Style

	Cursor    lipgloss.Style
	Checked   lipgloss.Style
	Match     lipgloss.Style
	StatusBar lipgloss.Style
	ErrorText lipgloss.Style

	ChromaStyleName string
	GlamourStyle    string
}

var activeTheme = ThemeDark()

// SetTheme sets the active global theme.
func SetTheme(t Theme) { activeTheme = t }

// ThemeDark returns the dark theme (Catppuccin Mocha palette).
func ThemeDark() Theme { return newTheme(catppuccin.Mocha, true) }

// ThemeLight returns the light theme (Catppuccin Latte palette).
func ThemeLight() Theme { return newTheme(catppuccin.Latte, false) }

// ThemeForBackground returns the appropriate theme for the terminal background.
func ThemeForBackground(isDark bool) Theme {
	if isDark {
		return ThemeDark()
	}
	return ThemeLight()
}

func newTheme(flavor catppuccin.Flavor, isDark bool) Theme {
	primary := lipgloss.Color(flavor.Sapphire().Hex)
	accent := lipgloss.Color(flavor.Yellow().Hex)
	success := lipgloss.Color(flavor.Green().Hex)
	danger := lipgloss.Color(flavor.Red().Hex)
	text := lipgloss.Color(flavor.Text().Hex)

	dim := lipgloss.Color(flavor.Overlay1().Hex)
	hint := lipgloss.Color(flavor.Subtext0().Hex)
	if !isDark {
		dim, hint = hint, dim
	}

	t := Theme{
		Primary: primary,
		Accent:  accent,
		Success: success,
		Danger:  danger,
		Dim:     dim,

		ChromaStyleName: "catppuccin-mocha",
		GlamourStyle:    "dark",
	}
	if !isDark {
		t.ChromaStyleName = "catppuccin-latte"
		t.GlamourStyle = "light"
	}

	t.Normal = lipgloss.NewStyle().Foreground(text)
	t.DimText = lipgloss.NewStyle().Foreground(dim)
	t.HintText = lipgloss.NewStyle().Foreground(hint)
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(flavor.Mauve().Hex)).
		Foreground(lipgloss.Color(flavor.Crust().Hex)).
		Padding(0, 1)

	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	t.Button = button.BorderForeground(dim).Foreground(text)
	t.ButtonFocused = button.BorderForeground(primary).Foreground(primary).Bold(true)
	t.ButtonOpen = button.BorderForeground(accent).Foreground(accent).Bold(true)

	// Both panel styles must draw the same box so a measured panel keeps
	// its size whichever side of the anchor it lands on.
	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary)
	t.PanelFlipped = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent)

	t.Cursor = lipgloss.NewStyle().
		Background(lipgloss.Color(flavor.Surface0().Hex)).
		Foreground(text).
		Bold(true)
	t.Checked = lipgloss.NewStyle().Foreground(success)
	t.Match = lipgloss.NewStyle().Foreground(accent).Underline(true)
	t.StatusBar = lipgloss.NewStyle().
		Background(lipgloss.Color(flavor.Mantle().Hex)).
		Foreground(text).
		Padding(0, 1)
	t.ErrorText = lipgloss.NewStyle().Foreground(danger).Bold(true)

	return t
}

// panelFrame draws dropdown chrome with the active theme. Flipped panels
// sit above their trigger and get the accent border.
func panelFrame(body string, flipped bool) string {
	if flipped {
		return activeTheme.PanelFlipped.Render(body)
	}
	return activeTheme.Panel.Render(body)
}
