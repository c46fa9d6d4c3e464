package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

var validThemes = []Theme{ThemeAuto, ThemeDark, ThemeLight}

func ParseTheme(s string) (Theme, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ThemeAuto, nil
	}
	for _, t := range validThemes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid theme %q (valid: auto, dark, light)", s)
}

// Content kinds a trigger can open.
const (
	KindText      = "text"
	KindChecklist = "checklist"
	KindMarkdown  = "markdown"
	KindCode      = "code"
)

var validKinds = []string{KindText, KindChecklist, KindMarkdown, KindCode}

// Dropdown holds the defaults applied to every dropdown.
type Dropdown struct {
	FocusFirstInput         bool          `yaml:"focus_first_input"`
	BackdropClickToClose    *bool         `yaml:"backdrop_click_to_close"`
	HardwareBackButtonClose *bool         `yaml:"hardware_back_button_close"`
	HideDelay               time.Duration `yaml:"hide_delay"`
	MaxHeight               int           `yaml:"max_height"`
}

// Trigger is a toolbar button and the dropdown it opens.
type Trigger struct {
	Title    string   `yaml:"title"`
	Kind     string   `yaml:"kind"`
	Body     string   `yaml:"body"`
	Filename string   `yaml:"filename"`
	Items    []string `yaml:"items"`
	// FocusFirstInput overrides the dropdown default for this trigger.
	FocusFirstInput *bool `yaml:"focus_first_input"`
}

type Config struct {
	Theme    Theme     `yaml:"theme"` // "auto" (default), "dark", "light"
	Icons    string    `yaml:"icons"` // "nerdfont" (default), "unicode", "none"
	Dropdown Dropdown  `yaml:"dropdown"`
	Triggers []Trigger `yaml:"triggers"`
}

func Default() Config {
	return Config{
		Theme: ThemeAuto,
		Icons: "nerdfont",
		Dropdown: Dropdown{
			BackdropClickToClose:    boolPtr(true),
			HardwareBackButtonClose: boolPtr(true),
			HideDelay:               time.Millisecond,
			MaxHeight:               12,
		},
		Triggers: DefaultTriggers(),
	}
}

// DefaultTriggers is the toolbar used when the config names none.
func DefaultTriggers() []Trigger {
	return []Trigger{
		{
			Title: "Choose items",
			Kind:  KindChecklist,
			Items: []string{"Item 1", "Item 2", "Item 3", "Item 4", "Item 5", "Item 6"},
		},
		{
			Title: "Notes",
			Kind:  KindMarkdown,
			Body:  "# Dropdown\n\nOpens **below** its button, or above it when the screen runs out.\n\n- click outside to close\n- `esc` to close",
		},
		{
			Title:    "Snippet",
			Kind:     KindCode,
			Filename: "resolve.go",
			Body:     "if a.Top+a.Height+s.Height > vp.Height {\n\ttop = a.Top - s.Height\n}",
		},
		{
			Title: "About",
			Kind:  KindText,
			Body:  "A dropdown is a panel anchored to the button that opened it.",
		},
	}
}

// BackdropClose reports the effective backdrop_click_to_close setting.
func (d Dropdown) BackdropClose() bool {
	return d.BackdropClickToClose == nil || *d.BackdropClickToClose
}

// HardwareBackClose reports the effective hardware_back_button_close setting.
func (d Dropdown) HardwareBackClose() bool {
	return d.HardwareBackButtonClose == nil || *d.HardwareBackButtonClose
}

func (c *Config) Normalize() {
	if strings.TrimSpace(string(c.Theme)) == "" {
		c.Theme = ThemeAuto
	}
	c.Theme = Theme(strings.TrimSpace(strings.ToLower(string(c.Theme))))
	c.Icons = strings.TrimSpace(strings.ToLower(c.Icons))

	for i := range c.Triggers {
		t := &c.Triggers[i]
		t.Title = strings.TrimSpace(t.Title)
		t.Kind = strings.TrimSpace(strings.ToLower(t.Kind))
		if t.Kind == "" {
			t.Kind = KindText
		}
		t.Filename = strings.TrimSpace(t.Filename)
		if len(t.Items) > 0 {
			t.Items = normalizeStringList(t.Items)
		}
	}
	if len(c.Triggers) == 0 {
		c.Triggers = DefaultTriggers()
	}
}

func (c Config) Validate() error {
	if _, err := ParseTheme(string(c.Theme)); err != nil {
		return err
	}
	if c.Icons != "" {
		switch c.Icons {
		case "nerdfont", "unicode", "none":
		default:
			return fmt.Errorf("invalid icons %q (valid: nerdfont, unicode, none)", c.Icons)
		}
	}
	if c.Dropdown.HideDelay < 0 {
		return fmt.Errorf("invalid dropdown.hide_delay %s (must not be negative)", c.Dropdown.HideDelay)
	}
	if c.Dropdown.MaxHeight < 0 {
		return fmt.Errorf("invalid dropdown.max_height %d (must not be negative)", c.Dropdown.MaxHeight)
	}
	seen := make(map[string]struct{}, len(c.Triggers))
	for i, t := range c.Triggers {
		if t.Title == "" {
			return fmt.Errorf("trigger %d: title is required", i+1)
		}
		if _, ok := seen[t.Title]; ok {
			return fmt.Errorf("trigger %q: duplicate title", t.Title)
		}
		seen[t.Title] = struct{}{}
		if !validKind(t.Kind) {
			return fmt.Errorf("trigger %q: invalid kind %q (valid: %s)", t.Title, t.Kind, strings.Join(validKinds, ", "))
		}
		if t.Kind == KindChecklist && len(t.Items) == 0 {
			return fmt.Errorf("trigger %q: checklist needs items", t.Title)
		}
	}
	return nil
}

func validKind(k string) bool {
	for _, v := range validKinds {
		if v == k {
			return true
		}
	}
	return false
}

func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dropdown", "config.yaml")
}

func Load() (Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom returns Default() if path doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// Configured triggers replace the samples rather than append to them.
	cfg.Triggers = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func boolPtr(b bool) *bool { return &b }

func normalizeStringList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
