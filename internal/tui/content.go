package tui

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/scientech-com-ua/dropdown/internal/config"
	"github.com/scientech-com-ua/dropdown/internal/overlay"
)

// newContent builds the dropdown body for a trigger.
func newContent(t config.Trigger, icons IconMode) overlay.Content {
	switch t.Kind {
	case config.KindChecklist:
		return newChecklist(t.Items)
	case config.KindMarkdown:
		return &markdownContent{source: t.Body, cache: make(map[string]string)}
	case config.KindCode:
		return codeContent{source: t.Body, filename: t.Filename, icons: icons}
	default:
		return textContent(t.Body)
	}
}

// textContent is plain text word-wrapped to the panel.
type textContent string

func (c textContent) Render(width int) (string, error) {
	return activeTheme.Normal.Render(ansi.Wordwrap(string(c), width, "")), nil
}

// markdownContent renders with glamour. Rendering is slow enough to be
// noticeable on every show, so results are cached per style and width.
type markdownContent struct {
	source string

	mu    sync.Mutex
	cache map[string]string
}

func (c *markdownContent) Render(width int) (string, error) {
	if strings.TrimSpace(c.source) == "" {
		return "", nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := markdownKey(c.source, activeTheme.GlamourStyle, width)
	if out, ok := c.cache[key]; ok {
		return out, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(activeTheme.GlamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(c.source)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	out = strings.Trim(out, "\n")
	c.cache[key] = out
	return out, nil
}

func markdownKey(source, style string, width int) string {
	h := sha256.Sum256([]byte(source))
	return fmt.Sprintf("%x:%s:%d", h[:8], style, width)
}

// codeContent is a highlighted snippet under a filename header.
type codeContent struct {
	source   string
	filename string
	icons    IconMode
}

func (c codeContent) Render(int) (string, error) {
	body := highlight(c.source, c.filename)
	if c.filename == "" {
		return body, nil
	}
	header := renderFileIcon(c.filename, c.icons) + activeTheme.HintText.Render(c.filename)
	return header + "\n" + body, nil
}
