package tui

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlight returns source with terminal colors for the language named by
// filename. Anything chroma cannot handle comes back unchanged.
func highlight(source, filename string) string {
	lexer := lexerFor(filename)
	if lexer == nil {
		return source
	}

	style := styles.Get(activeTheme.ChromaStyleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return source
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return source
	}

	out := buf.String()
	if !strings.HasSuffix(source, "\n") {
		out = strings.TrimRight(out, "\n")
	}
	return out
}

// lexerFor matches a lexer on the base name of filename.
func lexerFor(filename string) chroma.Lexer {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}
	return lexers.Match(name)
}
