// Package highlight colorizes reStructuredText for terminal output.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for highlighting.
var (
	ErrUnknownStyle = errors.New("unknown highlight style")
	ErrNoLexer      = errors.New("reStructuredText lexer unavailable")
)

const (
	lexerName     = "rst"
	formatterName = "terminal256"
)

// Highlighter writes colorized reStructuredText. It is safe for concurrent use.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// New returns a Highlighter using the named chroma style.
func New(styleName string) (*Highlighter, error) {
	style, ok := styles.Registry[styleName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	lexer := lexers.Get(lexerName)
	if lexer == nil {
		return nil, ErrNoLexer
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: formatters.Get(formatterName),
	}, nil
}

// Write tokenises text and writes it to w with terminal color escapes.
func (h *Highlighter) Write(w io.Writer, text string) error {
	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("tokenising: %w", err)
	}
	if err := h.formatter.Format(w, h.style, iterator); err != nil {
		return fmt.Errorf("formatting: %w", err)
	}
	return nil
}

// Styles returns the registered style names, sorted.
func Styles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
