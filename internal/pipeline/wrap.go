package pipeline

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	hardwrap "github.com/muesli/reflow/wrap"
)

// wrap breaks text into lines of at most width columns. Lines break at spaces;
// a word longer than width starts a new line and is split across as many
// lines as it needs. Newlines and surrounding whitespace in text are folded
// away first, so the result never contains empty leading or trailing lines.
// Whitespace-only text yields nil. Widths below one column count as one.
func wrap(text string, width int) []string {
	width = max(1, width)

	w := wordwrap.NewWriter(width)
	w.KeepNewlines = false
	w.Breakpoints = nil
	_, _ = w.Write([]byte(text))
	_ = w.Close()

	out := strings.TrimSpace(hardwrap.String(w.String(), width))
	if out == "" {
		return nil
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}
