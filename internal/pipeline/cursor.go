package pipeline

// Cursor is a forward-only reader over a line sequence with one line of
// lookahead. It never rewinds: every line is returned by Next at most once.
type Cursor struct {
	lines []string
	pos   int
}

// NewCursor returns a cursor positioned before the first line.
func NewCursor(lines []string) *Cursor {
	return &Cursor{lines: lines}
}

// Next consumes and returns the next line.
// The boolean is false once the sequence is exhausted.
func (c *Cursor) Next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// Peek returns the next line without consuming it.
func (c *Cursor) Peek() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos], true
}

// Consumed reports how many lines Next has returned so far.
func (c *Cursor) Consumed() int {
	return c.pos
}
