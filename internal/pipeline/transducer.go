package pipeline

import (
	"errors"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// ErrAlreadyConverted reports that the header already declares the
// reStructuredText content type. It is a control signal, not a failure:
// callers skip the document and write nothing.
var ErrAlreadyConverted = errors.New("document is already reStructuredText")

// Page width bounds in columns. The transducer itself accepts any positive
// width; callers validating user input use the bounds.
const (
	DefaultPageWidth = 70
	MinPageWidth     = 20
	MaxPageWidth     = 200
)

// ContentType is the MIME type declared in converted headers.
const ContentType = "text/x-rst"

const (
	contentTypeField = "Content-Type"
	createdField     = "Created"
	contentTypeLine  = contentTypeField + ": " + ContentType + "\n"

	listMarkerWidth = 3     // columns reserved for "* " and "1. " markers
	baseIndent      = 4     // indentation of ordinary body paragraphs
	minTextWidth    = 10    // narrowest text column left beside a literal indent
	trailerIndent   = "   " // keeps trailer lines inside the ".." comment
	trailerStart    = "\n..\n"
	literalIntro    = "\n::\n\n"
)

// Stats counts what a conversion pass produced.
type Stats struct {
	LinesRead        int
	HeaderLines      int
	Headings         int
	ListItems        int
	Paragraphs       int
	LiteralBlocks    int
	References       int
	EmphasisRewrites int
	TrailerLines     int
}

// Document is the collected output of a pass.
type Document struct {
	Fragments []string
	Stats     Stats
}

// Text returns the assembled reStructuredText.
func (d *Document) Text() string {
	return Assemble(d.Fragments)
}

// Transducer converts line sequences. It holds no per-document state and is
// safe for concurrent use.
type Transducer struct {
	width  int
	logger *log.Logger
}

// TransducerOption configures a Transducer.
type TransducerOption func(*Transducer)

// WithLogger sets the logger receiving debug observations.
func WithLogger(l *log.Logger) TransducerOption {
	return func(t *Transducer) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTransducer returns a transducer wrapping to width columns.
// A non-positive width selects DefaultPageWidth.
func NewTransducer(width int, opts ...TransducerOption) *Transducer {
	if width <= 0 {
		width = DefaultPageWidth
	}
	t := &Transducer{width: width, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Width returns the page width.
func (t *Transducer) Width() int {
	return t.width
}

// Fragments lazily produces output fragments for lines.
//
// Header fragments are held back until the header ends, so a document whose
// header declares the reStructuredText content type yields only a single
// ErrAlreadyConverted pair.
func (t *Transducer) Fragments(lines []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		p := t.newPass(lines)
		err := p.run(func(s string) bool {
			return yield(s, nil)
		})
		if err != nil {
			yield("", err)
		}
	}
}

// Transduce runs a full pass and collects its fragments and statistics.
func (t *Transducer) Transduce(lines []string) (*Document, error) {
	p := t.newPass(lines)
	var fragments []string
	err := p.run(func(s string) bool {
		fragments = append(fragments, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	p.stats.LinesRead = p.cur.Consumed()
	return &Document{Fragments: fragments, Stats: p.stats}, nil
}

// pass is the state of one conversion.
type pass struct {
	width int
	log   *log.Logger
	cur   *Cursor
	stats Stats
}

func (t *Transducer) newPass(lines []string) *pass {
	return &pass{
		width: t.width,
		log:   t.logger,
		cur:   NewCursor(lines),
	}
}

// run drives the three phases. emit returns false when the consumer stops.
func (p *pass) run(emit func(string) bool) error {
	more, err := p.header(emit)
	if err != nil || !more {
		return err
	}
	if !p.body(emit) {
		return nil
	}
	p.trailer(emit)
	return nil
}

// header copies the header block up to and including the first blank line.
// Nothing is emitted before the whole header has been read.
func (p *pass) header(emit func(string) bool) (bool, error) {
	var held []string
	for {
		line, ok := p.cur.Next()
		if !ok {
			emitAll(emit, held)
			return false, nil
		}

		if strings.Contains(line, ContentType) {
			return false, ErrAlreadyConverted
		}
		if strings.Contains(line, contentTypeField) {
			p.log.Debug("dropping content type declaration", "line", strings.TrimSpace(line))
			continue
		}

		p.stats.HeaderLines++
		if strings.Contains(line, createdField) {
			held = append(held, contentTypeLine)
		}
		held = append(held, line)
		if line == blankLine {
			p.log.Debug("header complete", "lines", p.cur.Consumed())
			return emitAll(emit, held), nil
		}
	}
}

// emitAll emits fragments in order and reports whether the consumer wants more.
func emitAll(emit func(string) bool, fragments []string) bool {
	for _, f := range fragments {
		if !emit(f) {
			return false
		}
	}
	return true
}

// body converts lines until the page break. It reports whether the trailer
// should follow.
func (p *pass) body(emit func(string) bool) bool {
	for {
		line, ok := p.cur.Next()
		if !ok {
			return false
		}

		kind := Classify(line)
		if kind == KindPageBreak {
			p.log.Debug("page break, copying trailer", "line", p.cur.Consumed())
			return emit(trailerStart)
		}
		if !emit(p.render(kind, line)) {
			return false
		}
	}
}

// trailer copies the remaining lines verbatim, indented into the comment
// opened at the page break.
func (p *pass) trailer(emit func(string) bool) {
	for {
		line, ok := p.cur.Next()
		if !ok {
			return
		}
		p.stats.TrailerLines++
		if !emit(trailerIndent + line) {
			return
		}
	}
}

// render produces the fragment for one body line, consuming continuation
// lines from the cursor where the line opens a paragraph.
func (p *pass) render(kind Kind, line string) string {
	stripped := strings.TrimSpace(line)

	switch kind {
	case KindListDash:
		p.stats.ListItems++
		text := p.reassemble(strings.TrimPrefix(stripped, dashMarker))
		return "\n* " + strings.Join(wrap(text, p.width-listMarkerWidth), "\n  ") + "\n"

	case KindListEnumerated:
		p.stats.ListItems++
		number, rest := splitEnumerated(stripped)
		marker := number + ". "
		hang := strings.Repeat(" ", len(marker))
		text := p.reassemble(rest)
		width := p.width - max(listMarkerWidth, len(marker))
		return "\n" + marker + strings.Join(wrap(text, width), "\n"+hang) + "\n"

	case KindReference:
		p.stats.References++
		return "\n.. " + stripped + "\n"

	case KindIndented:
		return p.renderIndented(line)

	case KindBlank:
		return line

	default:
		p.stats.Headings++
		title := strings.TrimSuffix(line, "\n")
		return "\n" + title + "\n" + strings.Repeat("=", utf8.RuneCountInString(title))
	}
}

// renderIndented emits an indented paragraph. Text at the base indentation
// is an ordinary paragraph; deeper text becomes a literal block indented by
// the extra amount. Indentation shallower than the base counts as base.
func (p *pass) renderIndented(line string) string {
	spaces := leadingSpaces(line)
	level := spaces - baseIndent
	if level < 0 {
		p.log.Debug("shallow indentation treated as paragraph", "spaces", spaces)
		level = 0
	}

	if maxLevel := max(0, p.width-minTextWidth); level > maxLevel {
		p.log.Debug("literal indentation reduced to fit the page", "level", level, "max", maxLevel)
		level = maxLevel
	}

	lines := wrap(p.reassemble(line), p.width-level)
	if level == 0 {
		return "\n" + joinLines(lines)
	}

	p.stats.LiteralBlocks++
	prefix := strings.Repeat(" ", level)
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + l
		}
	}
	return literalIntro + joinLines(lines)
}

// joinLines joins lines with newlines and terminates the last one.
func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
