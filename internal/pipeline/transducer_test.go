package pipeline

// Notes:
// - Golden files in testdata/ pin the full output for a representative
//   document; the property tests below cover each line kind in isolation.
// - Debug logging is exercised only through the discard logger.

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

const longSentence = "Continuation lines of a wrapped list item must line up under the " +
	"text of the item rather than under its marker, which keeps the " +
	"rendered list readable in plain text as well."

// transduce runs a default transducer and fails the test on error.
func transduce(t *testing.T, lines []string) *Document {
	t.Helper()

	doc, err := NewTransducer(DefaultPageWidth).Transduce(lines)
	if err != nil {
		t.Fatalf("Transduce() error = %v", err)
	}
	return doc
}

// body prefixes lines with a minimal header block.
func body(lines ...string) []string {
	return append([]string{"PEP: 1\n", "\n"}, lines...)
}

// ---------------------------------------------------------------------------
// TestTransduce_Example - End-to-end list document
// ---------------------------------------------------------------------------

func TestTransduce_Example(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Title\n",
		"Created: 1-Jan-2020\n",
		"\n",
		"- item one that is long enough to wrap across the configured width boundary\n",
		"- item two\n",
		"\n",
	}

	doc := transduce(t, lines)

	want := []string{
		"Title\n",
		"Content-Type: text/x-rst\n",
		"Created: 1-Jan-2020\n",
		"\n",
		"\n* item one that is long enough to wrap across the configured width\n  boundary\n",
		"\n* item two\n",
	}
	if diff := cmp.Diff(want, doc.Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}

	wantText := "Title\nContent-Type: text/x-rst\nCreated: 1-Jan-2020\n\n\n" +
		"* item one that is long enough to wrap across the configured width\n" +
		"  boundary\n\n* item two"
	if got := doc.Text(); got != wantText {
		t.Errorf("Text() = %q, want %q", got, wantText)
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_Golden - Representative document
// ---------------------------------------------------------------------------

func TestTransduce_Golden(t *testing.T) {
	t.Parallel()

	input, err := os.ReadFile("testdata/pep-9999.txt")
	if err != nil {
		t.Fatalf("reading input: %v", err)
	}
	want, err := os.ReadFile("testdata/pep-9999.rst")
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	doc := transduce(t, SplitLines(string(input)))

	if diff := cmp.Diff(string(want), doc.Text()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	wantStats := Stats{
		LinesRead:        28,
		HeaderLines:      4,
		Headings:         3,
		ListItems:        4,
		Paragraphs:       6,
		LiteralBlocks:    1,
		References:       1,
		EmphasisRewrites: 1,
		TrailerLines:     2,
	}
	if diff := cmp.Diff(wantStats, doc.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_AlreadyConverted - Idempotence guard
// ---------------------------------------------------------------------------

func TestTransduce_AlreadyConverted(t *testing.T) {
	t.Parallel()

	lines := []string{
		"PEP: 1\n",
		"Content-Type: text/x-rst\n",
		"Created: 1-Jan-2020\n",
		"\n",
		"Abstract\n",
	}

	doc, err := NewTransducer(DefaultPageWidth).Transduce(lines)
	if !errors.Is(err, ErrAlreadyConverted) {
		t.Fatalf("error = %v, want ErrAlreadyConverted", err)
	}
	if doc != nil {
		t.Errorf("document = %+v, want nil", doc)
	}
}

func TestTransduce_OutputIsRecognizedAsConverted(t *testing.T) {
	t.Parallel()

	input, err := os.ReadFile("testdata/pep-9999.txt")
	if err != nil {
		t.Fatalf("reading input: %v", err)
	}

	first := transduce(t, SplitLines(string(input)))

	_, err = NewTransducer(DefaultPageWidth).Transduce(SplitLines(first.Text()))
	if !errors.Is(err, ErrAlreadyConverted) {
		t.Fatalf("second pass error = %v, want ErrAlreadyConverted", err)
	}
}

func TestTransduce_MarkerOutsideHeaderIsIgnored(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body("    Use text/x-rst for new documents.\n"))

	want := "PEP: 1\n\n\nUse text/x-rst for new documents."
	if got := doc.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_ContentTypeDedup - One declaration, before Created
// ---------------------------------------------------------------------------

func TestTransduce_ContentTypeDedup(t *testing.T) {
	t.Parallel()

	lines := []string{
		"PEP: 1\n",
		"Content-Type: text/plain\n",
		"Status: Draft\n",
		"Created: 1-Jan-2020\n",
		"\n",
	}

	out := strings.Split(transduce(t, lines).Text(), "\n")

	var found []int
	for i, line := range out {
		if strings.HasPrefix(line, "Content-Type:") {
			found = append(found, i)
		}
	}
	if len(found) != 1 {
		t.Fatalf("found %d content type lines, want 1:\n%s", len(found), strings.Join(out, "\n"))
	}
	if out[found[0]] != "Content-Type: text/x-rst" {
		t.Errorf("content type line = %q", out[found[0]])
	}
	if next := out[found[0]+1]; !strings.HasPrefix(next, "Created:") {
		t.Errorf("line after content type = %q, want the Created line", next)
	}
}

func TestTransduce_HeaderWithoutCreated(t *testing.T) {
	t.Parallel()

	lines := []string{"PEP: 1\n", "Content-Type: text/plain\n", "\n"}

	want := []string{"PEP: 1\n", "\n"}
	if diff := cmp.Diff(want, transduce(t, lines).Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_HeadingUnderline - Underline matches title length
// ---------------------------------------------------------------------------

func TestTransduce_HeadingUnderline(t *testing.T) {
	t.Parallel()

	titles := []string{"Abstract", "Backwards Compatibility", "Überblick", "Trailing  ", "X"}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			t.Parallel()

			doc := transduce(t, body(title+"\n"))
			want := "\n" + title + "\n" + strings.Repeat("=", utf8.RuneCountInString(title))
			if got := doc.Fragments[len(doc.Fragments)-1]; got != want {
				t.Errorf("heading fragment = %q, want %q", got, want)
			}
		})
	}
}

func TestTransduce_HeadingSpacing(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body("Abstract\n", "\n", "    Body text here.\n", "    More.\n", "\n", "Next\n", "\n", "- item\n"))

	want := "PEP: 1\n\n\nAbstract\n========\n\nBody text here. More.\n\nNext\n====\n\n* item"
	if got := doc.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestTransduce_HeadingWithoutNewline(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body("Copyright"))
	if got, want := doc.Text(), "PEP: 1\n\n\nCopyright\n========="; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_HangingIndent - List continuation alignment
// ---------------------------------------------------------------------------

func TestTransduce_HangingIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		marker string
		indent string
	}{
		{"dash item", "- " + longSentence + "\n", "* ", "  "},
		{"enumerated item", "1. " + longSentence + "\n", "1. ", "   "},
		{"indented enumerated item", "    7. " + longSentence + "\n", "7. ", "   "},
		{"multi digit item", "12. " + longSentence + "\n", "12. ", "    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := transduce(t, body(tt.line))
			item := strings.Split(strings.Trim(doc.Fragments[len(doc.Fragments)-1], "\n"), "\n")

			if len(item) < 2 {
				t.Fatalf("item did not wrap: %q", item)
			}
			if !strings.HasPrefix(item[0], tt.marker) {
				t.Errorf("first line %q does not start with marker %q", item[0], tt.marker)
			}
			for _, line := range item[1:] {
				rest, ok := strings.CutPrefix(line, tt.indent)
				if !ok || strings.HasPrefix(rest, " ") {
					t.Errorf("continuation %q is not indented by exactly %d spaces", line, len(tt.indent))
				}
			}
			for _, line := range item {
				if len(line) > DefaultPageWidth {
					t.Errorf("line %q exceeds page width", line)
				}
			}
		})
	}
}

func TestTransduce_ListItems(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body(
		"- first\n",
		"  continued\n",
		"- second\n",
		"\n",
		"1. one\n",
		"2. two\n",
	))

	want := []string{
		"PEP: 1\n",
		"\n",
		"\n* first continued\n",
		"\n* second\n",
		"\n1. one\n",
		"\n2. two\n",
	}
	if diff := cmp.Diff(want, doc.Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
	if doc.Stats.ListItems != 4 {
		t.Errorf("ListItems = %d, want 4", doc.Stats.ListItems)
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_Indentation - Paragraphs and literal blocks
// ---------------------------------------------------------------------------

func TestTransduce_Indentation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "base indentation is a paragraph",
			lines: []string{"    plain paragraph\n", "    second line\n", "\n"},
			want:  "\nplain paragraph second line\n",
		},
		{
			name:  "deeper indentation is a literal block",
			lines: []string{"        code sample\n", "\n"},
			want:  "\n::\n\n    code sample\n",
		},
		{
			name:  "shallow indentation is clamped to a paragraph",
			lines: []string{"  odd indent\n", "\n"},
			want:  "\nodd indent\n",
		},
		{
			name:  "literal block wraps to the reduced width",
			lines: []string{"            " + longSentence + "\n"},
			want: "\n::\n\n" +
				"        Continuation lines of a wrapped list item must line up under\n" +
				"        the text of the item rather than under its marker, which keeps\n" +
				"        the rendered list readable in plain text as well.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := transduce(t, body(tt.lines...))
			if got := doc.Fragments[2]; got != tt.want {
				t.Errorf("fragment = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransduce_LiteralIndentFitsNarrowPage(t *testing.T) {
	t.Parallel()

	doc, err := NewTransducer(20).Transduce(body("                " + longSentence + "\n"))
	if err != nil {
		t.Fatalf("Transduce() error = %v", err)
	}

	lines := strings.Split(strings.Trim(doc.Fragments[2], "\n"), "\n")
	for _, line := range lines[2:] {
		if len(line) > 20 {
			t.Errorf("line %q is %d columns, want at most 20", line, len(line))
		}
		if !strings.HasPrefix(line, strings.Repeat(" ", 10)) {
			t.Errorf("line %q lost its literal indentation", line)
		}
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_WidthInvariant - Wrapped lines never exceed the page
// ---------------------------------------------------------------------------

func TestTransduce_WidthInvariant(t *testing.T) {
	t.Parallel()

	url := "http://example.com/" + strings.Repeat("a", 80)
	lines := body(
		"    see "+url+" now\n",
		"\n",
		"- item pointing at "+url+"\n",
		"\n",
		"12. numbered "+url+" item\n",
		"\n",
		"        literal "+url+"\n",
		"\n",
		"                deep "+longSentence+"\n",
		"\n",
	)

	for _, width := range []int{MinPageWidth, 33, DefaultPageWidth, MaxPageWidth} {
		t.Run(strconv.Itoa(width), func(t *testing.T) {
			t.Parallel()

			doc, err := NewTransducer(width).Transduce(lines)
			if err != nil {
				t.Fatalf("Transduce() error = %v", err)
			}
			for _, line := range strings.Split(doc.Text(), "\n") {
				if n := utf8.RuneCountInString(line); n > width {
					t.Errorf("line %q is %d columns, want at most %d", line, n, width)
				}
			}
			if !strings.Contains(strings.Join(strings.Fields(doc.Text()), ""), "aaaa") {
				t.Error("long word was dropped")
			}
		})
	}
}

func TestTransduce_LiteralBlockCount(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body("    text\n", "\n", "        code\n", "\n"))
	if doc.Stats.LiteralBlocks != 1 {
		t.Errorf("LiteralBlocks = %d, want 1", doc.Stats.LiteralBlocks)
	}
	if strings.Count(doc.Text(), "::") != 1 {
		t.Errorf("want exactly one literal block marker in %q", doc.Text())
	}
}

// ---------------------------------------------------------------------------
// TestTransduce_Body - Remaining line kinds
// ---------------------------------------------------------------------------

func TestTransduce_Reference(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body("    [1] http://example.com/a\n", "    continued?\n"))

	want := []string{
		"PEP: 1\n",
		"\n",
		"\n.. [1] http://example.com/a\n",
		"\ncontinued?\n",
	}
	if diff := cmp.Diff(want, doc.Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestTransduce_BlankLinesAreNotCollapsed(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body("\n", "\n", "\n"))

	want := []string{"PEP: 1\n", "\n", "\n", "\n", "\n"}
	if diff := cmp.Diff(want, doc.Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestTransduce_Trailer(t *testing.T) {
	t.Parallel()

	doc := transduce(t, body(
		"Copyright\n",
		"\f\n",
		"Local Variables:\n",
		"- not a list\n",
		"\n",
		"End:\n",
	))

	wantText := "PEP: 1\n\n\nCopyright\n=========\n..\n" +
		"   Local Variables:\n   - not a list\n   \n   End:"
	if got := doc.Text(); got != wantText {
		t.Errorf("Text() = %q, want %q", got, wantText)
	}
	if doc.Stats.TrailerLines != 4 {
		t.Errorf("TrailerLines = %d, want 4", doc.Stats.TrailerLines)
	}
}

func TestTransduce_HeaderOnly(t *testing.T) {
	t.Parallel()

	lines := []string{"PEP: 1\n", "Created: 1-Jan-2020\n"}

	want := []string{"PEP: 1\n", "Content-Type: text/x-rst\n", "Created: 1-Jan-2020\n"}
	if diff := cmp.Diff(want, transduce(t, lines).Fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestTransduce_Empty(t *testing.T) {
	t.Parallel()

	doc := transduce(t, nil)
	if len(doc.Fragments) != 0 || doc.Text() != "" {
		t.Errorf("empty input produced %q", doc.Fragments)
	}
}

// ---------------------------------------------------------------------------
// TestFragments - Lazy production
// ---------------------------------------------------------------------------

func TestFragments_MatchesTransduce(t *testing.T) {
	t.Parallel()

	input, err := os.ReadFile("testdata/pep-9999.txt")
	if err != nil {
		t.Fatalf("reading input: %v", err)
	}
	lines := SplitLines(string(input))
	tr := NewTransducer(DefaultPageWidth)

	var got []string
	for frag, err := range tr.Fragments(lines) {
		if err != nil {
			t.Fatalf("Fragments() error = %v", err)
		}
		got = append(got, frag)
	}

	doc, err := tr.Transduce(lines)
	if err != nil {
		t.Fatalf("Transduce() error = %v", err)
	}
	if diff := cmp.Diff(doc.Fragments, got); diff != "" {
		t.Errorf("fragments mismatch (-transduce +fragments):\n%s", diff)
	}
}

func TestFragments_EarlyStop(t *testing.T) {
	t.Parallel()

	lines := body("Abstract\n", "\n", "    text\n", "\f\n", "trailer\n")

	count := 0
	for _, err := range NewTransducer(DefaultPageWidth).Fragments(lines) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("received %d fragments, want 3", count)
	}
}

func TestFragments_AlreadyConvertedEndsSequence(t *testing.T) {
	t.Parallel()

	lines := []string{"PEP: 1\n", "Content-Type: text/x-rst\n", "\n", "Abstract\n"}

	var frags []string
	var gotErr error
	for frag, err := range NewTransducer(DefaultPageWidth).Fragments(lines) {
		if err != nil {
			gotErr = err
			continue
		}
		frags = append(frags, frag)
	}

	if !errors.Is(gotErr, ErrAlreadyConverted) {
		t.Fatalf("error = %v, want ErrAlreadyConverted", gotErr)
	}
	if len(frags) != 0 {
		t.Errorf("header fragments leaked before the error: %q", frags)
	}
}

func TestFragments_HeaderWithoutBlankLine(t *testing.T) {
	t.Parallel()

	var frags []string
	for frag, err := range NewTransducer(DefaultPageWidth).Fragments([]string{"PEP: 1\n", "Title: x\n"}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		frags = append(frags, frag)
	}

	if diff := cmp.Diff([]string{"PEP: 1\n", "Title: x\n"}, frags); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestNewTransducer - Width selection
// ---------------------------------------------------------------------------

func TestNewTransducer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width int
		want  int
	}{
		{0, DefaultPageWidth},
		{-1, DefaultPageWidth},
		{40, 40},
	}

	for _, tt := range tests {
		if got := NewTransducer(tt.width).Width(); got != tt.want {
			t.Errorf("NewTransducer(%d).Width() = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestNewTransducer_NarrowWidth(t *testing.T) {
	t.Parallel()

	doc, err := NewTransducer(30).Transduce(body("- " + longSentence + "\n"))
	if err != nil {
		t.Fatalf("Transduce() error = %v", err)
	}
	for _, line := range strings.Split(doc.Text(), "\n") {
		if len(line) > 30 {
			t.Errorf("line %q exceeds width 30", line)
		}
	}
}
