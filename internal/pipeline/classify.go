package pipeline

import (
	"regexp"
	"strings"
)

// Kind is the classification of an input line by its leading syntax.
type Kind int

// Line kinds, in classification priority order.
const (
	KindListDash       Kind = iota // "- item"
	KindListEnumerated             // "1. item"
	KindReference                  // "[1] http://..."
	KindIndented                   // "    paragraph text"
	KindBlank                      // "\n"
	KindPageBreak                  // "\f\n"
	KindHeading                    // anything else
)

// Source format conventions.
const (
	dashMarker     = "- "
	referenceStart = "["
	pageBreakLine  = "\f\n"
	blankLine      = "\n"
)

// Enumerated list marker: one or more digits, a period and a space.
var enumeratedMarker = regexp.MustCompile(`^(\d+)\. `)

var kindNames = [...]string{
	KindListDash:       "list-dash",
	KindListEnumerated: "list-enumerated",
	KindReference:      "reference",
	KindIndented:       "indented",
	KindBlank:          "blank",
	KindPageBreak:      "page-break",
	KindHeading:        "heading",
}

// String returns a short name for the kind, used in logs.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Classify returns the kind of a raw input line (including its newline).
// List and reference markers are matched against the stripped line, so an
// indented "- item" is still a list item.
func Classify(line string) Kind {
	stripped := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(stripped, dashMarker):
		return KindListDash
	case enumeratedMarker.MatchString(stripped):
		return KindListEnumerated
	case strings.HasPrefix(stripped, referenceStart):
		return KindReference
	case strings.HasPrefix(line, " "):
		return KindIndented
	case line == blankLine:
		return KindBlank
	case line == pageBreakLine:
		return KindPageBreak
	default:
		return KindHeading
	}
}

// startsListItem reports whether line opens a new dash or enumerated item.
func startsListItem(line string) bool {
	k := Classify(line)
	return k == KindListDash || k == KindListEnumerated
}

// splitEnumerated splits a stripped enumerated line into its number and the
// item text following the marker.
func splitEnumerated(stripped string) (number, text string) {
	m := enumeratedMarker.FindStringSubmatchIndex(stripped)
	if m == nil {
		return "", stripped
	}
	return stripped[m[2]:m[3]], stripped[m[1]:]
}

// leadingSpaces counts the space characters at the start of line.
func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
