package pipeline

import (
	"regexp"
	"strings"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitLines splits text into lines that keep their "\n" terminator.
// Line endings are normalized first. The last line has no terminator when
// the text does not end with a newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(normalizeLineEndings(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Assemble concatenates fragments into the final document text: the lines
// of the joined fragments, separated by single newlines, with no terminator
// after the last one. Fragment boundaries need not be line boundaries.
func Assemble(fragments []string) string {
	text := normalizeLineEndings(strings.Join(fragments, ""))
	return strings.TrimSuffix(text, "\n")
}
