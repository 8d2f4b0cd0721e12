package pipeline

import "strings"

// emphasis describes how a word containing asterisks was rewritten.
type emphasis int

const (
	emphasisNone    emphasis = iota
	emphasisStrong           // *word* -> **word**
	emphasisLiteral          // a*b -> ``a*b``
)

func (e emphasis) String() string {
	switch e {
	case emphasisStrong:
		return "strong"
	case emphasisLiteral:
		return "literal"
	default:
		return "none"
	}
}

// reassemble folds the continuation lines of a wrapped paragraph into first.
//
// It stops before a line that opens a new list item (that line is left for
// the classifier), at the first blank line (consumed), or at the end of the
// input. When the input is already exhausted on the first look ahead, first
// is returned untouched; when the next line is already a list item, first is
// returned stripped and without emphasis normalization.
func (p *pass) reassemble(first string) string {
	p.stats.Paragraphs++
	next, ok := p.cur.Peek()
	if !ok {
		p.log.Debug("paragraph reaches end of input", "line", strings.TrimSpace(first))
		return first
	}
	if startsListItem(next) {
		return strings.TrimSpace(first)
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(first))
	for ok && !startsListItem(next) {
		line, _ := p.cur.Next()
		text := strings.TrimSpace(line)
		if text == "" {
			break
		}
		b.WriteByte(' ')
		b.WriteString(text)
		next, ok = p.cur.Peek()
	}

	return p.normalizeEmphasis(b.String())
}

// normalizeEmphasis rewrites the asterisk conventions of plain text into
// reST inline markup, word by word.
func (p *pass) normalizeEmphasis(text string) string {
	if !strings.Contains(text, "*") {
		return text
	}
	words := strings.Split(text, " ")
	for i, word := range words {
		rewritten, kind := emphasizeWord(word)
		if kind == emphasisNone {
			continue
		}
		p.stats.EmphasisRewrites++
		p.log.Debug("emphasis normalized", "word", word, "as", kind)
		words[i] = rewritten
	}
	return strings.Join(words, " ")
}

// emphasizeWord rewrites a single word. A word wrapped in asterisks becomes
// strong emphasis; any other word containing an asterisk becomes an inline
// literal so reST does not read it as unbalanced markup.
func emphasizeWord(word string) (string, emphasis) {
	if !strings.Contains(word, "*") {
		return word, emphasisNone
	}
	if strings.HasPrefix(word, "*") && strings.HasSuffix(word, "*") {
		return "*" + word + "*", emphasisStrong
	}
	return "``" + word + "``", emphasisLiteral
}
