package rstify

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rstify/internal/pipeline"
)

// Page width bounds in columns.
const (
	MinPageWidth     = pipeline.MinPageWidth
	MaxPageWidth     = pipeline.MaxPageWidth
	DefaultPageWidth = pipeline.DefaultPageWidth
)

// ContentType is the content type declared in converted headers.
const ContentType = pipeline.ContentType

// Input contains the document to convert.
type Input struct {
	Text string // required, plaintext document
	Name string // optional, used in log fields only
}

// ConvertResult contains the output of a successful conversion.
type ConvertResult struct {
	RST   []byte
	Stats Stats
}

// Stats counts what a conversion produced.
type Stats struct {
	LinesRead        int // input lines consumed
	HeaderLines      int // header lines copied to the output
	Headings         int
	ListItems        int // dash and enumerated items
	Paragraphs       int
	LiteralBlocks    int
	References       int
	EmphasisRewrites int // words rewritten to strong or inline literal
	TrailerLines     int
}

func statsFrom(s pipeline.Stats) Stats {
	return Stats{
		LinesRead:        s.LinesRead,
		HeaderLines:      s.HeaderLines,
		Headings:         s.Headings,
		ListItems:        s.ListItems,
		Paragraphs:       s.Paragraphs,
		LiteralBlocks:    s.LiteralBlocks,
		References:       s.References,
		EmphasisRewrites: s.EmphasisRewrites,
		TrailerLines:     s.TrailerLines,
	}
}

// converterConfig holds configuration for the Converter.
type converterConfig struct {
	pageWidth int
	logger    *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithPageWidth sets the page width the output is wrapped to.
// NewConverter rejects widths outside [MinPageWidth, MaxPageWidth].
func WithPageWidth(width int) Option {
	return func(c *Converter) {
		c.cfg.pageWidth = width
	}
}

// WithLogger sets the logger receiving debug observations.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

func validatePageWidth(width int) error {
	if width < MinPageWidth || width > MaxPageWidth {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidPageWidth, width, MinPageWidth, MaxPageWidth)
	}
	return nil
}
