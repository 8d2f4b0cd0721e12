package rstify

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-rstify/internal/logger"
	"github.com/alnah/go-rstify/internal/pipeline"
)

// Converter turns plaintext documents into reStructuredText.
// Create with NewConverter. A Converter is safe for concurrent use.
type Converter struct {
	cfg        converterConfig
	transducer *pipeline.Transducer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithPageWidth, WithLogger).
// Returns ErrInvalidPageWidth if the configured width is out of range.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			pageWidth: DefaultPageWidth,
			logger:    logger.Discard().Logger,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validatePageWidth(c.cfg.pageWidth); err != nil {
		return nil, err
	}

	c.transducer = pipeline.NewTransducer(c.cfg.pageWidth, pipeline.WithLogger(c.cfg.logger))
	return c, nil
}

// PageWidth returns the configured page width.
func (c *Converter) PageWidth() int {
	return c.cfg.pageWidth
}

// Convert runs the transducer over input and returns the assembled document.
// A document that is already reStructuredText yields ErrAlreadyConverted and
// a nil result. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if input.Text == "" {
		return nil, ErrEmptyInput
	}

	lines := pipeline.SplitLines(input.Text)
	doc, err := c.transducer.Transduce(lines)
	if errors.Is(err, pipeline.ErrAlreadyConverted) {
		c.cfg.logger.Debug("document already converted", "name", input.Name)
		return nil, ErrAlreadyConverted
	}
	if err != nil {
		return nil, fmt.Errorf("transducing: %w", err)
	}

	c.cfg.logger.Debug("document converted",
		"name", input.Name,
		"lines", doc.Stats.LinesRead,
		"fragments", len(doc.Fragments))

	return &ConvertResult{
		RST:   []byte(doc.Text()),
		Stats: statsFrom(doc.Stats),
	}, nil
}
