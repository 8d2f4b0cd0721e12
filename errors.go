package rstify

import (
	"errors"

	"github.com/alnah/go-rstify/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput       = errors.New("input text cannot be empty")
	ErrInvalidPageWidth = errors.New("invalid page width")

	// ErrAlreadyConverted reports a document whose header already declares
	// the reStructuredText content type. It is a skip signal, not a failure.
	ErrAlreadyConverted = pipeline.ErrAlreadyConverted
)
