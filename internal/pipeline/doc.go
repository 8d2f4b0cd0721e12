// Package pipeline implements the plaintext-to-reStructuredText transducer.
//
// The conversion is a single forward pass over the input lines:
//   - Header: the leading block up to the first blank line. A document that
//     already declares the text/x-rst content type aborts the pass, and a
//     Content-Type line is synthesized before the "Created" line.
//   - Body: each line is classified by its leading syntax (list item,
//     reference, indented block, blank, page break, heading). Wrapped
//     paragraphs are reassembled from continuation lines, emphasis is
//     normalized, and the text is re-wrapped to the page width.
//   - Trailer: everything after the form-feed page break is copied verbatim
//     inside a reST comment.
//
// Reading and writing files is left to callers. The package works on a
// []string of lines (see SplitLines) and produces fragments that Assemble
// turns into the final text.
package pipeline
