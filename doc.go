// Package rstify converts plaintext proposal documents to reStructuredText.
//
// # Quick Start
//
// Create a converter and convert the document text:
//
//	conv, err := rstify.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, rstify.Input{Text: text})
//	if errors.Is(err, rstify.ErrAlreadyConverted) {
//	    return // nothing to do
//	}
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(rstify.OutputPath("pep-0001.txt"), result.RST, 0644)
//
// # Input Conventions
//
// The source format is a fixed header block ended by a blank line, followed
// by a body where each line is classified by its leading syntax:
//
//   - "- item" and "N. item" lines open list items
//   - "[1] ..." lines are references
//   - lines indented by four spaces are paragraphs, deeper indentation is a
//     literal block
//   - other unindented lines are section headings
//   - a form feed line starts the trailer, which is kept as a comment
//
// Wrapped lines are folded back into paragraphs and re-wrapped to the page
// width (70 columns by default, see WithPageWidth).
//
// # Already Converted Documents
//
// The converter adds "Content-Type: text/x-rst" before the header's Created
// line. A document whose header already declares that content type is not
// converted again: Convert returns ErrAlreadyConverted and no output. This
// is a normal outcome, batch callers skip the file and continue.
//
// # Logging
//
// Pass a github.com/charmbracelet/log logger with WithLogger to observe the
// conversion at debug level (emphasis rewrites, phase transitions).
package rstify
