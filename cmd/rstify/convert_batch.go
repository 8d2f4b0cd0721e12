package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-rstify"
	"github.com/alnah/go-rstify/internal/fileutil"
	"github.com/alnah/go-rstify/internal/highlight"
	"github.com/alnah/go-rstify/internal/hints"
	"github.com/alnah/go-rstify/internal/logger"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input rstify.Input) (*rstify.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*rstify.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	toStdout bool // keep output in memory for printing instead of writing files
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	RST        []byte // set when converting to stdout
	Stats      rstify.Stats
	Skipped    bool // input was already reStructuredText
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently with up to workers goroutines
// sharing conv. Results are indexed like files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := max(1, min(workers, len(files)))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath:  files[idx].InputPath,
						OutputPath: files[idx].OutputPath,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if !params.toStdout && fileutil.SamePath(f.InputPath, f.OutputPath) {
		return done(fmt.Errorf("%w: %s%s", ErrOutputIsInput, f.InputPath, hints.ForOutputIsInput()))
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	convResult, err := conv.Convert(ctx, rstify.Input{
		Text: string(content),
		Name: f.InputPath,
	})
	if errors.Is(err, rstify.ErrAlreadyConverted) {
		result.Skipped = true
		return done(nil)
	}
	if err != nil {
		return done(err)
	}
	result.Stats = convResult.Stats

	if params.toStdout {
		result.RST = convResult.RST
		return done(nil)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return done(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.RST, filePermissions); err != nil {
		return done(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	return done(nil)
}

// ResultSummary holds the count of succeeded, skipped and failed conversions.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// logResults records per-file outcomes in input order.
func logResults(log *logger.Logger, results []ConversionResult) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			// reported by printResults
		case r.Skipped:
			log.Skipped(r.InputPath, "already reStructuredText")
		default:
			log.FileConverted(r.InputPath, r.OutputPath, r.Stats.LinesRead, r.Stats.Paragraphs)
		}
	}
}

// printResults outputs conversion results in input order and returns the tally.
// With --stdout the converted documents themselves are written, colorized
// when hl is non-nil; otherwise one line per created file.
func printResults(results []ConversionResult, flags *convertFlags, hl *highlight.Highlighter, env *Environment) ResultSummary {
	var summary ResultSummary
	quiet, verbose := flags.common.quiet, flags.common.verbose

	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)

		case r.Skipped:
			summary.Skipped++

		case flags.output.stdout:
			if err := writeDocument(env.Stdout, hl, r.RST); err != nil {
				summary.Failed++
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, err)
				continue
			}
			summary.Succeeded++

		default:
			summary.Succeeded++
			if quiet {
				continue
			}
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
			}
		}
	}

	if !quiet && !flags.output.stdout && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d skipped, %d failed\n", summary.Succeeded, summary.Skipped, summary.Failed)
	}

	return summary
}

// writeDocument writes one converted document followed by a newline.
func writeDocument(w io.Writer, hl *highlight.Highlighter, rst []byte) error {
	text := string(rst) + "\n"
	if hl != nil {
		return hl.Write(w, text)
	}
	_, err := io.WriteString(w, text)
	return err
}
