package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/alnah/go-rstify"
	"github.com/alnah/go-rstify/internal/config"
	"github.com/alnah/go-rstify/internal/fileutil"
	"github.com/alnah/go-rstify/internal/highlight"
	"github.com/alnah/go-rstify/internal/hints"
	"github.com/alnah/go-rstify/internal/logger"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoFiles            = errors.New("no input files found")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrOutputIsInput      = errors.New("output path is the input file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrBatchFailed        = errors.New("conversion failed")
)

// maxWorkers bounds --workers.
const maxWorkers = 64

// defaultConfigSource names the configuration in logs when no file is given.
const defaultConfigSource = "defaults"

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	log := logger.New(env.Stderr, logger.LevelFor(flags.common.verbose, flags.common.quiet))

	cfg, source, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	conv, err := rstify.NewConverter(
		rstify.WithPageWidth(cfg.Wrap.Width),
		rstify.WithLogger(log.Logger),
	)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForInvalidWidth(rstify.MinPageWidth, rstify.MaxPageWidth))
	}

	hl, err := resolveHighlighter(flags.output, cfg, log)
	if err != nil {
		return err
	}

	inputs, err := resolveInputPaths(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputs, cfg.Output.DefaultDir, cfg.Input.Extensions)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s (extensions: %s)",
			ErrNoFiles, strings.Join(inputs, ", "), strings.Join(cfg.Input.Extensions, ", "))
	}

	workers := resolveWorkers(flags.workers, len(files))
	log.ConfigLoaded(source, cfg.Wrap.Width, workers)
	log.BatchStarted(len(files), workers)

	start := env.Now()
	params := &conversionParams{toStdout: flags.output.stdout}
	results := convertBatch(ctx, conv, files, params, workers)

	logResults(log, results)
	summary := printResults(results, flags, hl, env)
	log.BatchCompleted(summary.Succeeded, summary.Skipped, summary.Failed, env.Now().Sub(start))

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrBatchFailed, summary.Failed, len(results))
	}
	return nil
}

// loadConfig loads the named config, or the defaults when name is empty.
// It also returns a description of the source for logging.
func loadConfig(name string) (*config.Config, string, error) {
	if name == "" {
		return config.DefaultConfig(), defaultConfigSource, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, "", fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, name, nil
}

// mergeFlags overrides config values with explicitly set CLI flags.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.width != 0 {
		cfg.Wrap.Width = flags.width
	}
	if flags.output.dir != "" {
		cfg.Output.DefaultDir = flags.output.dir
	}
}

// resolveHighlighter returns the highlighter for --color, or nil when output
// is not colorized.
func resolveHighlighter(f outputFlags, cfg *config.Config, log *logger.Logger) (*highlight.Highlighter, error) {
	if !f.color {
		return nil, nil
	}
	if !f.stdout {
		log.Warn("--color only applies to --stdout output, ignoring")
		return nil, nil
	}

	hl, err := highlight.New(cfg.Highlight.Style)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForUnknownStyle(highlight.Styles()))
	}
	return hl, nil
}

// resolveInputPaths returns the positional inputs, or the configured default
// directory when there are none.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers determines the worker count for a batch of files.
// Priority: explicit flag > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(flagWorkers, files int) int {
	n := flagWorkers
	if n == 0 {
		n = min(runtime.GOMAXPROCS(0), maxWorkers)
	}
	return max(1, min(n, files))
}
