package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output destination flags.
type outputFlags struct {
	dir    string
	stdout bool
	color  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  outputFlags
	workers int
	width   int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addOutputFlags adds output destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory (default: next to each input)")
	fs.BoolVar(&f.stdout, "stdout", false, "write converted text to stdout instead of files")
	fs.BoolVar(&f.color, "color", false, "colorize --stdout output")
}

// addConvertFlags registers every convert flag on fs.
// Shared by parseConvertFlags and the completion generator.
func addConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	addOutputFlags(fs, &f.output)
	fs.IntVarP(&f.workers, "workers", "w", 1, "parallel workers (0 = auto)")
	fs.IntVar(&f.width, "width", 0, "page width in columns (default: config or 70)")
	addCommonFlags(fs, &f.common)
}

// parseConvertFlags parses convert command flags and returns positional args.
// Returns flag.ErrHelp unwrapped when -h or --help is given.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &convertFlags{}
	addConvertFlags(fs, f)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, usage io.Writer) (*commonFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	fs.Usage = func() { printConfigUsage(usage) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrInvalidFlags, fs.Arg(0))
	}
	return f, nil
}

func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}
