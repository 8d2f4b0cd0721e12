package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-rstify/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized first argument.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the subcommand names.
var commands = []string{"convert", "config", "completion", "version", "help"}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	for _, c := range commands {
		if arg == c {
			return true
		}
	}
	return false
}

// runMain dispatches args (including the program name) and returns the exit code.
// A first argument that looks like an input path or a flag starts a conversion,
// so "rstify pep-0001.txt" means "rstify convert pep-0001.txt".
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd := args[1]
	switch {
	case isCommand(cmd):
		return runCommand(cmd, args[2:], env)
	case cmd == "-h" || cmd == "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case strings.HasPrefix(cmd, "-"), looksLikeInput(cmd):
		return runCommand("convert", args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// looksLikeInput reports whether arg names a file or directory rather than
// a mistyped command: it has an extension, a path separator, or exists.
func looksLikeInput(arg string) bool {
	if filepath.Ext(arg) != "" || fileutil.IsFilePath(arg) {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

// runCommand runs one subcommand and maps its error to an exit code.
func runCommand(cmd string, args []string, env *Environment) int {
	var err error
	switch cmd {
	case "convert":
		err = runConvertCommand(args, env)
	case "config":
		err = runConfig(args, env)
	case "completion":
		err = runCompletion(args, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-rstify %s\n", Version)
	case "help":
		err = runHelp(args, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// runConvertCommand parses convert flags and runs the batch until it ends or
// an interrupt cancels it.
func runConvertCommand(args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return runConvert(ctx, positional, flags, env)
}

// notifyContext returns a context that is canceled when an interrupt
// or termination signal is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
