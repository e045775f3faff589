// Package cmd wires up the CLI flags and dispatches to the t9pad core.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"t9pad/config"
	"t9pad/internal/core"
	"t9pad/internal/metrics"
	"t9pad/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X t9pad/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate t9pad mode against the
// process's standard streams.
func Execute(ctx context.Context, args []string) error {
	return run(ctx, args, core.Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
}

func run(ctx context.Context, args []string, std core.Streams) error {
	cfg := config.New()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("t9pad", flag.ContinueOnError)
	fs.SetOutput(std.Stderr)

	// ── input ────────────────────────────────────────────────────
	fs.StringVarP(&cfg.InputFile, "file", "f", cfg.InputFile, "Decode each line of FILE (- for stdin)")

	// ── layout ───────────────────────────────────────────────────
	fs.StringVarP(&cfg.LayoutPath, "layout", "l", cfg.LayoutPath, "Key layout file (.toml, .yaml, .json)")
	fs.BoolVar(&cfg.WatchLayout, "watch", cfg.WatchLayout, "Reload the layout file when it changes (shell only)")

	// ── shell ────────────────────────────────────────────────────
	fs.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "Shell prompt")
	fs.StringVar(&cfg.QuitWord, "quit-word", cfg.QuitWord, "Word that exits the shell")
	fs.BoolVar(&cfg.NoBanner, "no-banner", cfg.NoBanner, "Skip the shell banner")

	// ── output ───────────────────────────────────────────────────
	fs.BoolVarP(&cfg.Quote, "quote", "q", cfg.Quote, "Wrap each decoded result in single quotes")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "Print decode statistics to stderr on exit")
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var dryRun, showVersion, showHelp bool
	fs.BoolVar(&dryRun, "dry-run", false, "Validate flags and layout, then exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(std.Stderr, fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(std.Stderr, fs)
		return nil
	}
	if showVersion {
		fmt.Fprintf(std.Stdout, "t9pad %s\n", version)
		return nil
	}

	// ── positional arguments ─────────────────────────────────────
	cfg.Sequences = fs.Args()
	if fs.Changed("watch") {
		cfg.WatchFromEnv = false
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	logger.SetOutput(std.Stderr)

	m := metrics.New()

	mode, err := core.Build(cfg, std, logger, m)
	if err != nil {
		return err
	}
	if dryRun {
		logger.Info("configuration OK")
		return nil
	}

	err = mode.Run(ctx)
	if cfg.Stats {
		fmt.Fprintln(std.Stderr, m.JSON())
	}
	return err
}

// ── helpers ──────────────────────────────────────────────────────────

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `t9pad – Old Phone Keypad Decoder v%s

Decodes multi-tap keypad sequences into text.  Keys 2-9 cycle through
letters, space separates presses of the same key, 0 types a space,
* is backspace and # ends the sequence.

Usage:
  t9pad [options]                      Interactive shell
  t9pad [options] <sequence>...        Decode arguments
  t9pad [options] -f <file>            Decode each line of a file

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
  t9pad '4433555 555666#'              HELLO
  t9pad -q '0#'                        ' '
  echo '222 2 22#' | t9pad -f -        CAB
  t9pad -l nordic.toml --watch         Shell with a live-reloaded layout
`)
}
