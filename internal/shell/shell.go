// Package shell implements the interactive read-decode-print loop.
//
// The shell treats the decoder as a black box: every line that is not
// a shell command goes verbatim to the session's decoder and the result
// or failure is printed.  A failing line never ends the loop.
package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"t9pad/internal/errors"
	"t9pad/internal/session"
)

// Options tune the shell's user-facing text.
type Options struct {
	Prompt   string
	QuitWord string // ends the loop, matched case-insensitively
	NoBanner bool
}

// Shell is one interactive loop over a session.
type Shell struct {
	sess *session.Session
	opts Options
}

// New returns a Shell bound to sess.
func New(sess *session.Session, opts Options) *Shell {
	if opts.QuitWord == "" {
		opts.QuitWord = "quit"
	}
	return &Shell{sess: sess, opts: opts}
}

// Run reads lines until the quit word, end of input, or ctx is
// cancelled.  Decode failures are printed and do not stop the loop;
// only I/O errors are returned.
func (sh *Shell) Run(ctx context.Context) error {
	src, err := openSource(sh.sess.Stdin, sh.sess.Stdout, sh.opts.Prompt)
	if err != nil {
		return err
	}
	defer src.Close()

	lines := startReader(src)
	defer lines.stop()

	out := src.Output()
	if !sh.opts.NoBanner {
		sh.printBanner(out)
	}

	for {
		line, err := lines.next(ctx)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			fmt.Fprintln(out)
			sh.farewell(out)
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		if line == "" {
			continue
		}
		handled, quit := sh.command(out, strings.TrimSpace(line))
		if quit {
			sh.farewell(out)
			return nil
		}
		if handled {
			continue
		}

		text, err := sh.sess.Decode(line)
		if err != nil {
			printFailure(out, line, err)
			continue
		}
		fmt.Fprintf(out, "Output: '%s'\n\n", text)
	}
}

// command handles the shell's own keywords and reports whether word was
// one of them.
func (sh *Shell) command(out io.Writer, word string) (handled, quit bool) {
	switch {
	case strings.EqualFold(word, sh.opts.QuitWord):
		return true, true
	case strings.EqualFold(word, "help"):
		sh.printInstructions(out)
		return true, false
	case strings.EqualFold(word, "stats"):
		fmt.Fprintf(out, "%s\n\n", sh.sess.Metrics.JSON())
		return true, false
	}
	return false, false
}

// ── text ─────────────────────────────────────────────────────────────

func (sh *Shell) printBanner(out io.Writer) {
	fmt.Fprintln(out, "Old Phone Keypad")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)
	sh.printInstructions(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  33#              → E")
	fmt.Fprintln(out, "  227*#            → B")
	fmt.Fprintln(out, "  4433555 555666#  → HELLO")
	fmt.Fprintln(out, "  222 2 22#        → CAB")
	fmt.Fprintln(out)
}

func (sh *Shell) printInstructions(out io.Writer) {
	fmt.Fprintln(out, "Instructions:")
	fmt.Fprintln(out, "- Keys 2-9: press repeatedly to cycle through letters")
	fmt.Fprintln(out, "- Space: separator (type two letters from the same key)")
	fmt.Fprintln(out, "- *: backspace (cancels the current key, else deletes a letter)")
	fmt.Fprintln(out, "- 0: adds a space to the output")
	fmt.Fprintln(out, "- #: end of input")
	fmt.Fprintf(out, "Layout: %s\n", sh.sess.KeyMap())
	fmt.Fprintf(out, "Commands: help, stats, %s\n", sh.opts.QuitWord)
	fmt.Fprintln(out)
}

// printFailure reports a failed line.  Decode errors that carry a
// position get the line echoed with a caret under the offending key.
func printFailure(out io.Writer, line string, err error) {
	if !errors.IsDecodeError(err) {
		fmt.Fprintf(out, "Unexpected error: %v\n\n", err)
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
	if pos := errors.Position(err); pos >= 0 {
		fmt.Fprintf(out, "  %s\n  %s^\n", line, strings.Repeat(" ", pos))
	}
	fmt.Fprintln(out)
}

func (sh *Shell) farewell(out io.Writer) {
	fmt.Fprintln(out, "Thanks for using the Old Phone Keypad!")
}
