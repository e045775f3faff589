// Package config defines the runtime configuration for t9pad and loads
// alternate key layouts from disk.
package config

import (
	"strings"

	"t9pad/internal/errors"
)

// Config holds every tuneable for a single t9pad run.
type Config struct {
	// ── Input ────────────────────────────────────────────────────────
	Sequences []string // positional arguments, decoded in batch mode
	InputFile string   // -f: one sequence per line ("-" for stdin)

	// ── Layout ───────────────────────────────────────────────────────
	LayoutPath  string // -l: TOML / YAML / JSON key layout
	WatchLayout bool   // reload LayoutPath when it changes
	// WatchFromEnv marks WatchLayout as set by T9PAD_WATCH rather than
	// --watch.  Such a watch is dropped outside the shell.
	WatchFromEnv bool

	// ── Shell ────────────────────────────────────────────────────────
	Prompt   string
	QuitWord string
	NoBanner bool

	// ── Output ───────────────────────────────────────────────────────
	Quote   bool // wrap batch results in single quotes
	Stats   bool // print a metrics snapshot on exit
	Verbose int
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Prompt:   DefaultPrompt,
		QuitWord: DefaultQuitWord,
	}
}

// Interactive reports whether the run should start the shell rather
// than decode a fixed batch of sequences.
func (c *Config) Interactive() bool {
	return len(c.Sequences) == 0 && c.InputFile == ""
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
//
// A watch requested only through the environment is switched off for
// batch runs instead of failing them.
func (c *Config) Validate() error {
	if c.WatchFromEnv && !c.Interactive() {
		c.WatchLayout = false
	}

	if len(c.Sequences) > 0 && c.InputFile != "" {
		return &errors.ConfigError{
			Field:   "file",
			Value:   c.InputFile,
			Message: "sequences on the command line and --file are mutually exclusive",
		}
	}

	if c.WatchLayout {
		if c.LayoutPath == "" {
			return &errors.ConfigError{
				Field:   "watch",
				Message: "requires --layout",
			}
		}
		if !c.Interactive() {
			return &errors.ConfigError{
				Field:   "watch",
				Message: "only applies to the interactive shell",
				Hint:    "drop --watch when decoding arguments or a file",
			}
		}
	}

	if c.LayoutPath != "" {
		if _, ok := formatOf(c.LayoutPath); !ok && extOf(c.LayoutPath) != "" {
			return &errors.ConfigError{
				Field:   "layout",
				Value:   c.LayoutPath,
				Message: "unsupported layout format",
				Hint:    "use a .toml, .yaml or .json file",
			}
		}
	}

	if c.Interactive() && strings.TrimSpace(c.QuitWord) == "" {
		return &errors.ConfigError{
			Field:   "quit-word",
			Message: "must not be blank",
		}
	}

	if c.Verbose < 0 {
		return &errors.ConfigError{Field: "verbose", Value: c.Verbose, Message: "must not be negative"}
	}

	return nil
}
