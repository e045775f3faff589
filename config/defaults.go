package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPrompt is shown before each line in the interactive shell.
	DefaultPrompt = "Enter input (or 'quit' to exit): "

	// DefaultQuitWord ends the interactive shell (case-insensitive).
	DefaultQuitWord = "quit"

	// DefaultReloadDebounce coalesces bursts of file events from editors
	// that write a layout in several steps.
	DefaultReloadDebounce = 100 * time.Millisecond

	// StdinPath names standard input for --file.
	StdinPath = "-"
)
