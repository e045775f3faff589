package core

import (
	"fmt"
	"io"

	"t9pad/config"
	"t9pad/internal/metrics"
	"t9pad/internal/session"
	"t9pad/internal/shell"
	"t9pad/keypad"
	"t9pad/util"
)

// Streams are the process I/O endpoints a mode runs against.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Build constructs the appropriate Mode from the given configuration.
// The layout, if any, is loaded here so a bad file fails before any
// input is read.
func Build(cfg *config.Config, std Streams, logger *util.Logger, m *metrics.Collector) (Mode, error) {
	var keys *keypad.KeyMap
	if cfg.LayoutPath != "" {
		km, err := config.LoadKeyMap(cfg.LayoutPath)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		logger.Verbose("loaded layout %s: %s", cfg.LayoutPath, km)
		keys = km
	}

	sess := session.New(keys, std.Stdin, std.Stdout, std.Stderr, logger, m)

	switch {
	case cfg.Interactive():
		return buildShell(cfg, sess), nil
	case cfg.InputFile != "":
		return &BatchMode{Session: sess, File: cfg.InputFile, Quote: cfg.Quote}, nil
	default:
		return &BatchMode{Session: sess, Sequences: cfg.Sequences, Quote: cfg.Quote}, nil
	}
}

// ── mode builders ────────────────────────────────────────────────────

func buildShell(cfg *config.Config, sess *session.Session) Mode {
	mode := &ShellMode{
		Shell: shell.New(sess, shell.Options{
			Prompt:   cfg.Prompt,
			QuitWord: cfg.QuitWord,
			NoBanner: cfg.NoBanner,
		}),
		Session: sess,
	}
	if cfg.WatchLayout {
		mode.LayoutPath = cfg.LayoutPath
	}
	return mode
}
