// Package session represents a single t9pad run, binding the active
// decoder with I/O endpoints, logging and metrics.
//
// Modes read and write through the session's streams, never through
// os.Stdin and os.Stdout directly, so tests can drive them with buffers.
package session

import (
	"io"
	"sync/atomic"
	"unicode/utf8"

	"t9pad/internal/metrics"
	"t9pad/keypad"
	"t9pad/util"
)

// Session encapsulates the runtime context for one run.
type Session struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *util.Logger
	Metrics *metrics.Collector

	decoder atomic.Pointer[keypad.Decoder]
}

// New creates a Session that decodes with keys (nil for the default
// layout).
func New(keys *keypad.KeyMap, stdin io.Reader, stdout, stderr io.Writer,
	logger *util.Logger, m *metrics.Collector) *Session {
	if logger == nil {
		logger = util.Discard()
	}
	s := &Session{
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		Metrics: m,
	}
	s.decoder.Store(keypad.NewDecoder(keys))
	return s
}

// Decode runs one sequence through the current decoder and records the
// outcome.
func (s *Session) Decode(input string) (string, error) {
	dec := s.decoder.Load()
	out, err := dec.Decode(input)
	if err != nil {
		s.Metrics.DecodeFailed(err.Error())
		s.Logger.Verbose("decode %q: %v", input, err)
		return "", err
	}
	s.Metrics.DecodeSucceeded(utf8.RuneCountInString(input), utf8.RuneCountInString(out))
	if s.Logger.Enabled(util.LogDebug) {
		s.Logger.Debug("decode %q -> %q with %s", input, out, dec.KeyMap())
	}
	return out, nil
}

// KeyMap returns the layout currently in use.
func (s *Session) KeyMap() *keypad.KeyMap {
	return s.decoder.Load().KeyMap()
}

// SetKeyMap swaps the layout used by subsequent Decode calls.  A decode
// already in progress finishes with the layout it started with.
func (s *Session) SetKeyMap(keys *keypad.KeyMap) {
	s.decoder.Store(keypad.NewDecoder(keys))
	s.Metrics.LayoutReloaded()
	s.Logger.Info("layout reloaded: %s", s.KeyMap())
}
