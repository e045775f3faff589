// Package errors provides domain-specific error types for t9pad.
//
// Decode failures carry enough structure (position, offending rune) for
// a caller to point at the bad key press, and match the package's
// sentinels through errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrMissingTerminator = errors.New("input must end with '#'")
	ErrInvalidCharacter  = errors.New("invalid character")
	ErrInvalidLayout     = errors.New("invalid key layout")
)

// ── Structured error types ───────────────────────────────────────────

// InvalidCharacterError reports the first rune of an input sequence that
// is neither a mapped key nor one of the structural operators.
type InvalidCharacterError struct {
	Pos  int  // 0-based rune index within the input
	Char rune // offending rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%v %q at position %d", ErrInvalidCharacter, e.Char, e.Pos)
}

// Is makes errors.Is(err, ErrInvalidCharacter) succeed.
func (e *InvalidCharacterError) Is(target error) bool { return target == ErrInvalidCharacter }

// LayoutError describes a single bad entry in a key layout.
type LayoutError struct {
	Key     string // key as written in the layout ("" for layout-wide problems)
	Message string
}

func (e *LayoutError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidLayout, e.Message)
	}
	return fmt.Sprintf("%v: key %q: %s", ErrInvalidLayout, e.Key, e.Message)
}

func (e *LayoutError) Is(target error) bool { return target == ErrInvalidLayout }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Classification helpers ───────────────────────────────────────────

// IsDecodeError reports whether err is one of the decoder's input
// failures, as opposed to an I/O or configuration problem.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMissingTerminator) || errors.Is(err, ErrInvalidCharacter)
}

// Position returns the rune index carried by an InvalidCharacterError
// anywhere in err's chain, or -1.
func Position(err error) int {
	var ice *InvalidCharacterError
	if errors.As(err, &ice) {
		return ice.Pos
	}
	return -1
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use t9pad/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
