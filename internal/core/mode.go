// Package core is the orchestration layer.  It composes a session with
// an input source into a complete operational mode and provides a
// builder that selects the right mode from a Config.
//
// Architecture layers (bottom → top):
//
//	keypad  →  session  →  shell / batch  →  core  →  cmd (CLI)
package core

import "context"

// Mode represents a complete operational mode of t9pad (interactive
// shell or batch decode).  Each mode owns its full lifecycle from
// reading input to printing results.
type Mode interface {
	Run(ctx context.Context) error
}
