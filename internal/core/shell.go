package core

import (
	"context"

	"t9pad/config"
	"t9pad/internal/session"
	"t9pad/internal/shell"
)

// ShellMode runs the interactive loop, optionally hot-reloading the
// key layout while the user types.
type ShellMode struct {
	Shell   *shell.Shell
	Session *session.Session

	// LayoutPath, when set, is watched for changes for the lifetime of
	// the shell.
	LayoutPath string
}

// Run starts the layout watcher (if configured) and blocks in the shell.
func (m *ShellMode) Run(ctx context.Context) error {
	if m.LayoutPath != "" {
		log := m.Session.Logger
		w, err := config.WatchLayout(ctx, m.LayoutPath, config.DefaultReloadDebounce,
			m.Session.SetKeyMap,
			func(err error) {
				m.Session.Metrics.RecordError(err.Error())
				log.Warn("%v (keeping current layout)", err)
			})
		if err != nil {
			return err
		}
		defer w.Close()
		log.Verbose("watching %s for layout changes", m.LayoutPath)
	}
	return m.Shell.Run(ctx)
}
