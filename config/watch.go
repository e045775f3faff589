package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"t9pad/keypad"
)

// LayoutWatcher reloads a layout file whenever it changes on disk and
// hands each valid KeyMap to a callback.  Invalid edits are reported
// through the error callback and otherwise ignored, so the last good
// layout stays in effect.
type LayoutWatcher struct {
	path     string
	debounce time.Duration
	onChange func(*keypad.KeyMap)
	onError  func(error)

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
}

// WatchLayout starts watching path.  The watcher stops when ctx is
// cancelled or Close is called.  onError may be nil.
func WatchLayout(ctx context.Context, path string, debounce time.Duration,
	onChange func(*keypad.KeyMap), onError func(error)) (*LayoutWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors often replace the file rather than
	// write it in place, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}
	if onError == nil {
		onError = func(error) {}
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &LayoutWatcher{
		path:     path,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		watcher:  watcher,
		cancel:   cancel,
	}
	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *LayoutWatcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *LayoutWatcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(fmt.Errorf("watch layout: %w", err))
		}
	}
}

func (w *LayoutWatcher) reload() {
	km, err := LoadKeyMap(w.path)
	if err != nil {
		w.onError(fmt.Errorf("reload layout: %w", err))
		return
	}
	w.onChange(km)
}
