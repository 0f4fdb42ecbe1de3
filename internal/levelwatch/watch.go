// Package levelwatch turns level file writes into reload notifications.
package levelwatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changed level files. It watches parent directories so
// that editors which replace files by rename are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]struct{} // watched single files
	dirs     map[string]struct{} // watched directories (any level file inside)
	debounce time.Duration
}

// New watches each path. A file path reports only that file; a directory
// reports every .yaml/.yml file in it.
func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		debounce: DefaultDebounce,
	}
	added := make(map[string]struct{})

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}

		dir := filepath.Dir(abs)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dir = abs
			w.dirs[abs] = struct{}{}
		} else {
			w.files[abs] = struct{}{}
		}

		if _, ok := added[dir]; ok {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		added[dir] = struct{}{}
	}
	return w, nil
}

// SetDebounce changes the quiet period. Must be called before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Close releases the underlying watcher. Run closes it on return.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers changed paths to onChange until ctx is cancelled.
// Bursts of events on one file are coalesced into a single call made once
// the file has been quiet for the debounce period. onChange runs on the
// Run goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.fs.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Warn("level watch error", "error", err)

		case <-timer.C:
			for p := range pending {
				if _, err := os.Stat(p); err != nil {
					// renamed away; the replacement arrives as a Create
					continue
				}
				slog.Debug("level file changed", "path", p)
				onChange(p)
			}
			clear(pending)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	if _, ok := w.dirs[filepath.Dir(path)]; ok {
		return isLevelFile(path)
	}
	return false
}

func isLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
