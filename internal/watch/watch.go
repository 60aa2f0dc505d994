// Package watch re-runs a build when watched files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// editor and lock files
var ignoredSuffixes = []string{"~", ".tmp", ".swp", ".lock"}

// Watcher watches files and directories. A file is watched through its
// directory so that editors replacing it on save are noticed.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger
	// files watched explicitly, by absolute path
	files map[string]bool
	// directories in which any change counts
	dirs map[string]bool
	// watched by fsnotify
	watched []string
	ignored map[string]bool
}

// New creates a Watcher for paths. Changes to the ignore paths (e.g. the
// generated document) never trigger a build.
func New(paths []string, ignore []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %s", debounce)
	}

	w := &Watcher{
		debounce: debounce,
		logger:   logger,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		ignored:  make(map[string]bool),
	}

	for _, p := range paths {
		if p == "" {
			continue
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve watch path %s: %w", p, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("unable to watch %s: %w", p, err)
		}

		if info.IsDir() {
			w.dirs[abs] = true
			w.add(abs)
			continue
		}

		w.files[abs] = true
		w.add(filepath.Dir(abs))
	}

	if len(w.watched) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}

	for _, p := range ignore {
		abs, err := filepath.Abs(p)
		if err == nil {
			w.ignored[abs] = true
		}
	}

	return w, nil
}

func (w *Watcher) add(dir string) {
	if !slices.Contains(w.watched, dir) {
		w.watched = append(w.watched, dir)
	}
}

// Relevant reports whether a change of name should trigger a build.
func (w *Watcher) Relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}

	if w.ignored[abs] {
		return false
	}

	low := strings.ToLower(abs)
	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(low, suffix) {
			return false
		}
	}

	return w.files[abs] || w.dirs[filepath.Dir(abs)]
}

// Run calls build once per burst of relevant changes, after the debounce
// delay, until ctx is done. Builds run one at a time on the calling
// goroutine.
func (w *Watcher) Run(ctx context.Context, build func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	for _, dir := range w.watched {
		err := watcher.Add(dir)
		if err != nil {
			return fmt.Errorf("unable to watch %s: %w", dir, err)
		}
		w.logger.Debug("watching", "dir", dir)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&changeOps == 0 || !w.Relevant(ev.Name) {
				continue
			}
			w.logger.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-timer.C:
			build()
		case <-ctx.Done():
			timer.Stop()
			return nil
		}
	}
}
