// Package reload drives config reloads from two independent triggers —
// SIGHUP and an fsnotify watch on the hotkey config file's directory —
// both converging on a single Reloader.Reload call, per spec.md §5's
// requirement that reload is a single, serialized operation regardless of
// what triggered it.
package reload

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

// Reloader is implemented by the orchestrator: Reload re-reads and
// recompiles the hotkey config and atomically publishes the result.
type Reloader interface {
	Reload() error
}

// Watch blocks until ctx is cancelled, calling target.Reload() whenever
// SIGHUP arrives or the watched file changes. Errors from individual
// reload attempts are logged, not returned, since a bad edit should not
// crash a running daemon (spec.md §5).
func Watch(ctx context.Context, path string, target Reloader, logger *log.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		logger.Printf("reload: watch %s: %v (file-change reload disabled, SIGHUP still works)", dir, err)
	}

	reload := func(reason string) {
		logger.Printf("reload: %s", reason)
		if err := target.Reload(); err != nil {
			logger.Printf("reload: %v", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sigCh:
			reload("SIGHUP received")
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			reload("config file changed: " + ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("reload: watcher error: %v", err)
		}
	}
}
