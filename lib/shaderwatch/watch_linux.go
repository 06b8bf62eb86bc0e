package shaderwatch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/jhenstridge/go-inotify"

	"github.com/learngl/hellotriangle/lib/log"
)

type Watcher struct {
	changes chan struct{}
	files   []string
	watcher *inotify.Watcher
	log     *slog.Logger
}

// Watch starts watching the given files. The directories holding them are
// watched rather than the files themselves, so that editors which save by
// renaming a new file into place are noticed too.
func Watch(files ...string) (*Watcher, error) {
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create inotify watcher: %w", err)
	}

	w := &Watcher{
		changes: make(chan struct{}, 1),
		watcher: watcher,
		log:     log.Module("shaderwatch"),
	}

	var dirs []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.files = append(w.files, abs)
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range dirs {
		_, err = watcher.Watch(dir)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("could not watch %s: %w", dir, err)
		}
		w.log.Debug("Watching shader directory", "dir", dir)
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for ev := range w.watcher.Event {
		if ev.Mask&(inotify.IN_CLOSE_WRITE|inotify.IN_MOVED_TO) == 0 {
			continue
		}
		if !slices.Contains(w.files, filepath.Clean(ev.Name)) {
			continue
		}
		w.log.Debug("Shader file changed", "path", ev.Name)
		time.Sleep(settle)
		w.notify()
	}
}

// Close stops watching. It returns the error, if any, that ended the
// reader.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	if err != nil {
		w.log.Error("inotify watcher failed", "err", err)
	}
	return err
}
