// Package watch reports on-disk changes to the artifacts loaded at startup.
package watch

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher observes the model and vocabulary files. The in-memory copies stay
// immutable for the process lifetime, so a change on disk only produces a
// warning that a restart is required to pick it up.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	logger  *zap.Logger
	done    chan struct{}
}

// New starts watching the given files. Paths that do not exist are skipped.
func New(logger *zap.Logger, paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		files:   make(map[string]bool, len(paths)),
		logger:  logger,
		done:    make(chan struct{}),
	}

	watched := 0
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		// Watch the directory: editors and atomic writers replace the file,
		// which drops a watch placed on the file itself.
		if err := fw.Add(filepath.Dir(abs)); err != nil {
			logger.Warn("failed to watch artifact", zap.String("path", abs), zap.Error(err))
			continue
		}
		w.files[abs] = true
		watched++
	}
	if watched == 0 {
		fw.Close()
		return nil, errors.New("no artifacts to watch")
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.logger.Warn("artifact changed on disk; restart to apply",
					zap.String("path", abs),
					zap.String("op", event.Op.String()))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("artifact watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
