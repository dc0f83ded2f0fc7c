package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/logger"
)

// Watcher collects changes under the library root in the background. The
// reloads themselves happen in Poll, on the thread that renders.
type Watcher struct {
	lib     *Library
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewWatcher starts watching every directory below the library root.
func NewWatcher(lib *Library) (*Watcher, error) {
	if lib.Root() == "" {
		return nil, errors.New("asset library has no root directory")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		lib:     lib,
		watcher: fw,
		done:    make(chan struct{}),
		pending: make(map[string]struct{}),
	}
	if err := w.addTree(lib.Root()); err != nil {
		fw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()

	logger.Info("watching assets", zap.String("root", lib.Root()))
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("asset watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if ev.Has(fsnotify.Create) {
		// New directories are not watched automatically.
		if err := w.addTree(ev.Name); err != nil {
			logger.Debug("not watching created path", zap.String("path", ev.Name), zap.Error(err))
		}
	}
	rel, err := filepath.Rel(w.lib.Root(), ev.Name)
	if err != nil {
		return
	}
	w.Mark(filepath.ToSlash(rel))
}

// Mark queues name for the next Poll.
func (w *Watcher) Mark(name string) {
	w.mu.Lock()
	w.pending[normalize(name)] = struct{}{}
	w.mu.Unlock()
}

// Poll reloads the resources of every file changed since the last call and
// returns how many resources were updated.
func (w *Watcher) Poll() int {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return 0
	}
	names := make([]string, 0, len(w.pending))
	for name := range w.pending {
		names = append(names, name)
	}
	clear(w.pending)
	w.mu.Unlock()

	slices.Sort(names)
	n := 0
	for _, name := range names {
		n += w.lib.ReloadPath(name)
	}
	return n
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
