package followthemoney

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches the event bursts editors emit on save into a single
// rebuild.
const watchDebounce = 250 * time.Millisecond

// Watcher rebuilds a model whenever the definition files in a directory
// change. Close releases the underlying filesystem watcher.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
	once sync.Once
}

// WatchPath watches dir for changes to YAML definition files and calls fn
// with a freshly built model after each change. When a rebuild fails, fn
// receives the load error and a nil model; the caller's previous model stays
// valid. fn is invoked once immediately with the initial load result.
func WatchPath(dir string, fn func(*Model, error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	fn(LoadModelPath(dir))
	go w.loop(dir, fn)
	return w, nil
}

func (w *Watcher) loop(dir string, fn func(*Model, error)) {
	var (
		timer   *time.Timer
		rebuild <-chan time.Time
	)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ext := filepath.Ext(event.Name); ext != ".yaml" && ext != ".yml" {
				continue
			}
			if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			rebuild = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fn(nil, err)
		case <-rebuild:
			rebuild = nil
			fn(LoadModelPath(dir))
		}
	}
}

// Close stops the watcher. It is safe to call multiple times.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
