package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the write bursts editors produce on save.
const reloadDebounce = 100 * time.Millisecond

// Watcher reports YAML prefab files that were written, created or renamed
// in the watched directories. Paths arrive on Changed, at most once per file
// per reloadDebounce. Watch errors are dropped when nobody drains Errors.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changed chan string
	Errors  chan error
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs. The caller must Close it.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fs,
		Changed: make(chan string, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher and closes Changed and Errors. Safe to call more
// than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
		close(w.Changed)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	lastSent := make(map[string]time.Time)
	for {
		select {
		case <-w.stop:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isReloadable(ev) {
				continue
			}
			now := time.Now()
			if at, seen := lastSent[ev.Name]; seen && now.Sub(at) < reloadDebounce {
				continue
			}
			lastSent[ev.Name] = now
			select {
			case w.Changed <- ev.Name:
			case <-w.stop:
				return
			}
		}
	}
}

func isReloadable(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// IsPrefab reports whether path names the given prefab file.
func IsPrefab(path, name string) bool {
	return filepath.Base(path) == filepath.Base(cleanPrefabPath(name))
}
