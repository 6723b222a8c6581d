package config

import (
	"github.com/fsnotify/fsnotify"
	"log/slog"
	"path/filepath"
	"sync"
)

// Watcher reloads configuration when the config file changes.
type Watcher struct {
	watcher   *fsnotify.Watcher
	path      string
	overrides map[string]any
	callbacks []func(Config)
	mux       sync.RWMutex
	done      chan struct{}
	stopOnce  sync.Once
	logger    *slog.Logger
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the [Watcher].
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher watches the config file at path.
// Changes are reloaded with [Load], using the same overrides.
//
// The file's directory is watched rather than the file, so editors that replace the file are handled.
func NewWatcher(path string, overrides map[string]any, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:   fw,
		path:      filepath.Clean(path),
		overrides: overrides,
		done:      make(chan struct{}),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// OnChange registers a function to be called with the reloaded [Config] each time the file changes.
func (w *Watcher) OnChange(fn func(Config)) {
	w.mux.Lock()
	defer w.mux.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Start handles file events until [Watcher.Stop] is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// StartAsync runs [Watcher.Start] in a new goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop ends the watch.
// It's safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path, w.overrides)
	if err != nil {
		// Partial writes fail to parse, and are picked up by the next event.
		w.logger.Warn("Failed to reload config", "path", w.path, "error", err)
		return
	}
	w.logger.Debug("Reloaded config", "path", w.path)
	w.mux.RLock()
	defer w.mux.RUnlock()
	for _, fn := range w.callbacks {
		fn(cfg)
	}
}
