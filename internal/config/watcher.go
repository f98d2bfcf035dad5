package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

// ReloadFunc receives each configuration that loaded and validated after a change.
type ReloadFunc func(*Config)

// Watcher reloads the configuration file when it changes on disk.
type Watcher struct {
	path     string
	onReload ReloadFunc
	watcher  *fsnotify.Watcher
	debounce time.Duration

	reloadCh chan struct{}
	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for path. Rapid successive writes are
// collapsed into a single reload after debounce.
func NewWatcher(path string, debounce time.Duration, onReload ReloadFunc) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to resolve config path").
			WithContext("path", path).
			Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	return &Watcher{
		path:     absPath,
		onReload: onReload,
		watcher:  fw,
		debounce: debounce,
		reloadCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start watches the directory holding the file, which survives editors that
// replace the file on save.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to watch config directory").
			WithContext("dir", dir).
			Build()
	}
	slog.Info("Starting configuration watcher", slog.String("config_path", w.path))

	w.wg.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends both loops and closes the underlying watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Config file change detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Has(fsnotify.Remove):
				slog.Warn("Config file removed", slog.String("file", event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reloadCh <- struct{}{}:
	default:
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-w.reloadCh:
			timer.Reset(w.debounce)
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Error("Failed to reload configuration", slog.String("config_path", w.path), slog.String("error", err.Error()))
		return
	}
	slog.Info("Configuration reloaded", slog.String("config_path", w.path))
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
