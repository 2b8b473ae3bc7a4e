package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opmodel/osinfo/internal/core"
	"github.com/opmodel/osinfo/internal/output"
)

// defaultDebounce coalesces bursts of filesystem events, such as a package
// update rewriting many files, into one reload.
const defaultDebounce = 250 * time.Millisecond

// Watcher keeps a database in sync with metadata on disk. Every reload
// builds a fresh database and swaps it in atomically, so readers holding
// the previous database are never disturbed.
type Watcher struct {
	paths    []string
	debounce time.Duration
	overlay  bool

	fsw     *fsnotify.Watcher
	current atomic.Pointer[core.DB]
	updates chan *core.DB
	errs    chan error

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithRoots treats paths as overlaid data directories, loaded the way
// ProcessRoots does. Missing roots are skipped.
func WithRoots() WatcherOption {
	return func(w *Watcher) {
		w.overlay = true
	}
}

// NewWatcher loads paths and starts watching them for changes. The
// initial load must succeed. Later load failures are reported on Errors
// and leave the current database in place.
func NewWatcher(ctx context.Context, paths []string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		paths:    paths,
		debounce: defaultDebounce,
		updates:  make(chan *core.DB, 1),
		errs:     make(chan error, 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	db, err := w.load(ctx)
	if err != nil {
		return nil, err
	}
	w.current.Store(db)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}
	w.fsw = fsw

	for _, p := range paths {
		if w.overlay && !exists(p) {
			continue
		}
		if err := w.watchTree(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	go w.run(runCtx)

	return w, nil
}

// Current returns the most recently loaded database.
func (w *Watcher) Current() *core.DB {
	return w.current.Load()
}

// Updates delivers each successfully reloaded database. Slow receivers
// only see the latest one.
func (w *Watcher) Updates() <-chan *core.DB {
	return w.updates
}

// Errors delivers reload failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and waits for the background goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) load(ctx context.Context) (*core.DB, error) {
	l := New()
	process := l.ProcessPaths
	if w.overlay {
		process = l.ProcessRoots
	}
	if err := process(ctx, w.paths...); err != nil {
		return nil, err
	}
	return l.DB(), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// watchTree registers path and, for directories, every subdirectory.
// fsnotify watches are not recursive.
func (w *Watcher) watchTree(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return openError(path, err)
	}
	if !info.IsDir() {
		// Editors often replace files, so watch the parent directory.
		return w.fsw.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				return fmt.Errorf("watching %s: %w", p, err)
			}
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			output.Debug("metadata changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendErr(err)

		case <-timer.C:
			db, err := w.load(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				output.Warn("catalog reload failed, keeping previous data", "error", err)
				w.sendErr(err)
				continue
			}
			w.current.Store(db)
			w.sendUpdate(db)
			output.Debug("catalog reloaded", "oses", db.OSes().Len(), "devices", db.Devices().Len())
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.watchTree(ev.Name); err != nil {
				w.sendErr(err)
			}
			return true
		}
	}
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	if filepath.Ext(ev.Name) == metadataExt {
		return true
	}
	for _, p := range w.paths {
		if filepath.Clean(p) == filepath.Clean(ev.Name) {
			return true
		}
	}
	return false
}

func (w *Watcher) sendUpdate(db *core.DB) {
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- db:
	default:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case <-w.errs:
	default:
	}
	select {
	case w.errs <- err:
	default:
	}
}
