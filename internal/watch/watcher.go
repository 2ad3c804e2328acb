// Package watch triggers reassembly when the page source changes, either
// from filesystem notifications or from a periodic poll.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// DefaultDebounce coalesces bursts of editor writes into one change.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc handles a settled change. Path is the last relevant file touched.
type ChangeFunc func(ctx context.Context, path string) error

// Watcher watches a directory tree recursively.
type Watcher struct {
	root     string
	onChange ChangeFunc
	filter   func(path string) bool
	debounce time.Duration
	logger   *slog.Logger
}

// WatcherOption customizes a Watcher.
type WatcherOption func(*Watcher)

// WithFilter limits which paths count as changes.
func WithFilter(f func(path string) bool) WatcherOption {
	return func(w *Watcher) { w.filter = f }
}

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func NewWatcher(root string, onChange ChangeFunc, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		root:     root,
		onChange: onChange,
		filter:   func(string) bool { return true },
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run watches until ctx is canceled. Change handler errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addDirsRecursive(fw, w.root); err != nil {
		return err
	}

	d := newDebouncer(w.debounce)
	defer d.stop()

	w.logger.Info("Watching for changes", logfields.Path(w.root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, d)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logfields.Error(err))
		case path := <-d.fired:
			if err := w.onChange(ctx, path); err != nil {
				w.logger.Warn("Reassembly after change failed",
					logfields.Component(),
					logfields.Path(path),
					logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, d *debouncer) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fw, ev.Name)
			return
		}
	}
	if !w.filter(ev.Name) {
		return
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	d.trigger(ev.Name)
}

func (w *Watcher) addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch root: %w", err)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			w.logger.Warn("watch add failed", slog.String("dir", path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent reports hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

// debouncer delivers the last triggered path once no trigger arrived for the delay.
type debouncer struct {
	delay time.Duration
	fired chan string

	mu    sync.Mutex
	timer *time.Timer
	last  string
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, fired: make(chan string, 1)}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = path
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		p := d.last
		d.mu.Unlock()
		select {
		case d.fired <- p:
		default:
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
