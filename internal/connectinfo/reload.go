package connectinfo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/logging"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 100 * time.Millisecond

// Reloader keeps a catalog in sync with a templates file. A reload that
// fails to parse or validate keeps the previous catalog.
type Reloader struct {
	path     string
	debounce time.Duration
	current  atomic.Pointer[Catalog]

	mu      sync.Mutex
	started bool
	reloads chan struct{}
}

// NewReloader loads path once and returns a reloader serving it
func NewReloader(path string) (*Reloader, error) {
	if path == "" {
		return nil, errors.New("templates file path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve templates file: %w", err)
	}

	c, err := loadValid(abs)
	if err != nil {
		return nil, err
	}

	r := &Reloader{path: abs, debounce: DefaultDebounce, reloads: make(chan struct{}, 1)}
	r.current.Store(c)
	return r, nil
}

// Current returns the latest good catalog
func (r *Reloader) Current() *Catalog {
	return r.current.Load()
}

// Reloaded receives a value after each successful reload
func (r *Reloader) Reloaded() <-chan struct{} {
	return r.reloads
}

// Reload re-reads the file now
func (r *Reloader) Reload() error {
	c, err := loadValid(r.path)
	if err != nil {
		logging.Warn("Keeping previous connect templates",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return err
	}
	r.current.Store(c)
	logging.Info("Connect templates reloaded",
		zap.String("path", r.path),
		zap.Strings("languages", c.Languages()),
	)
	select {
	case r.reloads <- struct{}{}:
	default:
	}
	return nil
}

// Watch reloads on every change to the file until ctx is done. The parent
// directory is watched so editors that save by rename are picked up.
func (r *Reloader) Watch(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return errors.New("reloader already watching")
	}
	r.started = true
	r.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	if err := fsw.Add(filepath.Dir(r.path)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("add watch: %w", err)
	}

	go r.run(ctx, fsw)
	return nil
}

func (r *Reloader) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != r.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			_ = r.Reload()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("Templates watcher error", zap.Error(err))
		}
	}
}

func loadValid(path string) (*Catalog, error) {
	c, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid templates file %s: %w", path, err)
	}
	return c, nil
}
