// Package watch re-runs a function when files under a set of directories change.
package watch

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher groups bursts of file system events into a single call.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	watched  map[string]struct{}
}

// New watches every directory of paths. Directories are not watched recursively.
func New(paths []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "unable to create watcher")
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		watched:  make(map[string]struct{}),
	}
	err = w.Add(paths...)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Add watches the directories of paths that are not watched yet.
// It is not safe for concurrent use; call it before Run or from fn.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		if _, ok := w.watched[p]; ok {
			continue
		}
		err := w.fsw.Add(p)
		if err != nil {
			return errors.Wrapf(err, "unable to watch %s", p)
		}
		w.watched[p] = struct{}{}
		w.logger.Debug("watching directory", zap.String("path", p))
	}

	return nil
}

// Watched returns the number of watched directories.
func (w *Watcher) Watched() int {
	return len(w.watched)
}

// Run calls fn once per burst of events until ctx is done. An error returned by fn is logged
// and does not stop the watcher.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug("file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			trigger = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-trigger:
			trigger = nil
			err := fn(ctx)
			if err != nil {
				w.logger.Error("run failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) Close() error {
	err := w.fsw.Close()
	if err != nil {
		return errors.Wrap(err, "unable to close watcher")
	}

	return nil
}
