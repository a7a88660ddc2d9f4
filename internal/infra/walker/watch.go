package walker

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultWatchDebounce = 200 * time.Millisecond

// Watch re-runs visit whenever the walker's root changes, debounced so a
// burst of filesystem events triggers a single run. visit is called once up
// front and then once per settled change, with a fresh observer expected from
// the caller on every invocation. Watch blocks until ctx is cancelled.
func (w *Walker) Watch(ctx context.Context, debounce time.Duration, visit func(context.Context) error) error {
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}

	if err := visit(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = watcher.Close()
	}()
	if err := watcher.Add(w.root); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("root changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-timerC:
			timer = nil
			timerC = nil
			if err := visit(ctx); err != nil {
				return err
			}
		}
	}
}
