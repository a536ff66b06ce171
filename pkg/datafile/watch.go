package datafile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/datafile/pkg/log"
)

// Watch reloads the record whenever the file changes and passes the result to fn.
// fn receives either a decoded record or the error from reading or decoding it.
// Calls to fn never overlap.
//
// The parent directory is watched, so editors that replace the file by rename
// are handled. Watch only reads: a removed file is skipped, not re-created.
// It blocks until ctx is cancelled and then returns nil, after any running
// call to fn has finished.
func (f *File[T]) Watch(ctx context.Context, fn func(T, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	f.opts.logger.Debug("watching file", log.Path(f.path), log.Duration("debounce", f.opts.debounce))

	d := &debouncer{delay: f.opts.debounce}
	defer d.stop()

	name := filepath.Base(f.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			d.trigger(func() {
				if ctx.Err() != nil {
					return
				}
				v, err := f.read()
				if errors.Is(err, fs.ErrNotExist) {
					f.opts.logger.Debug("watched file is gone, skipping reload", log.Path(f.path))
					return
				}
				fn(v, err)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.opts.logger.Warn("file watcher error", log.Path(f.path), log.Err(err))
		}
	}
}

// debouncer runs the most recently triggered function once the delay has
// passed without another trigger. Runs are serialized, and none runs or is
// still running once stop has returned.
type debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer

	run     sync.Mutex
	stopped bool
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run.Lock()
		defer d.run.Unlock()
		if d.stopped {
			return
		}
		fn()
	})
}

// stop cancels the pending run and waits for one already in progress.
func (d *debouncer) stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.run.Lock()
	d.stopped = true
	d.run.Unlock()
}
