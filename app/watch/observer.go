package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Observer watches the page snapshot for rewrites and forwards each
// change to the Scheduler. It watches the parent directory rather than
// the file itself: capture tools typically replace the file atomically
// (write to temp, rename over), which drops a watch placed on the inode.
type Observer struct {
	path      string
	scheduler *Scheduler
	watcher   *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

func NewObserver(path string, scheduler *Scheduler) (*Observer, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Observer{
		path:      abs,
		scheduler: scheduler,
		watcher:   watcher,
		done:      make(chan struct{}),
	}, nil
}

// Start begins forwarding change events.
func (o *Observer) Start() {
	o.wg.Add(1)
	go o.loop()
	slog.Debug("Observer installed", "path", o.path)
}

// Stop tears down the watch and waits for the event loop to exit.
func (o *Observer) Stop() {
	o.stopOnce.Do(func() {
		close(o.done)
		o.watcher.Close()
	})
	o.wg.Wait()
}

func (o *Observer) loop() {
	defer o.wg.Done()

	for {
		select {
		case <-o.done:
			return
		case event, ok := <-o.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != o.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			slog.Debug("Snapshot changed", "op", event.Op.String())
			o.scheduler.Notify()
		case err, ok := <-o.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}
