package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors produce when saving.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes and queues the result onto the tick thread.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	sink     input.Sink
	onReload func(*Config)

	closeOnce *sync.Once
	done      chan struct{}
	wg        *sync.WaitGroup
}

// Watch starts watching path. Each successful reload is pushed into sink as an input.Task that calls
// onReload with the new config, so onReload runs on whichever goroutine drains the sink.
// Files that fail to load are logged and ignored; the previous config stays active.
//
// Parameters:
//   - path: the config file
//   - sink: the queue the reload task is pushed into
//   - onReload: called with each successfully reloaded config
//
// Returns:
//   - *Watcher: the running watcher, stop it with Close
//   - error: if the watch cannot be established
func Watch(path string, sink input.Sink, onReload func(*Config)) (*Watcher, error) {
	if _, err := FormatFor(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	// Watch the directory so replace-on-save editors keep being observed.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:      abs,
		debounce:  DefaultDebounce,
		watcher:   fsw,
		sink:      sink,
		onReload:  onReload,
		closeOnce: &sync.Once{},
		done:      make(chan struct{}),
		wg:        &sync.WaitGroup{},
	}
	w.wg.Add(1)
	go w.loop()
	log.Printf("[Config] watching %s", abs)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Config] watch error: %v", err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("[Config] reload failed, keeping previous config: %v", err)
		return
	}
	log.Printf("[Config] reloaded %s", w.path)
	if w.onReload == nil || w.sink == nil {
		return
	}
	w.sink.Push(input.Task{Run: func() { w.onReload(cfg) }})
}
