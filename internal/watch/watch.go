// Package watch delivers debounced change notifications for a fixed set of
// files. Bursts of filesystem events against one file collapse into a single
// notification after a quiet period.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNoPaths indicates New was called with nothing to watch.
var ErrNoPaths = errors.New("no paths to watch")

// Event is one debounced change to a watched file.
type Event struct {
	// Path is the watched file, as given to New.
	Path string
	// Time is when the quiet period ended.
	Time time.Time
}

// Watcher watches a fixed set of files.
//
// The parent directories are registered with fsnotify rather than the files
// themselves, so editors that replace files by rename keep notifying.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	tracked map[string]string // absolute path -> path as given
	timers  map[string]*time.Timer
	changes chan Event
	errs    chan error

	debounce time.Duration
	closed   bool
	closeCh  chan struct{}
	wg       sync.WaitGroup
}

// New creates a watcher for the given files with the given quiet period.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		tracked:  make(map[string]string, len(paths)),
		timers:   make(map[string]*time.Timer),
		changes:  make(chan Event, 64),
		errs:     make(chan error, 8),
		debounce: debounce,
		closeCh:  make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.tracked[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Changes returns the debounced change channel. It is closed by Close.
func (w *Watcher) Changes() <-chan Event {
	return w.changes
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()

	close(w.changes)
	close(w.errs)
	return err
}

// processLoop converts raw fsnotify traffic into per-file debounce timers.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent restarts the debounce timer for tracked files.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	abs, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	given, ok := w.tracked[abs]
	if !ok || w.closed {
		return
	}

	if t, ok := w.timers[abs]; ok {
		t.Stop()
	}
	w.timers[abs] = time.AfterFunc(w.debounce, func() {
		w.fire(abs, given)
	})
}

// fire delivers one debounced event unless the watcher closed in the
// meantime.
func (w *Watcher) fire(abs, given string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	delete(w.timers, abs)

	select {
	case w.changes <- Event{Path: given, Time: time.Now()}:
	default:
		// Channel full; the pending rescan already covers this change.
	}
}

// sendError forwards a watch error without blocking.
func (w *Watcher) sendError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.errs <- err:
	default:
	}
}
