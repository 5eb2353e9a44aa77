package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports modifications of one configuration file. Signals are
// coalesced: while one is pending, further file events fold into it. The
// consumer is expected to be a tick loop that polls Changes between ticks.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	changes chan string
	done    chan struct{}
}

// NewWatcher starts watching the given file. The containing directory is
// watched rather than the file itself so editors that replace the file
// (write-to-temp-then-rename) are still observed.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		path:    abs,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes returns the channel carrying change signals. Each signal is the
// watched path.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops watching. The changes channel is not closed; a pending
// signal remains readable.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.changes <- w.path:
			default: // coalesce into the pending signal
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
