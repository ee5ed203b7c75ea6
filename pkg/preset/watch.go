package preset

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/go-motion/motion/pkg/errs"
)

// Watcher hot-reloads a preset directory. On every relevant filesystem
// change it reloads the whole directory and, if the load succeeds, hands
// the fresh Library to the callback; a broken edit is reported through
// the errs collaborator and the previous library stays live.
//
// The callback runs on the watcher's goroutine. Swap the library into
// your frame loop rather than mutating shared state directly.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onReload func(*Library)
	closeCh  chan struct{}
	once     sync.Once
}

// Watch starts watching dir for preset file changes. The caller loads
// the initial library (typically via [LoadDir]); onReload only fires for
// subsequent successful reloads.
func Watch(dir string, onReload func(*Library)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		dir:      dir,
		watcher:  fw,
		onReload: onReload,
		closeCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer errs.Recover("preset.watch")

	// Editors and os.WriteFile fire bursts of events per save; reload
	// once after the directory has been quiet for the debounce window,
	// so a half-written file is never parsed.
	const quiet = 100 * time.Millisecond
	debounce := time.NewTimer(quiet)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isPresetFile(event.Name) {
				continue
			}
			debounce.Reset(quiet)
		case <-debounce.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			errs.Report(&errs.Error{Op: "preset.watch", Kind: errs.KindWatch, Err: err})
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	lib, err := LoadDir(w.dir)
	if err != nil {
		errs.Report(&errs.Error{Op: "preset.reload", Kind: errs.KindPreset, Err: err})
		return
	}
	if w.onReload != nil {
		w.onReload(lib)
	}
}
