// Package watch triggers re-evaluation when catalog files in a directory change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/autopeer-io/edfsizer/pkg/log"
)

// DefaultDebounce coalesces the bursts of events editors and copy tools emit.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls onChange once per burst of changes to the watched files.
type Watcher struct {
	fw       *fsnotify.Watcher
	dir      string
	files    sets.Set[string]
	debounce time.Duration
	onChange func(ctx context.Context)
}

// New watches dir. Only events on the named files (base names) count.
// The directory rather than each file is watched so files replaced by
// rename keep being tracked.
func New(dir string, files []string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fw:       fw,
		dir:      dir,
		files:    sets.New(files...).Delete(""),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run blocks until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fw.Close()

	log.Info("Watching catalog directory", "dir", w.dir, "files", sets.List(w.files))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			log.Debug("Catalog file changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "Catalog watcher error", "dir", w.dir)

		case <-fire:
			fire = nil
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	return w.files.Has(filepath.Base(ev.Name))
}
