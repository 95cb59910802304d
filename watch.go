package blog

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const watchDebounce = 150 * time.Millisecond

// Watcher calls a reload function after the content directory changes.
// Bursts of events within watchDebounce collapse into one reload.
type Watcher struct {
	dir    string
	reload func(context.Context) error
	w      *fsnotify.Watcher
}

// NewWatcher watches dir and every directory below it.
func NewWatcher(dir string, reload func(context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{dir: dir, reload: reload, w: fw}
	if err := w.addTree(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers root and its subdirectories. fsnotify is not recursive.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.w.Add(p)
		}
		return nil
	})
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New post folders need their own watch.
				if err := w.addTree(event.Name); err != nil {
					log.Debug().Err(err).Str("path", event.Name).Msg("Not watching")
				}
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Content changed")
			timer.Reset(watchDebounce)
		case <-timer.C:
			if err := w.reload(ctx); err != nil {
				log.Error().Err(err).Str("dir", w.dir).Msg("Reload failed")
				continue
			}
			log.Info().Str("dir", w.dir).Msg("Reloaded content")
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Error watching content")
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
