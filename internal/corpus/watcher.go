package corpus

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a corpus file into a Holder whenever it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	holder  *Holder
	logger  *zap.Logger

	// reloaded receives the new corpus after each successful reload. Optional.
	reloaded chan<- *Corpus
}

// NewWatcher creates a watcher for path. The parent directory is watched so
// editors that replace the file on save are still picked up.
func NewWatcher(path string, holder *Holder, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: w,
		path:    abs,
		holder:  holder,
		logger:  logger,
	}, nil
}

// notify registers a channel that receives every successfully reloaded corpus.
func (w *Watcher) notify(ch chan<- *Corpus) {
	w.reloaded = ch
}

// Run blocks until ctx is cancelled or the underlying watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.logger.Info("Watching corpus file", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Corpus watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	c, err := LoadFile(w.path)
	if err != nil {
		// keep serving the previous corpus
		w.logger.Warn("Corpus reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.holder.Store(c)
	w.logger.Info("Corpus reloaded",
		zap.String("path", w.path),
		zap.Int("passages", c.Len()),
		zap.Int("sentences", c.SentenceCount()))

	if w.reloaded != nil {
		select {
		case w.reloaded <- c:
		case <-ctx.Done():
		}
	}
}

// Stop releases the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
