package disposable

import (
	"time"

	"github.com/etkecc/go-fswatcher"
	"github.com/fsnotify/fsnotify"
)

const watchDelay = 500 * time.Millisecond

// Watcher reloads the checker when the blocklist file changes
type Watcher struct {
	fsw *fswatcher.Watcher
}

// Watch starts watching the blocklist file
func (c *Checker) Watch() (*Watcher, error) {
	fsw, err := fswatcher.New([]string{c.path}, watchDelay)
	if err != nil {
		return nil, err
	}

	go fsw.Start(func(e fsnotify.Event) {
		c.log.Info().Str("path", e.Name).Str("op", e.Op.String()).Msg("disposable domains file changed")
		if err := c.Reload(); err != nil {
			c.log.Error().Err(err).Msg("cannot reload disposable domains")
		}
	})

	return &Watcher{fsw: fsw}, nil
}

// Stop watching
func (w *Watcher) Stop() {
	if w == nil || w.fsw == nil {
		return
	}
	w.fsw.Stop() //nolint:errcheck // nothing to do on shutdown
}
