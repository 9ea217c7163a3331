package store

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	appLog "workdesk/internal/log"
)

// Watch calls onChange whenever the file at path is written, created or
// renamed into place. It watches the parent directory so editors that
// replace the file atomically are noticed. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	appLog.Info("watching store file", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				appLog.Debug("store file changed", "path", abs, "op", ev.Op.String())
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			appLog.Error("store watch error", err, "path", abs)
		}
	}
}
