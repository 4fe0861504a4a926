package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/preferenceroom/compiler/gen"
)

// Watch generates the manifest at path, then regenerates it whenever the
// manifest changes, until ctx is done. Generation failures are logged and
// reported to the WithNotify function; they do not stop the watch.
// The manifest directory is watched so that editors replacing the file on
// save are handled.
func Watch(ctx context.Context, path string, cfg *gen.Config, opts ...Option) error {
	o := newOptions(opts)
	manifest, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(manifest)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	log := o.logger.With("manifest", path)
	regenerate := func() {
		res, err := Generate(ctx, manifest, cfg, opts...)
		if err != nil {
			log.Error("generation failed", "error", err)
		}
		if o.notify != nil {
			o.notify(res, err)
		}
	}
	regenerate()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != manifest {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("manifest changed", "op", ev.Op.String())
			settle = time.After(o.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		case <-settle:
			settle = nil
			regenerate()
		}
	}
}
