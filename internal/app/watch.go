package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tacogips/sgmtr/internal/debug"
)

// watchDebounce batches the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// RenderFunc receives every preview rendered by WatchPreview.
type RenderFunc func(*PreviewResult, error)

// WatchPreview renders a preview, then renders again whenever the DSL file or
// the workspace ignore file changes. It blocks until ctx is done and returns
// nil on cancellation. Render errors are handed to onRender rather than
// stopping the watch.
func WatchPreview(ctx context.Context, ws *Workspace, opts PreviewOptions, onRender RenderFunc) error {
	debug.DebugSection("[app] WatchPreview start")

	dslFile := ws.Abs(opts.File)
	ignoreFile := ws.Abs(ws.Config.Ignore.File)
	watched := map[string]bool{dslFile: true, ignoreFile: true}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewStorageError("failed to start file watcher", err)
	}
	defer watcher.Close()

	// Directories are watched so atomic saves (write + rename) are seen.
	for _, dir := range uniqueDirs(dslFile, ignoreFile) {
		if err := watcher.Add(dir); err != nil {
			return NewStorageError(fmt.Sprintf("failed to watch %s", dir), err)
		}
		debug.Debug("[watch] Watching directory: %s", dir)
	}

	render := func() {
		onRender(Preview(ctx, ws, opts))
	}
	render()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			debug.Debug("[watch] Context done, stopping")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] || !relevant(event.Op) {
				continue
			}
			debug.Debug("[watch] %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.Debug("[watch] Watcher error: %v", err)

		case <-pending:
			pending = nil
			render()
		}
	}
}

func relevant(op fsnotify.Op) bool {
	switch {
	case op&fsnotify.Create != 0, op&fsnotify.Write != 0,
		op&fsnotify.Remove != 0, op&fsnotify.Rename != 0:
		return true
	default:
		return false
	}
}

func uniqueDirs(files ...string) []string {
	var dirs []string
	seen := map[string]bool{}
	for _, f := range files {
		d := filepath.Dir(f)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}
