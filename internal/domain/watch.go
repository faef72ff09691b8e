package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"streamlens.dev/pkg/streamlens/internal/adapter"
	m "streamlens.dev/pkg/streamlens/internal/model"
)

// WatchProbes registers points added to the probe store at path into
// registry until ctx is done. The registry is append-only, so points
// removed from the store stay registered for the rest of the session.
//
// The directory is watched rather than the file because the store replaces
// the file by renaming over it.
func WatchProbes(ctx context.Context, store adapter.ProbeStore, path m.Path, registry *Registry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create probe watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(string(path))
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	// Pick up registrations made between the initial load and the watch.
	reloadProbes(store, path, registry)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			reloadProbes(store, path, registry)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("probe watcher error", "path", path, "error", err)
		}
	}
}

// reloadProbes registers the points of the store at path that registry
// does not hold yet and returns how many were added.
func reloadProbes(store adapter.ProbeStore, path m.Path, registry *Registry) int {
	points, err := store.LoadProbes(path)
	if err != nil {
		slog.Warn("failed to reload probes", "path", path, "error", err)
		return 0
	}

	added := 0

	for _, point := range points {
		if registry.Register(point) {
			added++
		}
	}

	if added > 0 {
		slog.Info("registered probes during session", "path", path, "added", added, "probes", registry.Len())
	}

	return added
}
