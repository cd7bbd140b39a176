package presskit

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// watchContent rebuilds the site and invalidates the document cache when
// the content dir changes. Events are debounced so a burst of editor
// writes triggers one rebuild.
func (a *App) watchContent(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addDirs(watcher, a.Config.ContentDir); err != nil {
		return err
	}

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New subdirectories need their own watch.
			if ev.Op&fsnotify.Create != 0 {
				_ = addDirs(watcher, ev.Name)
			}
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("presskit: watch: %v", err)
		case <-timer.C:
			a.rebuild(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) rebuild(ctx context.Context) {
	result, err := a.Builder.Build(ctx)
	if err != nil {
		// A collision or render failure during watch keeps serving the
		// previous build; the author sees the error and fixes the file.
		log.Printf("presskit: rebuild failed: %v", err)
		return
	}
	a.setRoutes(result.Routes)
	a.Cache.Invalidate()
	log.Printf("presskit: rebuilt %d pages (%d cache hits) in %s", result.Pages, result.CacheHits, result.Duration.Round(time.Millisecond))
}

func addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // a vanished dir is not fatal to the watch
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
