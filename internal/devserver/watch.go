package devserver

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the fixtures whenever path changes, until ctx is done. The
// parent directory is watched so editors that replace the file are seen.
// A file that fails to parse leaves the previous fixtures in place.
func (s *Server) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			set, err := LoadFixtures(abs)
			if err != nil {
				log.Printf("devserver: reload: %v", err)
				continue
			}
			s.Replace(set)
			log.Printf("devserver: reloaded %d fixtures from %s", len(set.Responses), path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("devserver: watch: %v", err)
		}
	}
}
