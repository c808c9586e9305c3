package ingest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

type WatchConfig struct {
	Roots      []string // watched recursively
	Exts       []string // nil accepts every upload extension
	SkipHidden bool
	Debounce   time.Duration // coalesce create/write bursts per file
}

// Watch emits paths of matching files created or rewritten under the roots until
// ctx ends. Both channels are closed when the watcher stops.
func Watch(ctx context.Context, cfg WatchConfig, logger zerolog.Logger) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		return nil, nil, errors.New("no roots provided")
	}
	exts := extSet(cfg.Exts)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	for _, root := range cfg.Roots {
		if err := addTree(w, root, cfg.SkipHidden); err != nil {
			_ = w.Close()
			return nil, nil, err
		}
	}

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(evCh)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn().Err(err).Msg("watcher.close_failed")
			}
		}()

		var (
			mu      sync.Mutex
			pending = map[string]*time.Timer{}
			wg      sync.WaitGroup
		)
		defer func() {
			mu.Lock()
			for p, t := range pending {
				if t.Stop() {
					wg.Done()
				}
				delete(pending, p)
			}
			mu.Unlock()
			wg.Wait()
		}()

		emit := func(path string) {
			select {
			case evCh <- path:
			case <-ctx.Done():
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Has(fsnotify.Create) {
					if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
						if err := addTree(w, e.Name, cfg.SkipHidden); err != nil {
							logger.Warn().Err(err).Str("path", e.Name).Msg("watcher.add_dir_failed")
						}
						continue
					}
				}
				if cfg.SkipHidden && isHidden(e.Name) {
					continue
				}
				if !allowed(e.Name, exts) || !(e.Has(fsnotify.Create) || e.Has(fsnotify.Write)) {
					continue
				}
				if cfg.Debounce <= 0 {
					emit(e.Name)
					continue
				}

				path := e.Name
				mu.Lock()
				if t, ok := pending[path]; ok && t.Stop() {
					wg.Done()
				}
				wg.Add(1)
				var t *time.Timer
				t = time.AfterFunc(cfg.Debounce, func() {
					defer wg.Done()
					mu.Lock()
					if pending[path] == t {
						delete(pending, path)
					}
					mu.Unlock()
					emit(path)
				})
				pending[path] = t
				mu.Unlock()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error().Err(err).Msg("watcher.error")
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

func addTree(w *fsnotify.Watcher, root string, skipHidden bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipHidden && isHidden(path) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
