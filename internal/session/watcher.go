package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tlforge/scbtext/pkg/log"
)

const (
	defaultDebounce  = 500 * time.Millisecond
	watchMaxAttempts = 3
)

// Watch re-applies translations as they change on disk. It watches
// JSONDir recursively for translation writes, debounces bursts, and
// reruns replacement for just the changed files. Blocks until ctx is
// done.
func (s *Session) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, s.cfg.JSONDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.cfg.JSONDir, err)
	}

	debounce := s.cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	s.logger.Info("watching for translation changes",
		log.String("dir", s.cfg.JSONDir),
		log.Duration("debounce", debounce))

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
	)
	enqueue := func(rel string) {
		mu.Lock()
		defer mu.Unlock()
		pending[rel] = struct{}{}
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			mu.Lock()
			batch := pending
			pending = make(map[string]struct{})
			mu.Unlock()
			for rel := range batch {
				s.applyChanged(ctx, rel)
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, serr := os.Stat(event.Name); serr == nil && fi.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			rel, rerr := filepath.Rel(s.cfg.JSONDir, event.Name)
			if rerr != nil {
				continue
			}
			enqueue(rel)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", log.Err(werr))
		}
	}
}

// applyChanged reruns replacement for one changed translation file,
// retrying with backoff: an event can arrive while the writer still
// holds the file half-written.
func (s *Session) applyChanged(ctx context.Context, rel string) {
	back := newBackoff(200*time.Millisecond, 2*time.Second)
	for attempt := 1; ; attempt++ {
		rep, err := s.replaceOne(rel)
		if err == nil {
			s.logger.Info("reapplied",
				log.String("file", rel),
				log.Int("applied", rep.Applied),
				log.Int("remaining", rep.Remaining))
			return
		}
		if errors.Is(err, ErrMissingCounterpart) {
			s.logger.Warn("translation has no binary counterpart", log.String("file", rel))
			return
		}
		if attempt >= watchMaxAttempts {
			s.logger.Error("replacement failed", log.String("file", rel), log.Err(err))
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(back.Next()):
		}
	}
}

// addRecursive watches dir and every directory below it. Directories
// created later are added as their create events arrive.
func addRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
