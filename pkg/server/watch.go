package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of file events into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Watch reloads whenever the current source file changes, until ctx is
// cancelled. Editors often replace files instead of writing them, so the
// containing directory is watched and events are matched by name.
func (s *Server) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s.mu.Lock()
	path := s.mgr.Source().Path
	s.mu.Unlock()
	if path == "" {
		s.logger.Debug("source has no file, not watching")
		<-ctx.Done()
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	s.logger.Info("watching source", "path", abs)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !sameFile(ev.Name, abs) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			s.logger.Info("source changed, reloading")
			_ = s.Reload(ctx)
		}
	}
}

func sameFile(name, abs string) bool {
	p, err := filepath.Abs(name)
	return err == nil && p == abs
}
