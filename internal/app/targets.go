package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.trai.ch/cmakekit/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// RearmInterval is how often a watch whose build tree was removed checks for a new reply.
const RearmInterval = 500 * time.Millisecond

// Targets lists the targets of the selected build tree.
func (a *App) Targets(_ context.Context, opts RunOptions) ([]domain.Target, error) {
	s, err := a.open(opts)
	if err != nil {
		return nil, err
	}
	return a.introspector.ListTargets(s.spec.BuildDir, s.spec.BuildType)
}

// WatchTargets calls emit with the target list now and after every reply change.
// The build tree must be configured. When it is removed, the watch resumes once
// a new reply appears. It returns when ctx is done or the watcher closes.
func (a *App) WatchTargets(ctx context.Context, opts RunOptions, emit func([]domain.Target)) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}
	buildDir, buildType := s.spec.BuildDir, s.spec.BuildType

	if info, err := os.Stat(buildDir); err != nil || !info.IsDir() {
		return zerr.With(domain.ErrNotConfigured, "build_dir", buildDir)
	}
	if err := a.introspector.EnsureQueryStub(buildDir); err != nil {
		return err
	}

	for {
		removed, err := a.watchTree(ctx, buildDir, buildType, emit)
		if err != nil || !removed {
			return err
		}

		a.logger.Warn(fmt.Sprintf("%s was removed, waiting for the next configure", domain.FileAPIDir(buildDir)))
		if !waitForDir(ctx, domain.FileAPIReplyDir(buildDir)) {
			return nil
		}
	}
}

// watchTree watches one incarnation of the file API directory.
// It reports whether the directory itself was removed.
func (a *App) watchTree(ctx context.Context, buildDir, buildType string, emit func([]domain.Target)) (bool, error) {
	w, err := a.watchers.NewWatcher()
	if err != nil {
		return false, err
	}
	defer func() {
		_ = w.Stop()
	}()

	apiDir := domain.FileAPIDir(buildDir)
	if err := w.Start(ctx, apiDir); err != nil {
		return false, err
	}

	var (
		mu      sync.Mutex
		stopped bool
	)
	refresh := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}

		targets, err := a.introspector.ListTargets(buildDir, buildType)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("targets unavailable: %v", err))
			return
		}
		emit(targets)
	}
	stop := func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}

	refresh()

	replyDir := domain.FileAPIReplyDir(buildDir)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func([]string) {
		refresh()
	})
	for event := range w.Events() {
		if event.Path == apiDir && (event.Operation == ports.OpRemove || event.Operation == ports.OpRename) {
			stop()
			return true, nil
		}
		if strings.HasPrefix(event.Path, replyDir) {
			debouncer.Add(event.Path)
		}
	}

	debouncer.Flush()
	stop()
	return false, nil
}

// waitForDir polls until dir exists. It returns false when ctx is done first.
func waitForDir(ctx context.Context, dir string) bool {
	ticker := time.NewTicker(RearmInterval)
	defer ticker.Stop()

	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}
