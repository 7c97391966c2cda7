// Package app implements the application layer for cmakekit.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/cmakekit/internal/engine/pipeline"
	"go.trai.ch/cmakekit/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.StateStore
	introspector ports.Introspector
	engine       *pipeline.Engine
	renderer     ports.Renderer
	refresher    ports.ToolingRefresher
	watchers     ports.WatcherFactory
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.StateStore,
	introspector ports.Introspector,
	engine *pipeline.Engine,
	renderer ports.Renderer,
	refresher ports.ToolingRefresher,
	watchers ports.WatcherFactory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		introspector: introspector,
		engine:       engine,
		renderer:     renderer,
		refresher:    refresher,
		watchers:     watchers,
		logger:       log,
	}
}

// RunOptions configuration for tasks and queries.
type RunOptions struct {
	// Dir is the working directory; empty means the process working directory.
	Dir       string
	Kit       string
	BuildType string
	Target    string
	// File is the active file for build_current_file.
	File string
	// Args are passed to the executable by run and debug.
	Args []string
}

// session is one loaded project with its effective selection.
type session struct {
	project   *domain.Project
	state     *domain.State
	selection domain.Selection
	spec      *domain.InvocationSpec
}

// RunTask runs the pipeline of task against the effective selection.
//
//nolint:cyclop // orchestration function
func (a *App) RunTask(ctx context.Context, task domain.TaskName, opts RunOptions) error {
	// 1. Load the project and resolve the selection
	s, err := a.open(opts)
	if err != nil {
		return err
	}
	if !s.project.HasProjectFile() {
		return zerr.With(domain.ErrProjectNotFound, "dir", s.project.ProjectDir())
	}

	// 2. Build the pipeline
	var hook pipeline.Hook
	if s.project.LinkCompileCommands {
		hook = a.refresher.Refresh
	}
	def, err := pipeline.For(task, hook)
	if err != nil {
		return err
	}

	if isBuildClass(task) {
		a.warnIfStale(s)
	}

	file, err := resolveFile(opts.Dir, opts.File)
	if err != nil {
		return err
	}

	req := &domain.TaskRequest{
		Spec:     s.spec,
		Target:   s.selection.Target,
		File:     file,
		RunArgs:  opts.Args,
		Debugger: s.project.Debugger,
		Jobs:     runtime.NumCPU(),
	}

	// 3. Run Renderer and Engine concurrently
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.renderer.Start(gctx); err != nil {
			return err
		}
		return a.renderer.Wait()
	})

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Pipeline panic: %v\n", r)
				err = errors.Join(domain.ErrPipelineFailed, zerr.New(fmt.Sprintf("panic: %v", r)))
			}
			_ = a.renderer.Stop()
		}()

		if _, runErr := a.engine.Run(gctx, def, req); runErr != nil {
			return errors.Join(domain.ErrPipelineFailed, runErr)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// 4. Record the outcome
	a.record(task, s)
	return nil
}

// resolveFile makes a relative file absolute against the invocation directory.
func resolveFile(dir, file string) (string, error) {
	if file == "" || filepath.IsAbs(file) {
		return file, nil
	}
	base, err := workingDir(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, file), nil
}

// workingDir returns dir as an absolute path, defaulting to the process working directory.
func workingDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve directory")
	}
	return abs, nil
}

func isBuildClass(task domain.TaskName) bool {
	switch task {
	case domain.TaskBuild, domain.TaskBuildAll, domain.TaskBuildCurrentFile,
		domain.TaskRun, domain.TaskDebug, domain.TaskClean, domain.TaskCTest:
		return true
	default:
		return false
	}
}

func (a *App) warnIfStale(s *session) {
	recorded, ok := s.state.Configured[s.spec.BuildDir]
	if !ok || recorded == resolver.Fingerprint(s.spec) {
		return
	}
	a.logger.Warn(fmt.Sprintf(
		"%s was configured with different settings, run reconfigure to apply %s/%s",
		s.spec.BuildDir, s.spec.Kit, s.spec.BuildTypeName,
	))
}

// record updates the configured fingerprints after a successful pipeline.
func (a *App) record(task domain.TaskName, s *session) {
	state := *s.state
	switch task {
	case domain.TaskConfigure, domain.TaskReconfigure:
		configured := make(map[string]string, len(state.Configured)+1)
		for dir, fp := range state.Configured {
			configured[dir] = fp
		}
		configured[s.spec.BuildDir] = resolver.Fingerprint(s.spec)
		state.Configured = configured
	case domain.TaskPurge:
		if _, ok := state.Configured[s.spec.BuildDir]; !ok {
			return
		}
		configured := make(map[string]string, len(state.Configured))
		for dir, fp := range state.Configured {
			if dir != s.spec.BuildDir {
				configured[dir] = fp
			}
		}
		state.Configured = configured
	default:
		return
	}

	if err := a.store.Put(s.project.Root, state); err != nil {
		a.logger.Warn(fmt.Sprintf("could not save project state: %v", err))
	}
}

// open loads the project under opts.Dir and resolves the effective invocation spec.
func (a *App) open(opts RunOptions) (*session, error) {
	project, state, err := a.load(opts.Dir)
	if err != nil {
		return nil, err
	}

	sel := effectiveSelection(project, state, opts)
	spec, err := resolver.Resolve(project, sel.BuildType, sel.Kit)
	if err != nil {
		return nil, err
	}

	return &session{project: project, state: state, selection: sel, spec: spec}, nil
}

func (a *App) load(dir string) (*domain.Project, *domain.State, error) {
	dir, err := workingDir(dir)
	if err != nil {
		return nil, nil, err
	}

	project, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	state, err := a.store.Get(project.Root)
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		state = &domain.State{}
	}
	return project, state, nil
}
