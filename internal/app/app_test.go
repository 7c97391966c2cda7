package app_test

import (
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cmakekit/internal/app"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/cmakekit/internal/core/ports/mocks"
	"go.trai.ch/cmakekit/internal/engine/pipeline"
	"go.trai.ch/cmakekit/internal/engine/resolver"
	"go.trai.ch/cmakekit/internal/engine/tasks"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	loader       *mocks.MockConfigLoader
	store        *mocks.MockStateStore
	introspector *mocks.MockIntrospector
	producer     *mocks.MockInvocationProducer
	executor     *mocks.MockExecutor
	tracer       *mocks.MockTracer
	span         *mocks.MockSpan
	renderer     *mocks.MockRenderer
	refresher    *mocks.MockToolingRefresher
	watchers     *mocks.MockWatcherFactory
	logger       *mocks.MockLogger
}

func setupApp(t *testing.T) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &appMocks{
		loader:       mocks.NewMockConfigLoader(ctrl),
		store:        mocks.NewMockStateStore(ctrl),
		introspector: mocks.NewMockIntrospector(ctrl),
		producer:     mocks.NewMockInvocationProducer(ctrl),
		executor:     mocks.NewMockExecutor(ctrl),
		tracer:       mocks.NewMockTracer(ctrl),
		span:         mocks.NewMockSpan(ctrl),
		renderer:     mocks.NewMockRenderer(ctrl),
		refresher:    mocks.NewMockToolingRefresher(ctrl),
		watchers:     mocks.NewMockWatcherFactory(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
	}

	engine := pipeline.NewEngine(m.producer, m.executor, m.tracer, m.logger)
	a := app.New(m.loader, m.store, m.introspector, engine, m.renderer, m.refresher, m.watchers, m.logger)
	return a, m
}

// expectPipeline allows the renderer and tracer calls every pipeline run makes.
func (m *appMocks) expectPipeline() {
	m.renderer.EXPECT().Start(gomock.Any()).Return(nil)
	m.renderer.EXPECT().Wait().Return(nil)
	m.renderer.EXPECT().Stop().Return(nil)
	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any())
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, m.span
		}).AnyTimes()
	m.span.EXPECT().End().AnyTimes()
	m.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.span.EXPECT().RecordError(gomock.Any()).AnyTimes()
}

func newProject(t *testing.T, withProjectFile bool) *domain.Project {
	t.Helper()
	root := t.TempDir()
	if withProjectFile {
		require.NoError(t, os.WriteFile(filepath.Join(root, domain.ProjectFileName), nil, domain.FilePerm))
	}

	reg, err := domain.NewRegistry(
		[]domain.BuildTypeProfile{{Name: "Debug"}, {Name: "Release"}},
		[]domain.BuildKit{
			{Name: "gcc", Generator: "Ninja", BuildTypeAware: true},
			{Name: "clang", Generator: "Ninja", BuildTypeAware: true},
		},
	)
	require.NoError(t, err)

	return &domain.Project{
		Root:                root,
		BuildDir:            domain.DefaultBuildDirTemplate,
		Debugger:            domain.DefaultDebugger,
		LinkCompileCommands: true,
		Registry:            reg,
	}
}

func TestApp_RunTask_Configure(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)
	buildDir := filepath.Join(project.Root, "build", "gcc", "Debug")

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.expectPipeline()

	inv := &domain.Invocation{Command: "cmake"}
	m.producer.EXPECT().Produce(gomock.Any(), domain.StepConfigure, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.StepKind, req *domain.TaskRequest) (*domain.Invocation, error) {
			assert.Equal(t, buildDir, req.Spec.BuildDir)
			assert.Equal(t, "gcc", req.Spec.Kit)
			assert.Equal(t, domain.DefaultDebugger, req.Debugger)
			assert.Positive(t, req.Jobs)
			return inv, nil
		})
	m.executor.EXPECT().Execute(gomock.Any(), inv, gomock.Any(), gomock.Any()).Return(nil)
	m.refresher.EXPECT().Refresh(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	var saved domain.State
	m.store.EXPECT().Put(project.Root, gomock.Any()).DoAndReturn(func(_ string, s domain.State) error {
		saved = s
		return nil
	})

	err := a.RunTask(context.Background(), domain.TaskConfigure, app.RunOptions{Dir: project.Root})
	require.NoError(t, err)

	spec, err := resolver.Resolve(project, "Debug", "gcc")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{buildDir: resolver.Fingerprint(spec)}, saved.Configured)
}

func TestApp_RunTask_NoProjectFile(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, false)

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)

	err := a.RunTask(context.Background(), domain.TaskBuild, app.RunOptions{Dir: project.Root})
	require.ErrorContains(t, err, domain.ErrProjectNotFound.Error())
}

func TestApp_RunTask_LoadError(t *testing.T) {
	a, m := setupApp(t)

	m.loader.EXPECT().Load("/nowhere").Return(nil, errors.New("config load error"))

	err := a.RunTask(context.Background(), domain.TaskBuild, app.RunOptions{Dir: "/nowhere"})
	require.ErrorContains(t, err, "config load error")
}

func TestApp_RunTask_UnknownKit(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)

	err := a.RunTask(context.Background(), domain.TaskBuild, app.RunOptions{Dir: project.Root, Kit: "msvc"})
	require.ErrorContains(t, err, domain.ErrUnknownSelection.Error())
}

func TestApp_RunTask_StepFailure(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.expectPipeline()

	m.producer.EXPECT().Produce(gomock.Any(), domain.StepBuild, gomock.Any()).Return(nil, domain.ErrNotConfigured)

	err := a.RunTask(context.Background(), domain.TaskBuild, app.RunOptions{Dir: project.Root, Target: "app"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPipelineFailed)
	assert.ErrorContains(t, err, domain.ErrNotConfigured.Error())
}

func TestApp_RunTask_PanicFails(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.expectPipeline()

	m.producer.EXPECT().Produce(gomock.Any(), domain.StepConfigure, gomock.Any()).Return(&domain.Invocation{Command: "cmake"}, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Invocation, io.Writer, io.Writer) error {
			panic("boom")
		})
	// Neither the tooling hook nor the store may run: any call fails the test.

	err := a.RunTask(context.Background(), domain.TaskConfigure, app.RunOptions{Dir: project.Root})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPipelineFailed)
	assert.ErrorContains(t, err, "panic: boom")
}

func TestApp_RunTask_FileRelativeToInvocationDir(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)
	project.LinkCompileCommands = false
	srcDir := filepath.Join(project.Root, "src")

	m.loader.EXPECT().Load(srcDir).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.expectPipeline()

	m.producer.EXPECT().Produce(gomock.Any(), domain.StepBuildCurrentFile, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.StepKind, req *domain.TaskRequest) (*domain.Invocation, error) {
			assert.Equal(t, filepath.Join(srcDir, "main.cpp"), req.File)
			return &domain.Invocation{Command: "cmake"}, nil
		})
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	err := a.RunTask(context.Background(), domain.TaskBuildCurrentFile, app.RunOptions{Dir: srcDir, File: "main.cpp"})
	require.NoError(t, err)
}

func TestApp_RunTask_BuildCurrentFileTargetsObjectRule(t *testing.T) {
	_, m := setupApp(t)
	project := newProject(t, true)
	project.LinkCompileCommands = false
	srcDir := filepath.Join(project.Root, "src")
	buildDir := filepath.Join(project.Root, "build", "gcc", "Debug")
	require.NoError(t, os.MkdirAll(buildDir, domain.DirPerm))

	engine := pipeline.NewEngine(tasks.NewProducer(m.introspector, m.logger), m.executor, m.tracer, m.logger)
	a := app.New(m.loader, m.store, m.introspector, engine, m.renderer, m.refresher, m.watchers, m.logger)

	m.loader.EXPECT().Load(srcDir).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.expectPipeline()

	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *domain.Invocation, _, _ io.Writer) error {
			assert.Equal(t, []string{"--build", buildDir, "--target", filepath.Join(srcDir, "main.cpp") + "^"}, inv.Args)
			return nil
		})

	err := a.RunTask(context.Background(), domain.TaskBuildCurrentFile, app.RunOptions{Dir: srcDir, File: "main.cpp"})
	require.NoError(t, err)
}

func TestApp_RunTask_WarnsOnStaleConfiguration(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)
	buildDir := filepath.Join(project.Root, "build", "gcc", "Debug")

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(&domain.State{
		Selection:  domain.Selection{Target: "app"},
		Configured: map[string]string{buildDir: "0000000000000000"},
	}, nil)
	m.expectPipeline()
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)

	m.producer.EXPECT().Produce(gomock.Any(), domain.StepBuild, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.StepKind, req *domain.TaskRequest) (*domain.Invocation, error) {
			assert.Equal(t, "app", req.Target, "persisted target")
			return &domain.Invocation{Command: "cmake"}, nil
		})
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.refresher.EXPECT().Refresh(gomock.Any(), gomock.Any()).Return(nil)

	err := a.RunTask(context.Background(), domain.TaskBuild, app.RunOptions{Dir: project.Root})
	require.NoError(t, err)
}

func TestApp_RunTask_NoToolingHookWhenDisabled(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)
	project.LinkCompileCommands = false

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.expectPipeline()

	m.producer.EXPECT().Produce(gomock.Any(), domain.StepBuild, gomock.Any()).Return(&domain.Invocation{Command: "cmake"}, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	// The refresher has no expectations: any call fails the test.

	err := a.RunTask(context.Background(), domain.TaskBuild, app.RunOptions{Dir: project.Root, Target: "all"})
	require.NoError(t, err)
}

func TestApp_RunTask_PurgeForgetsFingerprint(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)
	buildDir := filepath.Join(project.Root, "build", "gcc", "Debug")
	other := filepath.Join(project.Root, "build", "clang", "Debug")

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(&domain.State{
		Configured: map[string]string{buildDir: "a", other: "b"},
	}, nil)
	m.expectPipeline()

	m.producer.EXPECT().Produce(gomock.Any(), domain.StepPurge, gomock.Any()).Return(&domain.Invocation{Command: "cmake"}, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	var saved domain.State
	m.store.EXPECT().Put(project.Root, gomock.Any()).DoAndReturn(func(_ string, s domain.State) error {
		saved = s
		return nil
	})

	err := a.RunTask(context.Background(), domain.TaskPurge, app.RunOptions{Dir: project.Root})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{other: "b"}, saved.Configured)
}

func TestApp_RunTask_StoreFailureOnlyWarns(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)
	project.LinkCompileCommands = false

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.expectPipeline()

	m.producer.EXPECT().Produce(gomock.Any(), domain.StepConfigure, gomock.Any()).Return(&domain.Invocation{Command: "cmake"}, nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.store.EXPECT().Put(project.Root, gomock.Any()).Return(domain.ErrStoreWriteFailed)
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)

	err := a.RunTask(context.Background(), domain.TaskConfigure, app.RunOptions{Dir: project.Root})
	require.NoError(t, err)
}

func TestApp_Tasks(t *testing.T) {
	t.Run("with project file", func(t *testing.T) {
		a, m := setupApp(t)
		project := newProject(t, true)
		m.loader.EXPECT().Load(project.Root).Return(project, nil)
		m.store.EXPECT().Get(project.Root).Return(nil, nil)

		tasks, err := a.Tasks(context.Background(), project.Root)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskNames(), tasks)
	})

	t.Run("without project file", func(t *testing.T) {
		a, m := setupApp(t)
		project := newProject(t, false)
		m.loader.EXPECT().Load(project.Root).Return(project, nil)
		m.store.EXPECT().Get(project.Root).Return(nil, nil)

		tasks, err := a.Tasks(context.Background(), project.Root)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestApp_Targets(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)
	buildDir := filepath.Join(project.Root, "build", "gcc", "Release")

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	m.introspector.EXPECT().ListTargets(buildDir, "Release").
		Return([]domain.Target{{Name: "app", Kind: domain.KindExecutable}, domain.AllTarget()}, nil)

	targets, err := a.Targets(context.Background(), app.RunOptions{Dir: project.Root, BuildType: "Release"})
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "app", targets[0].Name)
}

func TestApp_WatchTargets(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupApp(t)
		project := newProject(t, true)
		buildDir := filepath.Join(project.Root, "build", "gcc", "Debug")
		require.NoError(t, os.MkdirAll(buildDir, domain.DirPerm))
		w := mocks.NewMockWatcher(gomock.NewController(t))

		m.loader.EXPECT().Load(project.Root).Return(project, nil)
		m.store.EXPECT().Get(project.Root).Return(nil, nil)
		m.introspector.EXPECT().EnsureQueryStub(buildDir).Return(nil)
		m.watchers.EXPECT().NewWatcher().Return(w, nil)
		w.EXPECT().Start(gomock.Any(), domain.FileAPIDir(buildDir)).Return(nil)
		w.EXPECT().Stop().Return(nil)

		replyDir := domain.FileAPIReplyDir(buildDir)
		w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			// A burst of reply files is reported as one change.
			for _, name := range []string{"index-1.json", "codemodel-v2.json", "target-app.json"} {
				if !yield(ports.WatchEvent{Path: filepath.Join(replyDir, name), Operation: ports.OpCreate}) {
					return
				}
			}
			// Query writes are ignored.
			if !yield(ports.WatchEvent{Path: filepath.Join(domain.FileAPIQueryDir(buildDir), "x"), Operation: ports.OpWrite}) {
				return
			}
			time.Sleep(time.Second)
		}))

		gomock.InOrder(
			m.introspector.EXPECT().ListTargets(buildDir, "Debug").Return(nil, domain.ErrNoReply),
			m.introspector.EXPECT().ListTargets(buildDir, "Debug").Return([]domain.Target{domain.AllTarget()}, nil),
		)
		m.logger.EXPECT().Warn(gomock.Any()).Times(1)

		var emitted [][]domain.Target
		err := a.WatchTargets(context.Background(), app.RunOptions{Dir: project.Root}, func(targets []domain.Target) {
			emitted = append(emitted, targets)
		})
		require.NoError(t, err)
		require.Len(t, emitted, 1)
		assert.Equal(t, []domain.Target{domain.AllTarget()}, emitted[0])
	})
}

func TestApp_WatchTargets_NotConfigured(t *testing.T) {
	a, m := setupApp(t)
	project := newProject(t, true)

	m.loader.EXPECT().Load(project.Root).Return(project, nil)
	m.store.EXPECT().Get(project.Root).Return(nil, nil)
	// No query stub and no watcher: any call fails the test.

	err := a.WatchTargets(context.Background(), app.RunOptions{Dir: project.Root}, func([]domain.Target) {
		t.Fatal("no targets expected")
	})
	require.ErrorContains(t, err, domain.ErrNotConfigured.Error())
	assert.NoDirExists(t, filepath.Join(project.Root, "build", "gcc", "Debug"))
}

func TestApp_WatchTargets_ResumesAfterRemoval(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupApp(t)
		project := newProject(t, true)
		buildDir := filepath.Join(project.Root, "build", "gcc", "Debug")
		require.NoError(t, os.MkdirAll(buildDir, domain.DirPerm))
		ctrl := gomock.NewController(t)
		first, second := mocks.NewMockWatcher(ctrl), mocks.NewMockWatcher(ctrl)
		apiDir := domain.FileAPIDir(buildDir)
		replyDir := domain.FileAPIReplyDir(buildDir)

		m.loader.EXPECT().Load(project.Root).Return(project, nil)
		m.store.EXPECT().Get(project.Root).Return(nil, nil)
		m.introspector.EXPECT().EnsureQueryStub(buildDir).Return(nil)
		gomock.InOrder(
			m.watchers.EXPECT().NewWatcher().Return(first, nil),
			m.watchers.EXPECT().NewWatcher().Return(second, nil),
		)

		first.EXPECT().Start(gomock.Any(), apiDir).Return(nil)
		first.EXPECT().Stop().Return(nil)
		first.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			// A purge deletes the watched directory itself.
			yield(ports.WatchEvent{Path: apiDir, Operation: ports.OpRemove})
		}))

		second.EXPECT().Start(gomock.Any(), apiDir).Return(nil)
		second.EXPECT().Stop().Return(nil)
		second.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			// Pending events are delivered when the watcher closes.
			yield(ports.WatchEvent{Path: filepath.Join(replyDir, "index-2.json"), Operation: ports.OpCreate})
		}))

		m.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
			assert.Contains(t, msg, "was removed")
		})
		m.introspector.EXPECT().ListTargets(buildDir, "Debug").Return([]domain.Target{domain.AllTarget()}, nil).Times(3)

		// The next configure writes a fresh reply.
		go func() {
			time.Sleep(2 * time.Second)
			assert.NoError(t, os.MkdirAll(replyDir, domain.DirPerm))
		}()

		var emitted int
		err := a.WatchTargets(context.Background(), app.RunOptions{Dir: project.Root}, func([]domain.Target) {
			emitted++
		})
		require.NoError(t, err)
		assert.Equal(t, 3, emitted)
	})
}
