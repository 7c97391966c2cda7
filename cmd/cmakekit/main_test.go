package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cmakekit/internal/app"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports/mocks"
	"go.trai.ch/cmakekit/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader *mocks.MockConfigLoader
	store  *mocks.MockStateStore
	logger *mocks.MockLogger
}

func newComponents(t *testing.T) (ComponentProvider, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		store:  mocks.NewMockStateStore(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	engine := pipeline.NewEngine(
		mocks.NewMockInvocationProducer(ctrl),
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockTracer(ctrl),
		m.logger,
	)
	application := app.New(
		m.loader,
		m.store,
		mocks.NewMockIntrospector(ctrl),
		engine,
		mocks.NewMockRenderer(ctrl),
		mocks.NewMockToolingRefresher(ctrl),
		mocks.NewMockWatcherFactory(ctrl),
		m.logger,
	)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: m.logger,
		}, func() {}, nil
	}
	return provider, m
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _ := newComponents(t)
	stderr := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_ProviderError verifies that initialization errors are printed to stderr.
func TestRun_ProviderError(t *testing.T) {
	stderr := new(bytes.Buffer)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("graft failed")
	}

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "Error: graft failed\n", stderr.String())
}

// TestRun_TaskFailure verifies that task errors are logged and exit with 1.
func TestRun_TaskFailure(t *testing.T) {
	provider, m := newComponents(t)
	root := t.TempDir()
	reg, err := domain.NewRegistry(domain.BuiltinBuildTypes(), domain.BuiltinKits())
	require.NoError(t, err)

	m.loader.EXPECT().Load(root).Return(&domain.Project{
		Root:     root,
		BuildDir: domain.DefaultBuildDirTemplate,
		Registry: reg,
	}, nil)
	m.store.EXPECT().Get(root).Return(nil, nil)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrProjectNotFound.Error())
	})

	exitCode := run(context.Background(), []string{"build", "-C", root}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
