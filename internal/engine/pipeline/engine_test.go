package pipeline_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/cmakekit/internal/core/ports/mocks"
	"go.trai.ch/cmakekit/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	producer *mocks.MockInvocationProducer
	executor *mocks.MockExecutor
	tracer   *mocks.MockTracer
	span     *mocks.MockSpan
	logger   *mocks.MockLogger
	engine   *pipeline.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		producer: mocks.NewMockInvocationProducer(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
		span:     mocks.NewMockSpan(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.engine = pipeline.NewEngine(f.producer, f.executor, f.tracer, f.logger)

	f.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	f.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, f.span
		}).AnyTimes()
	f.span.EXPECT().End().AnyTimes()
	f.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	return f
}

func request() *domain.TaskRequest {
	return &domain.TaskRequest{
		Spec:   &domain.InvocationSpec{Kit: "gcc", BuildTypeName: "Debug", BuildDir: "/p/build"},
		Target: "app",
	}
}

func TestEngine_Run_Success(t *testing.T) {
	f := newFixture(t)
	req := request()

	hookCalls := 0
	def, err := pipeline.For(domain.TaskConfigure, func(_ context.Context, spec *domain.InvocationSpec) error {
		hookCalls++
		assert.Same(t, req.Spec, spec)
		return nil
	})
	require.NoError(t, err)

	inv := &domain.Invocation{Command: "cmake", Args: []string{"-G", "Ninja"}}
	f.producer.EXPECT().Produce(gomock.Any(), domain.StepConfigure, req).Return(inv, nil)
	f.executor.EXPECT().Execute(gomock.Any(), inv, f.span, f.span).Return(nil)

	res, err := f.engine.Run(context.Background(), def, req)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSucceeded, res.State)
	assert.Equal(t, -1, res.FailedStep)
	assert.Equal(t, []*domain.Invocation{inv}, res.Invocations)
	assert.Equal(t, 1, hookCalls)
}

func TestEngine_Run_EmitsPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := mocks.NewMockInvocationProducer(ctrl)
	executor := mocks.NewMockExecutor(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	def, err := pipeline.For(domain.TaskRun, nil)
	require.NoError(t, err)

	gomock.InOrder(
		tracer.EXPECT().EmitPlan(gomock.Any(), "run", []string{"build", "run_executable"}),
		tracer.EXPECT().Start(gomock.Any(), "build", gomock.Any()).Return(context.Background(), span),
		tracer.EXPECT().Start(gomock.Any(), "run_executable", gomock.Any()).Return(context.Background(), span),
	)
	span.EXPECT().SetAttribute("command", gomock.Any()).Times(2)
	span.EXPECT().End().Times(2)
	producer.EXPECT().Produce(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Invocation{Command: "x"}, nil).Times(2)
	executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	engine := pipeline.NewEngine(producer, executor, tracer, logger)
	_, err = engine.Run(context.Background(), def, request())
	require.NoError(t, err)
}

func TestEngine_Run_StopsAtFailingStep(t *testing.T) {
	f := newFixture(t)
	req := request()

	def, err := pipeline.For(domain.TaskRun, func(context.Context, *domain.InvocationSpec) error {
		t.Fatal("hook must not run after failure")
		return nil
	})
	require.NoError(t, err)

	build := &domain.Invocation{Command: "cmake", Args: []string{"--build", "/p/build"}}
	failure := errors.New("exit status 2")
	f.producer.EXPECT().Produce(gomock.Any(), domain.StepBuild, req).Return(build, nil)
	f.executor.EXPECT().Execute(gomock.Any(), build, gomock.Any(), gomock.Any()).Return(failure)
	f.span.EXPECT().RecordError(gomock.Any())
	// run_executable is never produced.

	res, err := f.engine.Run(context.Background(), def, req)
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrStepExecutionFailed.Error())
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, domain.StateFailed, res.State)
	assert.Equal(t, 0, res.FailedStep)
	assert.Equal(t, err, res.Cause)
}

func TestEngine_Run_ProduceError(t *testing.T) {
	f := newFixture(t)
	req := request()

	def, err := pipeline.For(domain.TaskRun, nil)
	require.NoError(t, err)

	f.producer.EXPECT().Produce(gomock.Any(), domain.StepBuild, req).Return(&domain.Invocation{Command: "cmake"}, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.producer.EXPECT().Produce(gomock.Any(), domain.StepRunExecutable, req).Return(nil, domain.ErrTargetNotBuilt)
	f.span.EXPECT().RecordError(gomock.Any())

	res, err := f.engine.Run(context.Background(), def, req)
	require.ErrorContains(t, err, domain.ErrTargetNotBuilt.Error())
	assert.Equal(t, domain.StateFailed, res.State)
	assert.Equal(t, 1, res.FailedStep)
	assert.Len(t, res.Invocations, 1)
}

func TestEngine_Run_CancelledBeforeStart(t *testing.T) {
	f := newFixture(t)

	def, err := pipeline.For(domain.TaskReconfigure, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.engine.Run(ctx, def, request())
	require.ErrorContains(t, err, domain.ErrPipelineAborted.Error())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StateAborted, res.State)
	assert.Equal(t, 0, res.FailedStep)
	assert.Empty(t, res.Invocations)
}

func TestEngine_Run_CancelledDuringStep(t *testing.T) {
	f := newFixture(t)
	req := request()

	def, err := pipeline.For(domain.TaskRun, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.producer.EXPECT().Produce(gomock.Any(), domain.StepBuild, req).Return(&domain.Invocation{Command: "cmake"}, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Invocation, io.Writer, io.Writer) error {
			cancel()
			return context.Canceled
		})
	f.span.EXPECT().RecordError(gomock.Any())

	res, err := f.engine.Run(ctx, def, req)
	require.ErrorContains(t, err, domain.ErrPipelineAborted.Error())
	assert.Equal(t, domain.StateAborted, res.State)
	assert.Equal(t, 0, res.FailedStep)
}

func TestEngine_Run_HookErrorOnlyWarns(t *testing.T) {
	f := newFixture(t)
	req := request()

	def, err := pipeline.For(domain.TaskBuild, func(context.Context, *domain.InvocationSpec) error {
		return domain.ErrToolingRefreshFailed
	})
	require.NoError(t, err)

	f.producer.EXPECT().Produce(gomock.Any(), domain.StepBuild, req).Return(&domain.Invocation{Command: "cmake"}, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	res, err := f.engine.Run(context.Background(), def, req)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSucceeded, res.State)
}
