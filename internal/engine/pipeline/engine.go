package pipeline

import (
	"context"
	"fmt"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Result is the terminal outcome of one pipeline run.
type Result struct {
	State domain.PipelineState
	// FailedStep is the index of the failing or interrupted step, -1 when none.
	FailedStep int
	Cause      error
	// Invocations holds every invocation produced, in step order.
	Invocations []*domain.Invocation
}

// Engine runs pipeline definitions step by step.
type Engine struct {
	producer ports.InvocationProducer
	executor ports.Executor
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewEngine creates a new Engine with the given dependencies.
func NewEngine(
	producer ports.InvocationProducer,
	executor ports.Executor,
	tracer ports.Tracer,
	logger ports.Logger,
) *Engine {
	return &Engine{
		producer: producer,
		executor: executor,
		tracer:   tracer,
		logger:   logger,
	}
}

// Run executes the steps of def in order, stopping at the first failure.
// The returned error is nil only when the pipeline succeeded.
func (e *Engine) Run(ctx context.Context, def *Definition, req *domain.TaskRequest) (*Result, error) {
	res := &Result{State: domain.StatePending, FailedStep: -1}

	e.tracer.EmitPlan(ctx, string(def.Name), def.StepNames())

	for i, step := range def.Steps {
		if err := ctx.Err(); err != nil {
			return finish(res, domain.StateAborted, i, zerr.With(zerr.Wrap(err, domain.ErrPipelineAborted.Error()), "step", string(step)))
		}

		res.State = domain.StateRunning

		inv, err := e.runStep(ctx, def, step, req)
		if inv != nil {
			res.Invocations = append(res.Invocations, inv)
		}
		if err != nil {
			if ctx.Err() != nil {
				return finish(res, domain.StateAborted, i, zerr.With(zerr.Wrap(err, domain.ErrPipelineAborted.Error()), "step", string(step)))
			}
			return finish(res, domain.StateFailed, i, err)
		}
	}

	res.State = domain.StateSucceeded

	if def.OnSuccess != nil {
		if err := def.OnSuccess(ctx, req.Spec); err != nil {
			e.logger.Warn(fmt.Sprintf("%s succeeded but tooling refresh failed: %v", def.Name, err))
		}
	}

	return res, nil
}

func (e *Engine) runStep(
	ctx context.Context,
	def *Definition,
	step domain.StepKind,
	req *domain.TaskRequest,
) (*domain.Invocation, error) {
	stepCtx, span := e.tracer.Start(ctx, string(step), ports.WithAttribute(ports.AttrTask, string(def.Name)))
	defer span.End()

	inv, err := e.producer.Produce(stepCtx, step, req)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "step", string(step))
	}

	span.SetAttribute(ports.AttrCommand, inv.String())
	if err := e.executor.Execute(stepCtx, inv, span, span); err != nil {
		span.RecordError(err)
		return inv, zerr.With(zerr.Wrap(err, domain.ErrStepExecutionFailed.Error()), "step", string(step))
	}

	return inv, nil
}

func finish(res *Result, state domain.PipelineState, step int, cause error) (*Result, error) {
	res.State = state
	res.FailedStep = step
	res.Cause = cause
	return res, cause
}
