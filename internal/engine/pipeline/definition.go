// Package pipeline sequences the steps of a task and runs them in order.
package pipeline

import (
	"context"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hook runs once after every step of a pipeline succeeded.
type Hook func(ctx context.Context, spec *domain.InvocationSpec) error

// Definition is the ordered list of steps a task runs.
type Definition struct {
	Name  domain.TaskName
	Steps []domain.StepKind
	// OnSuccess is nil when the task has no post-success effect.
	OnSuccess Hook
}

// StepNames returns the step kinds as strings, in order.
func (d *Definition) StepNames() []string {
	names := make([]string, 0, len(d.Steps))
	for _, s := range d.Steps {
		names = append(names, string(s))
	}
	return names
}

type entry struct {
	steps    []domain.StepKind
	withHook bool
}

var definitions = map[domain.TaskName]entry{
	domain.TaskConfigure:        {steps: []domain.StepKind{domain.StepConfigure}, withHook: true},
	domain.TaskBuild:            {steps: []domain.StepKind{domain.StepBuild}, withHook: true},
	domain.TaskBuildAll:         {steps: []domain.StepKind{domain.StepBuildAll}},
	domain.TaskBuildCurrentFile: {steps: []domain.StepKind{domain.StepBuildCurrentFile}},
	domain.TaskRun:              {steps: []domain.StepKind{domain.StepBuild, domain.StepRunExecutable}},
	domain.TaskDebug:            {steps: []domain.StepKind{domain.StepBuild, domain.StepDebugExecutable}},
	domain.TaskClean:            {steps: []domain.StepKind{domain.StepClean}},
	domain.TaskCTest:            {steps: []domain.StepKind{domain.StepCTest}},
	domain.TaskPurge:            {steps: []domain.StepKind{domain.StepPurge}},
	domain.TaskReconfigure:      {steps: []domain.StepKind{domain.StepPurge, domain.StepConfigure}, withHook: true},
}

// For returns the pipeline of task. The hook is attached only to tasks that refresh tooling.
func For(task domain.TaskName, hook Hook) (*Definition, error) {
	e, ok := definitions[task]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownTask, "task", string(task))
	}

	def := &Definition{
		Name:  task,
		Steps: append([]domain.StepKind(nil), e.steps...),
	}
	if e.withHook {
		def.OnSuccess = hook
	}
	return def, nil
}
