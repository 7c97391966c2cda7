package domain

// TaskName identifies a user-facing task.
type TaskName string

const (
	// TaskConfigure runs the generator.
	TaskConfigure TaskName = "configure"
	// TaskBuild builds the selected target.
	TaskBuild TaskName = "build"
	// TaskBuildAll builds every target.
	TaskBuildAll TaskName = "build_all"
	// TaskBuildCurrentFile compiles a single source file.
	TaskBuildCurrentFile TaskName = "build_current_file"
	// TaskRun builds and runs the selected executable.
	TaskRun TaskName = "run"
	// TaskDebug builds and debugs the selected executable.
	TaskDebug TaskName = "debug"
	// TaskClean cleans the build tree.
	TaskClean TaskName = "clean"
	// TaskCTest runs the test suite.
	TaskCTest TaskName = "ctest"
	// TaskPurge removes the build directory.
	TaskPurge TaskName = "purge"
	// TaskReconfigure purges then configures.
	TaskReconfigure TaskName = "reconfigure"
)

// TaskNames lists every task in display order.
func TaskNames() []TaskName {
	return []TaskName{
		TaskConfigure,
		TaskBuild,
		TaskBuildAll,
		TaskBuildCurrentFile,
		TaskRun,
		TaskDebug,
		TaskClean,
		TaskCTest,
		TaskPurge,
		TaskReconfigure,
	}
}

// StepKind tags a pipeline step descriptor.
type StepKind string

const (
	// StepConfigure generates the build tree with the resolved cache arguments.
	StepConfigure StepKind = "configure"
	// StepBuild builds the selected target.
	StepBuild StepKind = "build"
	// StepBuildAll builds the default target.
	StepBuildAll StepKind = "build_all"
	// StepBuildCurrentFile compiles the object of one source file.
	StepBuildCurrentFile StepKind = "build_current_file"
	// StepRunExecutable runs the artifact of the selected executable target.
	StepRunExecutable StepKind = "run_executable"
	// StepDebugExecutable launches the selected executable under the debugger.
	StepDebugExecutable StepKind = "debug_executable"
	// StepClean runs the build tool's clean target.
	StepClean StepKind = "clean"
	// StepCTest runs the test suite of the build tree.
	StepCTest StepKind = "ctest"
	// StepPurge deletes the build directory.
	StepPurge StepKind = "purge"
)

// PipelineState is the state of one pipeline run.
type PipelineState string

const (
	// StatePending is the initial state.
	StatePending PipelineState = "Pending"
	// StateRunning indicates a step is executing.
	StateRunning PipelineState = "Running"
	// StateSucceeded indicates every step completed.
	StateSucceeded PipelineState = "Succeeded"
	// StateFailed indicates a step could not be produced or failed to execute.
	StateFailed PipelineState = "Failed"
	// StateAborted indicates the run was cancelled.
	StateAborted PipelineState = "Aborted"
)

// TaskRequest carries everything a step needs to produce its invocation.
type TaskRequest struct {
	Spec *InvocationSpec
	// Target is the selected target, empty when none.
	Target string
	// File is the active file for build_current_file.
	File string
	// RunArgs are passed to the executable by run and debug.
	RunArgs []string
	// Debugger is the launcher used by debug sessions.
	Debugger []string
	// Jobs is the parallelism passed to ctest.
	Jobs int
}
