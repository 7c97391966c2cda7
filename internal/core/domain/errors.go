package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownSelection is returned when a build kit or build type name is not in the registry.
	ErrUnknownSelection = zerr.New("unknown build kit or build type")

	// ErrNotConfigured is returned when the build directory does not exist yet.
	ErrNotConfigured = zerr.New("build directory is not configured, run configure first")

	// ErrNoReply is returned when the generator has not written a file API reply.
	ErrNoReply = zerr.New("no file API reply found, configure the project first")

	// ErrReplyReadFailed is returned when a file API reply file cannot be read.
	ErrReplyReadFailed = zerr.New("failed to read file API reply")

	// ErrReplyParseFailed is returned when a file API reply file cannot be decoded.
	ErrReplyParseFailed = zerr.New("failed to parse file API reply")

	// ErrWrongKind is returned when a target is not an executable.
	ErrWrongKind = zerr.New("target is not an executable")

	// ErrTargetNotFound is returned when a target is not part of the build model.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrTargetNotBuilt is returned when the artifact of an executable target does not exist.
	ErrTargetNotBuilt = zerr.New("target has not been built yet")

	// ErrNotASourceFile is returned when build_current_file is given a header or an extensionless file.
	ErrNotASourceFile = zerr.New("file is not a compilable source file")

	// ErrUnsupportedGenerator is returned when the generator has no per-file targets.
	ErrUnsupportedGenerator = zerr.New("generator does not support building a single file")

	// ErrNoTargetSelected is returned when a task needs a target and none was chosen.
	ErrNoTargetSelected = zerr.New("no target selected")

	// ErrIOFailure is returned when a directory or marker file cannot be created.
	ErrIOFailure = zerr.New("file system operation failed")

	// ErrPurgeRefused is returned when the build directory is unsafe to remove.
	ErrPurgeRefused = zerr.New("refusing to purge build directory")

	// ErrUnknownTask is returned when a task name has no pipeline.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrUnknownStep is returned when a step kind has no producer.
	ErrUnknownStep = zerr.New("unknown pipeline step")

	// ErrProjectNotFound is returned when no CMakeLists.txt exists in the source directory.
	ErrProjectNotFound = zerr.New("no CMakeLists.txt found, tasks are unavailable")

	// ErrPipelineFailed is returned when a pipeline step fails.
	ErrPipelineFailed = zerr.New("pipeline failed")

	// ErrPipelineAborted is returned when a pipeline is cancelled before it finishes.
	ErrPipelineAborted = zerr.New("pipeline aborted")

	// ErrStepExecutionFailed is returned when the executor reports a failing step.
	ErrStepExecutionFailed = zerr.New("step execution failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is structurally valid YAML but unusable.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrEnvFileFailed is returned when a kit environment file cannot be loaded.
	ErrEnvFileFailed = zerr.New("failed to load kit environment file")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreReadFailed is returned when the state file cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read state")

	// ErrStoreUnmarshalFailed is returned when the state file cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal state")

	// ErrStoreMarshalFailed is returned when the state cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal state")

	// ErrStoreWriteFailed is returned when the state file cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write state")

	// ErrToolingRefreshFailed is returned when dependent tooling cannot be refreshed.
	ErrToolingRefreshFailed = zerr.New("failed to refresh language tooling")

	// ErrWatchFailed is returned when the reply directory cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch file API reply directory")
)
