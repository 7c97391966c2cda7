package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal workspace directory.
	StateDirName = ".cmakekit"

	// StateFileName is the name of the persisted selection file.
	StateFileName = "state.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "cmakekit.yaml"

	// ProjectFileName is the project descriptor that enables the task surface.
	ProjectFileName = "CMakeLists.txt"

	// CompileCommandsFileName is the compilation database written by CMake.
	CompileCommandsFileName = "compile_commands.json"

	// DefaultBuildDirTemplate is the build directory used when the config does not set one.
	DefaultBuildDirTemplate = "build/${buildKit}/${buildType}"

	// DefaultGenerator is the generator used when a kit does not name one.
	DefaultGenerator = "Ninja"

	// CMakeCommand is the generator executable.
	CMakeCommand = "cmake"

	// CTestCommand is the test driver executable.
	CTestCommand = "ctest"

	// FileAPIQueryFile is the marker file asking CMake for a codemodel reply.
	FileAPIQueryFile = "codemodel-v2"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultDebugger is the launcher prefixed to debug sessions.
var DefaultDebugger = []string{"gdb", "--args"}

// DefaultStatePath returns the state file path relative to the project root.
// It joins .cmakekit and state.json.
func DefaultStatePath() string {
	return filepath.Join(StateDirName, StateFileName)
}

// FileAPIDir returns the CMake file API root inside a build directory.
func FileAPIDir(buildDir string) string {
	return filepath.Join(buildDir, ".cmake", "api", "v1")
}

// FileAPIQueryDir returns the directory holding file API query markers.
func FileAPIQueryDir(buildDir string) string {
	return filepath.Join(FileAPIDir(buildDir), "query")
}

// FileAPIReplyDir returns the directory CMake writes replies into.
func FileAPIReplyDir(buildDir string) string {
	return filepath.Join(FileAPIDir(buildDir), "reply")
}
