package domain

import "strings"

// InvocationSpec is the effective configuration resolved from a kit and a build type.
// It is recomputed for every task and never cached.
type InvocationSpec struct {
	Kit           string
	BuildTypeName string
	// BuildType is the profile's CMAKE_BUILD_TYPE value.
	BuildType string
	Generator string
	// BuildDir is absolute.
	BuildDir string
	// Args are the configure arguments, starting with generator and directory flags.
	Args []string
	Env  Vars
	// Root is the absolute project root.
	Root string
	// SourceDir is the absolute source directory override, empty when unset.
	SourceDir string
}

// IsMultiConfig reports whether the generator produces several configurations in one tree.
func (s *InvocationSpec) IsMultiConfig() bool {
	g := s.Generator
	return g == "Ninja Multi-Config" || g == "Xcode" || strings.HasPrefix(g, "Visual Studio")
}

// DebugSession marks an invocation to be launched under a debugger.
type DebugSession struct {
	// Name is the display name of the session.
	Name string
	// Launcher is the debugger argv placed before the command.
	Launcher []string
}

// Invocation is a single external process request handed to the executor.
type Invocation struct {
	Command    string
	Args       []string
	WorkingDir string
	// Env is merged over the inherited environment.
	Env   Vars
	Debug *DebugSession
}

// String renders the command line for display.
func (i *Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, i.Command)
	parts = append(parts, i.Args...)
	return strings.Join(parts, " ")
}
