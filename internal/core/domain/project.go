package domain

import (
	"os"
	"path/filepath"
)

// Project is the loaded configuration of one CMake project.
type Project struct {
	// Root is the directory holding cmakekit.yaml, or the working directory without one.
	Root string
	// SourceDir is the absolute source directory override; empty means Root.
	SourceDir string
	// BuildDir is the unexpanded build directory template.
	BuildDir string
	// Debugger is the launcher argv prefixed to debug sessions.
	Debugger []string
	// DefaultKit and DefaultBuildType are used when nothing else selects one.
	DefaultKit       string
	DefaultBuildType string
	// LinkCompileCommands enables the tooling refresh hook.
	LinkCompileCommands bool
	Registry            *Registry
}

// ProjectDir returns the directory expected to hold CMakeLists.txt.
func (p *Project) ProjectDir() string {
	if p.SourceDir != "" {
		return p.SourceDir
	}
	return p.Root
}

// HasProjectFile reports whether CMakeLists.txt exists in the project directory.
func (p *Project) HasProjectFile() bool {
	info, err := os.Stat(filepath.Join(p.ProjectDir(), ProjectFileName))
	return err == nil && !info.IsDir()
}
