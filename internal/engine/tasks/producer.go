// Package tasks produces the CMake invocations for individual pipeline steps.
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// headerExtensions cannot be compiled on their own.
var headerExtensions = map[string]bool{
	"h":   true,
	"hh":  true,
	"hpp": true,
	"hxx": true,
	"h++": true,
}

// Producer implements ports.InvocationProducer.
// Invocations are produced on demand so each step sees the filesystem left by the previous one.
type Producer struct {
	introspector ports.Introspector
	logger       ports.Logger
}

// NewProducer creates a new Producer.
func NewProducer(introspector ports.Introspector, logger ports.Logger) *Producer {
	return &Producer{introspector: introspector, logger: logger}
}

// Produce builds the invocation for step.
func (p *Producer) Produce(_ context.Context, step domain.StepKind, req *domain.TaskRequest) (*domain.Invocation, error) {
	switch step {
	case domain.StepConfigure:
		return p.configure(req), nil
	case domain.StepBuild:
		return p.build(req)
	case domain.StepBuildAll:
		return p.buildTarget(req, "")
	case domain.StepBuildCurrentFile:
		return p.buildCurrentFile(req)
	case domain.StepRunExecutable:
		return p.runExecutable(req)
	case domain.StepDebugExecutable:
		return p.debugExecutable(req)
	case domain.StepClean:
		return p.buildTarget(req, "clean")
	case domain.StepCTest:
		return p.ctest(req)
	case domain.StepPurge:
		return p.purge(req)
	default:
		return nil, zerr.With(domain.ErrUnknownStep, "step", string(step))
	}
}

func (p *Producer) configure(req *domain.TaskRequest) *domain.Invocation {
	if err := p.introspector.EnsureQueryStub(req.Spec.BuildDir); err != nil {
		p.logger.Warn(fmt.Sprintf("could not request the CMake code model: %v", err))
	}

	return &domain.Invocation{
		Command:    domain.CMakeCommand,
		Args:       append([]string(nil), req.Spec.Args...),
		WorkingDir: req.Spec.Root,
		Env:        req.Spec.Env,
	}
}

func (p *Producer) build(req *domain.TaskRequest) (*domain.Invocation, error) {
	if req.Target == "" {
		return nil, domain.ErrNoTargetSelected
	}
	if req.Target == domain.AllTargetName {
		return p.buildTarget(req, "")
	}
	return p.buildTarget(req, req.Target)
}

// buildTarget runs the native build tool; an empty target builds the default target.
func (p *Producer) buildTarget(req *domain.TaskRequest, target string) (*domain.Invocation, error) {
	if err := requireConfigured(req.Spec); err != nil {
		return nil, err
	}

	args := []string{"--build", req.Spec.BuildDir}
	if req.Spec.IsMultiConfig() {
		args = append(args, "--config", req.Spec.BuildType)
	}
	if target != "" {
		args = append(args, "--target", target)
	}

	return &domain.Invocation{
		Command:    domain.CMakeCommand,
		Args:       args,
		WorkingDir: req.Spec.Root,
		Env:        req.Spec.Env,
	}, nil
}

func (p *Producer) buildCurrentFile(req *domain.TaskRequest) (*domain.Invocation, error) {
	ext := strings.TrimPrefix(filepath.Ext(req.File), ".")
	if req.File == "" || ext == "" || headerExtensions[strings.ToLower(ext)] {
		return nil, zerr.With(domain.ErrNotASourceFile, "file", req.File)
	}
	if req.Spec.Generator != domain.DefaultGenerator {
		return nil, zerr.With(domain.ErrUnsupportedGenerator, "generator", req.Spec.Generator)
	}

	file := req.File
	if !filepath.IsAbs(file) {
		file = filepath.Join(req.Spec.Root, file)
	}

	// Ninja names the object rule of a source file "<path>^".
	return p.buildTarget(req, filepath.Clean(file)+"^")
}

func (p *Producer) runExecutable(req *domain.TaskRequest) (*domain.Invocation, error) {
	if req.Target == "" {
		return nil, domain.ErrNoTargetSelected
	}
	if err := requireConfigured(req.Spec); err != nil {
		return nil, err
	}

	path, err := p.introspector.ResolveExecutablePath(req.Spec.BuildDir, req.Target, req.Spec.BuildType)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, zerr.With(zerr.With(domain.ErrTargetNotBuilt, "target", req.Target), "path", path)
	}

	return &domain.Invocation{
		Command:    path,
		Args:       append([]string(nil), req.RunArgs...),
		WorkingDir: req.Spec.BuildDir,
		Env:        req.Spec.Env,
	}, nil
}

func (p *Producer) debugExecutable(req *domain.TaskRequest) (*domain.Invocation, error) {
	inv, err := p.runExecutable(req)
	if err != nil {
		return nil, err
	}

	launcher := req.Debugger
	if len(launcher) == 0 {
		launcher = domain.DefaultDebugger
	}
	inv.Debug = &domain.DebugSession{
		Name:     "Debug " + req.Target,
		Launcher: append([]string(nil), launcher...),
	}
	return inv, nil
}

func (p *Producer) ctest(req *domain.TaskRequest) (*domain.Invocation, error) {
	if err := requireConfigured(req.Spec); err != nil {
		return nil, err
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	return &domain.Invocation{
		Command:    domain.CTestCommand,
		Args:       []string{"-C", req.Spec.BuildType, "-j", strconv.Itoa(jobs), "--output-on-failure"},
		WorkingDir: req.Spec.BuildDir,
		Env:        req.Spec.Env,
	}, nil
}

func (p *Producer) purge(req *domain.TaskRequest) (*domain.Invocation, error) {
	dir := req.Spec.BuildDir
	if reason := unsafePurgeReason(req.Spec); reason != "" {
		return nil, zerr.With(zerr.With(domain.ErrPurgeRefused, "build_dir", dir), "reason", reason)
	}

	return &domain.Invocation{
		Command:    domain.CMakeCommand,
		Args:       []string{"-E", "rm", "-rf", dir},
		WorkingDir: req.Spec.Root,
		Env:        req.Spec.Env,
	}, nil
}

func unsafePurgeReason(spec *domain.InvocationSpec) string {
	if strings.TrimSpace(spec.BuildDir) == "" {
		return "build directory is empty"
	}

	dir := filepath.Clean(spec.BuildDir)
	switch {
	case filepath.Dir(dir) == dir:
		return "build directory is a filesystem root"
	case contains(dir, spec.Root):
		return "build directory contains the project root"
	case contains(dir, spec.SourceDir):
		return "build directory contains the source directory"
	}
	return ""
}

// contains reports whether path is dir or lies below it.
func contains(dir, path string) bool {
	if path == "" {
		return false
	}
	rel, err := filepath.Rel(dir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func requireConfigured(spec *domain.InvocationSpec) error {
	info, err := os.Stat(spec.BuildDir)
	if err != nil || !info.IsDir() {
		return zerr.With(domain.ErrNotConfigured, "build_dir", spec.BuildDir)
	}
	return nil
}
