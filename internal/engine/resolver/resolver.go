// Package resolver composes a build kit and a build type into an invocation spec.
package resolver

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolve merges the named build type and kit of project into an invocation spec.
// It has no side effects and returns the same spec for the same inputs.
func Resolve(project *domain.Project, buildTypeName, kitName string) (*domain.InvocationSpec, error) {
	buildType, ok := project.Registry.BuildType(buildTypeName)
	if !ok {
		return nil, zerr.With(domain.ErrUnknownSelection, "build_type", buildTypeName)
	}
	kit, ok := project.Registry.Kit(kitName)
	if !ok {
		return nil, zerr.With(domain.ErrUnknownSelection, "build_kit", kitName)
	}

	buildDir := expandBuildDir(project, kit.Name, buildType.Name)
	generator := kit.GeneratorName()

	args := []string{
		"-G", generator,
		"-B", buildDir,
		define("CMAKE_EXPORT_COMPILE_COMMANDS", "ON"),
	}
	if kit.BuildTypeAware {
		args = append(args, define("CMAKE_BUILD_TYPE", buildType.BuildType))
	}
	if project.SourceDir != "" {
		args = append(args, "-S", project.SourceDir)
	}
	if kit.ToolchainFile != "" {
		args = append(args, define("CMAKE_TOOLCHAIN_FILE", absolute(project.Root, kit.ToolchainFile)))
	}
	if kit.Compilers.C != "" {
		args = append(args, define("CMAKE_C_COMPILER", kit.Compilers.C))
	}
	if kit.Compilers.CXX != "" {
		args = append(args, define("CMAKE_CXX_COMPILER", kit.Compilers.CXX))
	}
	for k, v := range buildType.Defines.Merge(kit.Defines).All() {
		args = append(args, define(k, v))
	}

	return &domain.InvocationSpec{
		Kit:           kit.Name,
		BuildTypeName: buildType.Name,
		BuildType:     buildType.BuildType,
		Generator:     generator,
		BuildDir:      buildDir,
		Args:          args,
		Env:           buildType.Env.Merge(kit.Env),
		Root:          project.Root,
		SourceDir:     project.SourceDir,
	}, nil
}

// Fingerprint returns a stable digest of the settings that shape a configured build tree.
func Fingerprint(spec *domain.InvocationSpec) string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(strconv.Itoa(len(s)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(s)
	}

	write(spec.Generator)
	for _, arg := range spec.Args {
		write(arg)
	}
	for _, kv := range spec.Env.Environ() {
		write(kv)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

func define(key, value string) string {
	return "-D" + key + "=" + value
}

// expandBuildDir substitutes the template variables and anchors the result on the project root.
func expandBuildDir(project *domain.Project, kitName, buildTypeName string) string {
	template := project.BuildDir
	if template == "" {
		template = domain.DefaultBuildDirTemplate
	}

	expanded := os.Expand(template, func(name string) string {
		switch name {
		case "buildKit":
			return kitName
		case "buildType":
			return buildTypeName
		case "workspaceRoot":
			return project.Root
		case "sourceDir":
			return project.ProjectDir()
		default:
			return os.Getenv(name)
		}
	})

	return absolute(project.Root, expanded)
}

func absolute(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

