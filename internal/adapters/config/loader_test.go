package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cmakekit/internal/adapters/config"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), domain.FilePerm))
}

func TestLoad_NoConfigUsesBuiltins(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	project, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, project.Root)
	assert.Equal(t, domain.DefaultBuildDirTemplate, project.BuildDir)
	assert.Equal(t, domain.DefaultDebugger, project.Debugger)
	assert.True(t, project.LinkCompileCommands)

	kits := project.Registry.Kits()
	require.Len(t, kits, 1)
	assert.Equal(t, "default", kits[0].Name)

	names := make([]string, 0)
	for _, bt := range project.Registry.BuildTypes() {
		names = append(names, bt.Name)
	}
	assert.Equal(t, []string{"Debug", "Release", "RelWithDebInfo", "MinSizeRel"}, names)
}

func TestLoad_FullConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gcc.env"), []byte("ZED=1\nALPHA=2\nCC_FLAG=file\n"), domain.FilePerm))
	writeConfig(t, dir, `
version: "1"
sourceDir: src
buildDir: out/${buildKit}-${buildType}
debugger: [lldb, --]
defaults:
  kit: clang
  buildType: Fast
tooling:
  linkCompileCommands: false
buildTypes:
  Fast:
    buildType: Release
    defines:
      OPT: type
      LTO: "ON"
  Debug: {}
kits:
  gcc:
    compilers:
      C: gcc
      CXX: g++
    envFile: gcc.env
    env:
      CC_FLAG: explicit
  clang:
    generator: Unix Makefiles
    toolchainFile: cmake/clang.cmake
    buildTypeAware: false
`)

	project, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), project.SourceDir)
	assert.Equal(t, "out/${buildKit}-${buildType}", project.BuildDir)
	assert.Equal(t, []string{"lldb", "--"}, project.Debugger)
	assert.Equal(t, "clang", project.DefaultKit)
	assert.Equal(t, "Fast", project.DefaultBuildType)
	assert.False(t, project.LinkCompileCommands)

	types := project.Registry.BuildTypes()
	require.Len(t, types, 2)
	assert.Equal(t, "Fast", types[0].Name)
	assert.Equal(t, "Release", types[0].BuildType)
	assert.Equal(t, []string{"OPT=type", "LTO=ON"}, types[0].Defines.Environ())
	assert.Equal(t, "Debug", types[1].BuildType)

	kits := project.Registry.Kits()
	require.Len(t, kits, 2)
	gcc := kits[0]
	assert.Equal(t, "gcc", gcc.Name)
	assert.Equal(t, domain.Compilers{C: "gcc", CXX: "g++"}, gcc.Compilers)
	assert.True(t, gcc.BuildTypeAware)
	assert.Equal(t, []string{"ALPHA=2", "CC_FLAG=explicit", "ZED=1"}, gcc.Env.Environ())

	clang := kits[1]
	assert.Equal(t, "Unix Makefiles", clang.Generator)
	assert.Equal(t, filepath.Join(dir, "cmake", "clang.cmake"), clang.ToolchainFile)
	assert.False(t, clang.BuildTypeAware)
}

func TestLoad_DiscoversConfigUpwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	writeConfig(t, root, "version: \"1\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	project, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, project.Root)
}

func TestLoad_UnknownVersionWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeConfig(t, dir, "version: \"9\"\n")

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := config.NewLoader(log).Load(dir)
	require.NoError(t, err)
}

func TestLoad_InvalidDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
defaults:
  kit: missing
`)

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrInvalidConfig.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "defaults.kit", zErr.Metadata()["field"])
}

func TestLoad_DuplicateKit(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
kits:
  gcc: {}
  gcc: {}
`)

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeConfig(t, dir, "kits: [unterminated\n")

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestLoad_MissingEnvFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
kits:
  gcc:
    envFile: nope.env
`)

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.ErrorContains(t, err, domain.ErrEnvFileFailed.Error())
}
