package ports

import "go.trai.ch/cmakekit/internal/core/domain"

// Introspector reads the build model CMake publishes through its file API.
//
//go:generate mockgen -source=introspector.go -destination=mocks/mock_introspector.go -package=mocks
type Introspector interface {
	// EnsureQueryStub creates the codemodel query marker inside buildDir.
	// It is idempotent and never truncates an existing marker.
	EnsureQueryStub(buildDir string) error

	// ListTargets returns the targets of the configuration matching buildType,
	// in discovery order, without _autogen targets and with "all" appended.
	ListTargets(buildDir, buildType string) ([]domain.Target, error)

	// ResolveExecutablePath returns the artifact path of an executable target.
	// The path is returned whether or not the file exists.
	ResolveExecutablePath(buildDir, target, buildType string) (string, error)
}
