package ports

import (
	"context"

	"go.trai.ch/cmakekit/internal/core/domain"
)

// ToolingRefresher refreshes tools that depend on the configured build tree.
//
//go:generate mockgen -source=tooling.go -destination=mocks/mock_tooling.go -package=mocks
type ToolingRefresher interface {
	// Refresh points dependent tooling at the build tree described by spec.
	Refresh(ctx context.Context, spec *domain.InvocationSpec) error
}
