// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/cmakekit/internal/core/domain"
)

// Executor defines the interface for running invocations.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the invocation and waits for it to exit.
	//
	// Output is streamed to stdout and stderr. The invocation's environment is
	// merged over the inherited process environment.
	//
	// It returns an error if the process cannot start or exits unsuccessfully.
	Execute(ctx context.Context, inv *domain.Invocation, stdout, stderr io.Writer) error
}
