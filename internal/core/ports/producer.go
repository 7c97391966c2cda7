package ports

import (
	"context"

	"go.trai.ch/cmakekit/internal/core/domain"
)

// InvocationProducer turns a pipeline step descriptor into an invocation.
//
//go:generate mockgen -source=producer.go -destination=mocks/mock_producer.go -package=mocks
type InvocationProducer interface {
	// Produce builds the invocation for step. It never returns a partial invocation:
	// on error the invocation is nil.
	Produce(ctx context.Context, step domain.StepKind, req *domain.TaskRequest) (*domain.Invocation, error)
}
