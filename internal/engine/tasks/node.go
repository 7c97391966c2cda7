package tasks

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cmakekit/internal/adapters/fileapi"
	"go.trai.ch/cmakekit/internal/adapters/logger"
	"go.trai.ch/cmakekit/internal/core/ports"
)

// NodeID is the unique identifier for the step producer Graft node.
const NodeID graft.ID = "engine.tasks"

func init() {
	graft.Register(graft.Node[*Producer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fileapi.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Producer, error) {
			introspector, err := graft.Dep[ports.Introspector](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProducer(introspector, log), nil
		},
	})
}
