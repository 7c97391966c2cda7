package tooling

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cmakekit/internal/adapters/logger"
	"go.trai.ch/cmakekit/internal/core/ports"
)

// NodeID is the unique identifier for the tooling refresher Graft node.
const NodeID graft.ID = "adapter.tooling"

func init() {
	graft.Register(graft.Node[ports.ToolingRefresher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ToolingRefresher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRefresher(log), nil
		},
	})
}
