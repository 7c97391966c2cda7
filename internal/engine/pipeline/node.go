package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cmakekit/internal/adapters/logger"
	"go.trai.ch/cmakekit/internal/adapters/shell"
	"go.trai.ch/cmakekit/internal/adapters/telemetry"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/cmakekit/internal/engine/tasks"
)

// NodeID is the unique identifier for the pipeline engine Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{tasks.NodeID, shell.NodeID, telemetry.TracerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Engine, error) {
			producer, err := graft.Dep[*tasks.Producer](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEngine(producer, executor, tracer, log), nil
		},
	})
}
