package fileapi

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cmakekit/internal/core/ports"
)

// NodeID is the unique identifier for the introspector Graft node.
const NodeID graft.ID = "adapter.introspector"

func init() {
	graft.Register(graft.Node[ports.Introspector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Introspector, error) {
			return NewClient(), nil
		},
	})
}
