package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cmakekit/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/adapters/fileapi" //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/adapters/linear"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/adapters/tooling" //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/cmakekit/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cas.NodeID,
			fileapi.NodeID,
			pipeline.NodeID,
			linear.NodeID,
			tooling.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.StateStore](ctx)
	if err != nil {
		return nil, err
	}

	introspector, err := graft.Dep[ports.Introspector](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[*pipeline.Engine](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	refresher, err := graft.Dep[ports.ToolingRefresher](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, store, introspector, engine, renderer, refresher, watchers, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
