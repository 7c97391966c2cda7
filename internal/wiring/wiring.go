// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cmakekit/internal/adapters/cas"
	_ "go.trai.ch/cmakekit/internal/adapters/config"
	_ "go.trai.ch/cmakekit/internal/adapters/fileapi"
	_ "go.trai.ch/cmakekit/internal/adapters/linear"
	_ "go.trai.ch/cmakekit/internal/adapters/logger"
	_ "go.trai.ch/cmakekit/internal/adapters/shell"
	_ "go.trai.ch/cmakekit/internal/adapters/telemetry"
	_ "go.trai.ch/cmakekit/internal/adapters/tooling"
	_ "go.trai.ch/cmakekit/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/cmakekit/internal/app"
	_ "go.trai.ch/cmakekit/internal/engine/pipeline"
	_ "go.trai.ch/cmakekit/internal/engine/tasks"
)
