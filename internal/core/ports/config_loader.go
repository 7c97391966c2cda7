package ports

import "go.trai.ch/cmakekit/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration found from cwd upwards and returns the project.
	// Without a config file the working directory becomes the root and built-in defaults apply.
	Load(cwd string) (*domain.Project, error)
}
