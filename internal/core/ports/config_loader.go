package ports

import "go.trai.ch/ikon/internal/core/domain"

// ConfigLoader defines the interface for loading the engine configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from path, or from ikon.yaml in cwd when path is empty.
	// A missing default config file yields the default configuration.
	Load(cwd, path string) (*domain.Config, error)
}
