package app

import (
	"go.trai.ch/ikon/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/core/ports"
)

// Components contains the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
	// Output lets the command layer pick the log format once flags are parsed.
	Output *logger.Logger
}
