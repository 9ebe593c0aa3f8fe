// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ikon/internal/adapters/config"
	_ "go.trai.ch/ikon/internal/adapters/fs"
	_ "go.trai.ch/ikon/internal/adapters/logger"
	_ "go.trai.ch/ikon/internal/adapters/metrics"
	_ "go.trai.ch/ikon/internal/adapters/setcache"
	_ "go.trai.ch/ikon/internal/adapters/telemetry"
	_ "go.trai.ch/ikon/internal/adapters/transport"
	_ "go.trai.ch/ikon/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/ikon/internal/app"
)
