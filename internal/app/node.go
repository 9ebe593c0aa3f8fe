package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ikon/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/adapters/setcache"  //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/adapters/transport" //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ikon/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			transport.NodeID,
			setcache.NodeID,
			fs.SourceNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.ConcreteNodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log, Output: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	m, err := graft.Dep[*metrics.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	client, err := graft.Dep[ports.Transport](ctx)
	if err != nil {
		return nil, err
	}
	caches, err := graft.Dep[ports.SetCacheOpener](ctx)
	if err != nil {
		return nil, err
	}
	source, err := graft.Dep[ports.SetSource](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		ConfigLoader:   loader,
		Logger:         log,
		Tracer:         tracer,
		Metrics:        m,
		MetricsHandler: m.Handler(),
		Transport:      client,
		Caches:         caches,
		Source:         source,
		Watcher:        w,
	}), nil
}
