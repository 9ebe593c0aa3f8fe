package app

import (
	"cmp"
	"context"
	"net"

	"go.trai.ch/ikon/internal/adapters/server"
	"go.trai.ch/ikon/internal/adapters/watcher"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	ConfigPath string
	// Addr overrides the configured listen address.
	Addr string
	// Ready, when set, receives the bound address once the server listens.
	Ready func(net.Addr)
}

// Serve runs the HTTP delivery server until ctx is done.
// With server.watch, changed local icon sets are reloaded while serving.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	e, err := a.open(ctx, opts.ConfigPath, false)
	if err != nil {
		return err
	}
	defer e.Close()

	addr := cmp.Or(opts.Addr, e.cfg.Server.Addr)
	srv := server.New(e, a.metricsHandler, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, addr, func(bound net.Addr) {
			a.logger.Info("serving icons on " + bound.String())
			if opts.Ready != nil {
				opts.Ready(bound)
			}
		})
	})

	if e.cfg.Server.Watch && len(e.cfg.Sets) > 0 {
		g.Go(func() error {
			return a.watchSets(gctx, e)
		})
	}

	return g.Wait()
}

// watchSets reloads local icon sets on change until ctx is done.
func (a *App) watchSets(ctx context.Context, e *Engine) error {
	if err := a.watcher.Start(ctx, e.watchPaths()); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, e.reload)
	for event := range a.watcher.Events() {
		debouncer.Add(event.Path)
	}
	debouncer.Flush()
	return nil
}
