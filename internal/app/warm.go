package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WarmOptions configuration for the Warm method.
type WarmOptions struct {
	ConfigPath string
	Provider   string
	Icons      []string
}

// Warm fetches icons of every prefix and writes the responses into the persistent cache.
// Prefixes are fetched concurrently.
func (a *App) Warm(ctx context.Context, prefixes []string, opts WarmOptions) error {
	if len(prefixes) == 0 || len(opts.Icons) == 0 {
		return zerr.With(domain.ErrInvalidConfig, "reason", "warm needs at least one prefix and one icon")
	}

	e, err := a.open(ctx, opts.ConfigPath, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if e.cache == nil {
		return zerr.With(domain.ErrInvalidConfig, "field", "cache.driver")
	}

	results := make([][]string, len(prefixes))
	g, gctx := errgroup.WithContext(ctx)
	for i, prefix := range prefixes {
		g.Go(func() error {
			names := make([]string, len(opts.Icons))
			for j, icon := range opts.Icons {
				names[j] = domain.IconName{Provider: opts.Provider, Prefix: prefix, Name: icon}.String()
			}
			res, err := e.loader.LoadIcons(gctx, names)
			if err != nil {
				return zerr.With(err, "prefix", prefix)
			}
			a.logger.Info(fmt.Sprintf("%s: %d loaded, %d missing", prefix, len(res.Loaded), len(res.Missing)))
			for _, name := range res.Missing {
				results[i] = append(results[i], name.String())
			}
			results[i] = append(results[i], res.Invalid...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var missing []string
	for _, r := range results {
		missing = append(missing, r...)
	}
	if len(missing) > 0 {
		return zerr.With(domain.ErrIconsMissing, "icons", strings.Join(missing, ", "))
	}
	return nil
}
