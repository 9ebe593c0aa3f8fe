package app

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/ikon/internal/engine/iconset"
	"go.trai.ch/ikon/internal/engine/loader"
	"go.trai.ch/ikon/internal/engine/svg"
	"go.trai.ch/zerr"
)

// Engine is one configured instance of the icon engine.
type Engine struct {
	cfg      *domain.Config
	registry *iconset.Registry
	loader   *loader.Loader
	cache    ports.SetCache
	source   ports.SetSource
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics
	shutdown func(context.Context) error

	mu           sync.Mutex
	files        []string
	fingerprints map[string]uint64
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() *domain.Config {
	return e.cfg
}

// Close stops the loader, waits for cache writes and flushes traces.
func (e *Engine) Close() {
	if e.loader != nil {
		e.loader.Close()
	}
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error(err)
		}
	}
	if e.shutdown != nil {
		if err := e.shutdown(context.Background()); err != nil {
			e.logger.Warn(err.Error())
		}
	}
}

// importSets loads the configured local icon sets. Invalid files are logged and skipped.
func (e *Engine) importSets() error {
	if len(e.cfg.Sets) == 0 {
		return nil
	}
	files, err := e.source.Discover(e.cfg.Sets)
	if err != nil {
		return err
	}
	e.files = files
	for _, path := range files {
		e.importFile(path)
	}
	return nil
}

// reload re-imports the files of paths whose content changed since the last import.
func (e *Engine) reload(paths []string) {
	for _, path := range paths {
		e.importFile(path)
	}
}

func (e *Engine) importFile(path string) {
	fp, err := e.source.Fingerprint(path)
	if err != nil {
		e.mu.Lock()
		delete(e.fingerprints, path)
		e.mu.Unlock()
		e.logger.Warn(err.Error())
		return
	}

	e.mu.Lock()
	previous, seen := e.fingerprints[path]
	e.mu.Unlock()
	if seen && previous == fp {
		return
	}

	data, err := e.source.Read(path)
	if err != nil {
		e.logger.Error(err)
		return
	}
	n, err := e.addSet(data)
	if err != nil {
		e.logger.Error(zerr.With(err, "path", path))
		return
	}

	e.mu.Lock()
	e.fingerprints[path] = fp
	e.mu.Unlock()

	verb := "imported"
	if seen {
		verb = "reloaded"
	}
	e.logger.Info(fmt.Sprintf("%s %d icons from %s", verb, n, path))
}

// addSet imports through the loader once it runs, so waiting listeners see reloaded sets.
func (e *Engine) addSet(data *domain.IconSetData) (int, error) {
	if e.loader == nil {
		return e.registry.AddSet("", data)
	}
	return e.loader.AddSet(data)
}

// Export resolves names of the store key and returns them in the icon set format.
// Names that are invalid or confirmed missing are listed in NotFound.
func (e *Engine) Export(ctx context.Context, key domain.SetKey, names []string) (*domain.IconSetData, error) {
	full := make([]string, len(names))
	for i, name := range names {
		full[i] = domain.IconName{Provider: key.Provider, Prefix: key.Prefix, Name: name}.String()
	}
	if _, err := e.loader.LoadIcons(ctx, full); err != nil {
		return nil, err
	}
	return e.registry.Set(key).Export(names), nil
}

// RenderSVG resolves an icon and renders it as an SVG document.
func (e *Engine) RenderSVG(ctx context.Context, name string, req domain.RenderRequest) (string, error) {
	ctx, span := e.tracer.Start(ctx, "ikon.render")
	defer span.End()
	span.SetAttribute("icon", name)

	icon, err := e.loader.LoadIcon(ctx, name)
	if err != nil {
		if !domain.HasKind(err, domain.ErrIconNotFound) {
			span.RecordError(err)
		}
		return "", err
	}

	res := svg.Build(icon, svg.ParseCustomisations(req.Width, req.Height, req.Flip, req.Rotate, req.Inline))
	if req.Box {
		res.Body += boxRect(res.ViewBox)
	}
	e.metrics.IconRendered()
	return svg.ToHTML(res), nil
}

// boxRect is an invisible rectangle covering the viewBox.
func boxRect(vb [4]float64) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return `<rect x="` + f(vb[0]) + `" y="` + f(vb[1]) + `" width="` + f(vb[2]) + `" height="` + f(vb[3]) + `" fill="rgba(0, 0, 0, 0)" />`
}

// watchPaths returns the paths the set watcher observes: configured files and
// directories, plus every file matched by a glob.
func (e *Engine) watchPaths() []string {
	var paths []string
	for _, set := range e.cfg.Sets {
		if !strings.ContainsAny(set, `*?[\`) {
			paths = append(paths, set)
		}
	}
	paths = append(paths, e.files...)
	slices.Sort(paths)
	return slices.Compact(paths)
}
