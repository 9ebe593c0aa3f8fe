package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/engine/svg"
	"go.trai.ch/zerr"
)

// RenderOptions configuration for the Render method.
type RenderOptions struct {
	ConfigPath string
	Request    domain.RenderRequest
	// OutDir receives one file per icon. When empty, documents are written to Out.
	OutDir string
	Out    io.Writer
}

// Render resolves names and renders each as an SVG document.
// Every name that could be rendered is written even when others are missing;
// the missing ones are then reported with ErrIconsMissing.
// Documents printed together to Out get unique element ids.
func (a *App) Render(ctx context.Context, names []string, opts RenderOptions) error {
	e, err := a.open(ctx, opts.ConfigPath, false)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.loader.LoadIcons(ctx, names); err != nil {
		return err
	}

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", opts.OutDir)
		}
	}

	var missing []string
	for _, raw := range names {
		doc, err := e.RenderSVG(ctx, raw, opts.Request)
		if err != nil {
			if domain.HasKind(err, domain.ErrIconNotFound) || domain.HasKind(err, domain.ErrInvalidIconName) {
				missing = append(missing, raw)
				continue
			}
			return err
		}
		if opts.OutDir == "" && len(names) > 1 {
			doc = svg.ReplaceIDs(doc, nil)
		}
		if err := a.writeDocument(e, raw, doc, opts); err != nil {
			return err
		}
	}

	if len(missing) > 0 {
		return zerr.With(domain.ErrIconsMissing, "icons", strings.Join(missing, ", "))
	}
	return nil
}

func (a *App) writeDocument(e *Engine, raw, doc string, opts RenderOptions) error {
	if opts.OutDir == "" {
		if _, err := io.WriteString(opts.Out, doc+"\n"); err != nil {
			return zerr.Wrap(err, domain.ErrRenderFailed.Error())
		}
		return nil
	}

	name, _ := domain.ParseIconName(raw, true, e.registry.SimpleNames())
	path := filepath.Join(opts.OutDir, FileName(name))
	if err := atomic.WriteFile(path, strings.NewReader(doc)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", path)
	}
	if err := os.Chmod(path, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "path", path)
	}
	a.logger.Info("wrote " + path)
	return nil
}

// FileName returns the file name an icon is rendered to, such as mdi-home.svg.
func FileName(name domain.IconName) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{name.Provider, name.Prefix, name.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-") + ".svg"
}
