package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/engine/iconset"
	"go.trai.ch/ikon/internal/ui/style"
	"go.trai.ch/zerr"
)

// Validate imports each icon set file into a scratch registry and reports the result to out.
// Directories and glob patterns are expanded. Any invalid file yields ErrValidationFailed.
func (a *App) Validate(_ context.Context, paths []string, out io.Writer) error {
	files, err := a.source.Discover(paths)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		n, err := validateFile(a, path)
		if err != nil {
			_, _ = fmt.Fprintln(out, style.Failure(path+": "+err.Error()))
			failed++
			continue
		}
		_, _ = fmt.Fprintln(out, style.Success(fmt.Sprintf("%s: %d icons", path, n)))
	}
	if failed > 0 {
		return zerr.With(domain.ErrValidationFailed, "files", failed)
	}
	return nil
}

func validateFile(a *App, path string) (int, error) {
	data, err := a.source.Read(path)
	if err != nil {
		return 0, err
	}
	n, err := iconset.NewRegistry(false).AddSet("", data)
	if err != nil {
		return 0, zerr.With(err, "path", path)
	}
	if n == 0 {
		return 0, zerr.With(zerr.With(domain.ErrInvalidIconSet, "reason", "set has no icons"), "path", path)
	}
	return n, nil
}
