package loader

import (
	"context"
	"slices"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/zerr"
)

// Result is the outcome of LoadIcons.
type Result struct {
	Loaded  []domain.IconName
	Missing []domain.IconName
	// Pending lists the names still unresolved when ctx was cancelled.
	Pending []domain.IconName
	// Invalid lists the inputs that are not valid icon names.
	Invalid []string
}

// LoadIcons requests names and blocks until every valid name is loaded or missing, or ctx is done.
// Cancelling ctx deregisters the request only; fetches already started keep running.
func (l *Loader) LoadIcons(ctx context.Context, names []string) (Result, error) {
	parsed, invalid := l.parse(names)
	res := Result{Invalid: invalid}

	type outcome struct{ loaded, missing []domain.IconName }
	ch := make(chan outcome, 1)
	cancel := l.load(parsed, func(loaded, missing, _ []domain.IconName) {
		ch <- outcome{loaded: loaded, missing: missing}
	})

	select {
	case out := <-ch:
		res.Loaded, res.Missing = out.loaded, out.missing
		return res, nil
	case <-l.ctx.Done():
		res.Pending = parsed
		return res, domain.ErrLoaderClosed
	case <-ctx.Done():
		cancel()
		res.Pending = parsed
		return res, zerr.Wrap(ctx.Err(), domain.ErrQueryAborted.Error())
	}
}

// LoadIcon loads a single icon and returns it composed.
func (l *Loader) LoadIcon(ctx context.Context, raw string) (*domain.Icon, error) {
	name, ok := domain.ParseIconName(raw, true, l.registry.SimpleNames())
	if !ok {
		return nil, zerr.With(domain.ErrInvalidIconName, "icon", raw)
	}

	if icon, ok := l.registry.Resolve(name); ok {
		return icon, nil
	}

	res, err := l.LoadIcons(ctx, []string{raw})
	if err != nil {
		return nil, err
	}
	if slices.Contains(res.Missing, name) {
		return nil, zerr.With(domain.ErrIconNotFound, "icon", name.String())
	}

	icon, ok := l.registry.Resolve(name)
	if !ok {
		return nil, zerr.With(domain.ErrIconNotFound, "icon", name.String())
	}
	return icon, nil
}
