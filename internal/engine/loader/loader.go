// Package loader coordinates icon requests across callers.
//
// Requests for names that are not cached yet are merged per icon set store,
// so overlapping requests never fetch the same name twice. Every caller is
// notified once, after all of its names have been resolved or confirmed missing.
package loader

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/ikon/internal/engine/iconset"
	"go.trai.ch/ikon/internal/engine/loop"
	"go.trai.ch/ikon/internal/engine/redundancy"
	"go.trai.ch/zerr"
)

// Callback receives the outcome of a request.
type Callback func(loaded, missing, pending []domain.IconName)

type cacheState uint8

const (
	cacheUnchecked cacheState = iota
	cacheLoading
	cacheReady
)

// store is the coordination state of one icon set store. It is only touched on the loop.
type store struct {
	key domain.SetKey

	// pending holds the names being fetched, queued holds those not sent yet.
	pending map[string]struct{}
	queued  []string

	listeners []*listener
	cache     cacheState

	batchScheduled  bool
	updateScheduled bool
}

// Loader is the load coordinator.
type Loader struct {
	registry  *iconset.Registry
	loop      *loop.Loop
	providers map[string]*redundancy.Redundancy
	cache     ports.SetCache
	logger    ports.Logger
	metrics   ports.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	writes sync.WaitGroup

	// stores is only touched on the loop.
	stores map[domain.SetKey]*store
}

// Options configures a Loader.
type Options struct {
	Providers map[string]domain.ProviderConfig
	Transport ports.Transport
	// Cache may be nil to disable the persistent cache.
	Cache   ports.SetCache
	Logger  ports.Logger
	Tracer  ports.Tracer
	Metrics ports.Metrics
}

// New creates a loader that resolves names against registry.
func New(registry *iconset.Registry, opts Options) (*Loader, error) {
	l := &Loader{
		registry:  registry,
		loop:      loop.New(),
		providers: make(map[string]*redundancy.Redundancy, len(opts.Providers)),
		cache:     opts.Cache,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		stores:    make(map[domain.SetKey]*store),
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())

	for name, cfg := range opts.Providers {
		r, err := redundancy.New(name, cfg, l.loop, redundancy.NewSender(opts.Transport, cfg), opts.Tracer, opts.Metrics)
		if err != nil {
			l.Close()
			return nil, err
		}
		l.providers[name] = r
	}
	return l, nil
}

// Registry returns the registry the loader fills.
func (l *Loader) Registry() *iconset.Registry {
	return l.registry
}

// Close cancels running queries, stops the loop and waits for pending cache writes.
// It must not be called from a callback.
func (l *Loader) Close() {
	l.loop.Close()
	l.cancel()
	l.writes.Wait()
}

// Load requests names and calls cb once every name is loaded or missing.
// Malformed names are dropped. cb always runs on the loop, never before Load returns.
// The returned cancel function deregisters cb; fetches already started keep running.
func (l *Loader) Load(names []string, cb Callback) (cancel func()) {
	parsed, _ := l.parse(names)
	return l.load(parsed, cb)
}

func (l *Loader) parse(names []string) (valid []domain.IconName, invalid []string) {
	simple := l.registry.SimpleNames()
	for _, raw := range names {
		name, ok := domain.ParseIconName(raw, true, simple)
		if !ok {
			invalid = append(invalid, raw)
			continue
		}
		valid = append(valid, name)
	}
	slices.SortFunc(valid, domain.IconName.Compare)
	return slices.Compact(valid), invalid
}

func (l *Loader) load(names []domain.IconName, cb Callback) func() {
	ls := &listener{loader: l, names: names, cb: cb}
	if !l.loop.Post(ls.register) {
		l.logger.Warn(domain.ErrLoaderClosed.Error())
		return func() {}
	}
	return ls.cancel
}

func (l *Loader) store(key domain.SetKey) *store {
	s, ok := l.stores[key]
	if !ok {
		s = &store{key: key, pending: make(map[string]struct{})}
		if l.cache == nil {
			s.cache = cacheReady
		}
		l.stores[key] = s
	}
	return s
}

// enqueue adds the names of key that are not being fetched yet to the next batch.
func (l *Loader) enqueue(key domain.SetKey, names []string) {
	s := l.store(key)
	for _, name := range names {
		if _, ok := s.pending[name]; ok {
			continue
		}
		s.pending[name] = struct{}{}
		s.queued = append(s.queued, name)
	}
	if len(s.queued) > 0 && !s.batchScheduled {
		s.batchScheduled = true
		l.loop.Post(func() { l.flush(s) })
	}
}

// flush sends the queued names of s. The persistent cache is consulted once per store before the first fetch.
func (l *Loader) flush(s *store) {
	s.batchScheduled = false

	switch s.cache {
	case cacheUnchecked:
		s.cache = cacheLoading
		go l.readCache(s)
		return
	case cacheLoading:
		return
	}

	queued := s.queued
	s.queued = nil

	var names []string
	set := l.registry.Set(s.key)
	for _, name := range queued {
		if set.Get(name).State != domain.Unknown {
			delete(s.pending, name)
			continue
		}
		names = append(names, name)
	}
	if len(names) < len(queued) {
		l.scheduleUpdate(s)
	}
	if len(names) == 0 {
		return
	}

	r, ok := l.providers[s.key.Provider]
	if !ok {
		l.logger.Warn(zerr.With(domain.ErrProviderNotConfigured, "provider", s.key.Provider).Error())
		l.settle(s, names)
		return
	}

	for _, batch := range redundancy.Prepare(r.Config(), s.key, names) {
		r.Query(l.ctx, batch, func(data *domain.IconSetData, err error) {
			l.onQueryDone(s, batch, data, err)
		})
	}
}

func (l *Loader) readCache(s *store) {
	chunks, err := l.cache.Get(l.ctx, s.key)
	l.loop.Post(func() {
		if err != nil {
			l.logger.Error(zerr.With(err, "set", s.key.String()))
		}
		for _, chunk := range chunks {
			if _, err := l.registry.AddSet(s.key.Provider, chunk); err != nil {
				l.logger.Error(zerr.With(err, "set", s.key.String()))
			}
		}
		s.cache = cacheReady
		l.flush(s)
	})
}

func (l *Loader) onQueryDone(s *store, batch redundancy.Batch, data *domain.IconSetData, err error) {
	if err != nil {
		l.logger.Error(zerr.With(err, "set", s.key.String()))
		l.settle(s, batch.Names)
		return
	}

	if _, err := l.registry.AddSet(s.key.Provider, data); err != nil {
		l.logger.Error(zerr.With(err, "set", s.key.String()))
		l.settle(s, batch.Names)
		return
	}
	if l.cache != nil {
		l.writes.Go(func() {
			if err := l.cache.Put(context.WithoutCancel(l.ctx), s.key, data); err != nil {
				l.logger.Error(zerr.With(err, "set", s.key.String()))
			}
		})
	}
	l.settle(s, batch.Names)
}

// settle marks every name of names that is still unknown as missing, and notifies listeners.
func (l *Loader) settle(s *store, names []string) {
	set := l.registry.Set(s.key)
	for _, name := range names {
		delete(s.pending, name)
		if set.Get(name).State == domain.Unknown {
			l.registry.MarkMissing(domain.IconName{Provider: s.key.Provider, Prefix: s.key.Prefix, Name: name})
		}
	}
	l.scheduleUpdate(s)
}

// scheduleUpdate re-checks the listeners of s on the next turn, once per turn.
func (l *Loader) scheduleUpdate(s *store) {
	if s.updateScheduled {
		return
	}
	s.updateScheduled = true
	l.loop.Post(func() {
		s.updateScheduled = false
		for _, ls := range slices.Clone(s.listeners) {
			ls.check()
		}
	})
}

// AddSet imports data into the registry on the loop and re-checks the listeners
// waiting on its store. It is used for data that arrives outside of a query,
// such as reloaded local icon sets.
func (l *Loader) AddSet(data *domain.IconSetData) (int, error) {
	type outcome struct {
		n   int
		err error
	}
	ch := make(chan outcome, 1)
	if !l.loop.Post(func() {
		n, err := l.registry.AddSet("", data)
		if err == nil {
			key := domain.SetKey{Provider: data.Provider, Prefix: data.Prefix}
			if s, ok := l.stores[key]; ok {
				l.scheduleUpdate(s)
			}
		}
		ch <- outcome{n: n, err: err}
	}) {
		return 0, domain.ErrLoaderClosed
	}
	select {
	case out := <-ch:
		return out.n, out.err
	case <-l.ctx.Done():
		return 0, domain.ErrLoaderClosed
	}
}

func (l *Loader) removeListener(ls *listener) {
	for _, key := range ls.stores {
		s := l.stores[key]
		s.listeners = slices.DeleteFunc(s.listeners, func(other *listener) bool { return other == ls })
	}
}
