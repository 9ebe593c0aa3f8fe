package loader

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/ikon/internal/core/domain"
)

// listener is one Load call waiting for its pending names.
type listener struct {
	loader *Loader
	names  []domain.IconName
	cb     Callback

	cancelled atomic.Bool
	once      sync.Once

	// Fields below are only touched on the loop.
	loaded  []domain.IconName
	missing []domain.IconName
	pending []domain.IconName
	stores  []domain.SetKey
	done    bool
}

// register partitions the names and starts fetching the unknown ones. It runs on the loop.
func (ls *listener) register() {
	if ls.cancelled.Load() {
		return
	}
	l := ls.loader
	ls.partition(ls.names)
	if len(ls.pending) == 0 {
		ls.complete()
		return
	}

	byStore := make(map[domain.SetKey][]string)
	for _, name := range ls.pending {
		key := name.Set()
		if _, ok := byStore[key]; !ok {
			ls.stores = append(ls.stores, key)
		}
		byStore[key] = append(byStore[key], name.Name)
	}
	for _, key := range ls.stores {
		s := l.store(key)
		s.listeners = append(s.listeners, ls)
		l.enqueue(key, byStore[key])
	}
}

func (ls *listener) partition(names []domain.IconName) {
	var pending []domain.IconName
	for _, name := range names {
		switch ls.loader.registry.Lookup(name).State {
		case domain.Found:
			ls.loaded = append(ls.loaded, name)
		case domain.KnownMissing:
			ls.missing = append(ls.missing, name)
		default:
			pending = append(pending, name)
		}
	}
	ls.pending = pending
}

// check moves resolved names out of the pending list and completes the listener when none is left.
func (ls *listener) check() {
	if ls.done || ls.cancelled.Load() {
		return
	}
	ls.partition(ls.pending)
	if len(ls.pending) > 0 {
		return
	}
	ls.loader.removeListener(ls)
	ls.complete()
}

func (ls *listener) complete() {
	ls.done = true
	slices.SortFunc(ls.loaded, domain.IconName.Compare)
	slices.SortFunc(ls.missing, domain.IconName.Compare)
	ls.loader.metrics.IconsResolved(len(ls.loaded), len(ls.missing))
	if ls.cancelled.Load() {
		return
	}
	ls.cb(ls.loaded, ls.missing, []domain.IconName{})
}

func (ls *listener) cancel() {
	ls.once.Do(func() {
		ls.cancelled.Store(true)
		ls.loader.loop.Post(func() {
			if !ls.done {
				ls.done = true
				ls.loader.removeListener(ls)
			}
		})
	})
}
