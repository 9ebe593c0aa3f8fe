// Package iconset implements the icon set store and alias resolution.
package iconset

import (
	"sync"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry owns every icon set store of one engine instance.
// Stores are created lazily on first access and live as long as the registry.
type Registry struct {
	mu          sync.RWMutex
	sets        map[domain.SetKey]*IconSet
	simpleNames bool
}

// NewRegistry creates an empty registry.
// When simpleNames is set, icons without a prefix are accepted in the "" store.
func NewRegistry(simpleNames bool) *Registry {
	return &Registry{
		sets:        make(map[domain.SetKey]*IconSet),
		simpleNames: simpleNames,
	}
}

// SimpleNames reports whether bare icon names are accepted.
func (r *Registry) SimpleNames() bool {
	return r.simpleNames
}

// Set returns the store for key, creating it on first use.
func (r *Registry) Set(key domain.SetKey) *IconSet {
	r.mu.RLock()
	s, ok := r.sets[key]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.sets[key]; ok {
		return s
	}
	s = newIconSet(key)
	r.sets[key] = s
	return s
}

// Keys returns the keys of every store created so far.
func (r *Registry) Keys() []domain.SetKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]domain.SetKey, 0, len(r.sets))
	for k := range r.sets {
		keys = append(keys, k)
	}
	return keys
}

// AddSet validates data and imports it into the store of (provider, data.Prefix).
// A provider declared inside data takes precedence over the provider argument.
// It returns the number of names recorded, including names marked missing.
// Invalid sets are rejected as a whole.
func (r *Registry) AddSet(provider string, data *domain.IconSetData) (int, error) {
	if data == nil {
		return 0, domain.ErrInvalidIconSet
	}
	if data.Provider != "" {
		provider = data.Provider
	}
	if err := r.validatePrefix(provider, data.Prefix); err != nil {
		return 0, err
	}
	return r.Set(domain.SetKey{Provider: provider, Prefix: data.Prefix}).AddSet(data)
}

// AddIcon inserts a single icon, or marks it missing when data is nil.
func (r *Registry) AddIcon(name domain.IconName, data *domain.IconData) bool {
	if name.Name == "" {
		return false
	}
	if r.validatePrefix(name.Provider, name.Prefix) != nil {
		return false
	}
	return r.Set(name.Set()).AddSingle(name.Name, data)
}

// Lookup returns the three-valued state of name.
func (r *Registry) Lookup(name domain.IconName) domain.Lookup {
	return r.Set(name.Set()).Get(name.Name)
}

// Resolve returns the composed icon for name, or false if it does not resolve.
func (r *Registry) Resolve(name domain.IconName) (*domain.Icon, bool) {
	l := r.Lookup(name)
	if l.State != domain.Found {
		return nil, false
	}
	return l.Icon, true
}

// MarkMissing records name as confirmed absent unless it already resolves.
func (r *Registry) MarkMissing(name domain.IconName) {
	r.Set(name.Set()).markMissing(name.Name)
}

func (r *Registry) validatePrefix(provider, prefix string) error {
	if prefix == "" {
		if r.simpleNames && provider == "" {
			return nil
		}
		return zerr.With(domain.ErrInvalidIconSet, "reason", "missing prefix")
	}
	if !domain.ValidName(prefix) {
		return zerr.With(domain.ErrInvalidIconSet, "prefix", prefix)
	}
	if provider != "" && !domain.ValidName(provider) {
		return zerr.With(domain.ErrInvalidIconSet, "provider", provider)
	}
	return nil
}
