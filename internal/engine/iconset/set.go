package iconset

import (
	"sync"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/zerr"
)

// IconSet is the store of one (provider, prefix) pair.
// A name is never present in both the icon maps and the missing set.
type IconSet struct {
	key domain.SetKey

	mu           sync.RWMutex
	icons        map[string]*domain.Icon
	aliases      map[string]domain.AliasData
	missing      map[string]struct{}
	lastModified int64
}

func newIconSet(key domain.SetKey) *IconSet {
	return &IconSet{
		key:     key,
		icons:   make(map[string]*domain.Icon),
		aliases: make(map[string]domain.AliasData),
		missing: make(map[string]struct{}),
	}
}

// Key returns the provider and prefix of the store.
func (s *IconSet) Key() domain.SetKey {
	return s.key
}

// AddSet validates data and imports it. Nothing is stored when validation fails.
// It returns the number of distinct names recorded, including names marked missing.
func (s *IconSet) AddSet(data *domain.IconSetData) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(data); err != nil {
		return 0, err
	}

	for _, name := range data.NotFound {
		if name == "" {
			continue
		}
		delete(s.icons, name)
		delete(s.aliases, name)
		s.missing[name] = struct{}{}
	}
	for name, icon := range data.Icons {
		s.icons[name] = newIcon(icon, data.Dimensions)
		delete(s.aliases, name)
		delete(s.missing, name)
	}
	for name, alias := range data.Aliases {
		if _, ok := data.Icons[name]; ok {
			continue
		}
		s.aliases[name] = alias
		delete(s.icons, name)
		delete(s.missing, name)
	}
	if data.LastModified > s.lastModified {
		s.lastModified = data.LastModified
	}

	return len(data.Names()), nil
}

// AddSingle inserts one icon, replacing any previous record.
// A nil record marks the name as confirmed missing.
func (s *IconSet) AddSingle(name string, data *domain.IconData) bool {
	if name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.aliases, name)
	if data == nil {
		delete(s.icons, name)
		s.missing[name] = struct{}{}
		return true
	}
	s.icons[name] = newIcon(*data, domain.Dimensions{})
	delete(s.missing, name)
	return true
}

// Get returns the icon, KnownMissing, or Unknown for a name never seen.
func (s *IconSet) Get(name string) domain.Lookup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(name)
}

// LastModified returns the newest lastModified timestamp imported.
func (s *IconSet) LastModified() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastModified
}

// Export returns the records needed to render names, in the bulk set format.
// Aliases are exported together with their parents. Names that are missing or
// unknown are listed in NotFound.
func (s *IconSet) Export(names []string) *domain.IconSetData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &domain.IconSetData{
		Provider:     s.key.Provider,
		Prefix:       s.key.Prefix,
		Icons:        make(map[string]domain.IconData),
		LastModified: s.lastModified,
	}

	for _, name := range names {
		if s.resolve(name).State != domain.Found {
			out.NotFound = append(out.NotFound, name)
			continue
		}
		current := name
		for range domain.MaxAliasDepth + 1 {
			if icon, ok := s.icons[current]; ok {
				out.Icons[current] = exportIcon(icon)
				break
			}
			alias := s.aliases[current]
			if out.Aliases == nil {
				out.Aliases = make(map[string]domain.AliasData)
			}
			out.Aliases[current] = alias
			current = alias.Parent
		}
	}
	return out
}

// markMissing records name as missing unless it already has a record.
func (s *IconSet) markMissing(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.icons[name]; ok {
		return
	}
	if _, ok := s.aliases[name]; ok {
		return
	}
	s.missing[name] = struct{}{}
}

// validate checks the shape of data. The caller holds s.mu.
func (s *IconSet) validate(data *domain.IconSetData) error {
	if data.Icons == nil {
		return zerr.With(domain.ErrInvalidIconSet, "reason", "missing icons object")
	}
	for name := range data.Icons {
		if name == "" {
			return zerr.With(domain.ErrInvalidIconSet, "reason", "empty icon name")
		}
	}

	exists := func(name string) (domain.AliasData, bool, bool) {
		if _, ok := data.Icons[name]; ok {
			return domain.AliasData{}, false, true
		}
		if alias, ok := data.Aliases[name]; ok {
			return alias, true, true
		}
		if _, ok := s.icons[name]; ok {
			return domain.AliasData{}, false, true
		}
		if alias, ok := s.aliases[name]; ok {
			return alias, true, true
		}
		return domain.AliasData{}, false, false
	}

	for name, alias := range data.Aliases {
		if name == "" {
			return zerr.With(domain.ErrInvalidIconSet, "reason", "empty alias name")
		}
		if err := checkAlias(name, alias, exists); err != nil {
			return err
		}
	}
	return nil
}

func checkAlias(name string, alias domain.AliasData, exists func(string) (domain.AliasData, bool, bool)) error {
	current := alias
	for range domain.MaxAliasDepth {
		if current.Parent == "" {
			return invalidAlias(domain.ErrUnresolvedAlias, name)
		}
		next, isAlias, ok := exists(current.Parent)
		if !ok {
			return zerr.With(invalidAlias(domain.ErrUnresolvedAlias, name), "parent", current.Parent)
		}
		if !isAlias {
			return nil
		}
		current = next
	}
	return invalidAlias(domain.ErrAliasTooDeep, name)
}

func invalidAlias(cause error, name string) error {
	return zerr.With(zerr.Wrap(cause, domain.ErrInvalidIconSet.Error()), "alias", name)
}
