package domain

import (
	"cmp"
	"regexp"
	"strings"
)

var nameSegments = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// SetKey identifies one icon set store.
type SetKey struct {
	Provider string
	Prefix   string
}

// String returns "provider:prefix", or just the prefix for the default provider.
func (k SetKey) String() string {
	if k.Provider == "" {
		return k.Prefix
	}
	return k.Provider + ":" + k.Prefix
}

// IconName identifies a single icon.
type IconName struct {
	Provider string
	Prefix   string
	Name     string
}

// Set returns the key of the store the icon belongs to.
func (n IconName) Set() SetKey {
	return SetKey{Provider: n.Provider, Prefix: n.Prefix}
}

// String returns the canonical form of the name.
func (n IconName) String() string {
	var b strings.Builder
	if n.Provider != "" {
		b.WriteString("@")
		b.WriteString(n.Provider)
		b.WriteString(":")
	}
	if n.Prefix != "" {
		b.WriteString(n.Prefix)
		b.WriteString(":")
	}
	b.WriteString(n.Name)
	return b.String()
}

// Compare orders names by provider, prefix and name.
func (n IconName) Compare(o IconName) int {
	if c := cmp.Compare(n.Provider, o.Provider); c != 0 {
		return c
	}
	if c := cmp.Compare(n.Prefix, o.Prefix); c != 0 {
		return c
	}
	return cmp.Compare(n.Name, o.Name)
}

// ParseIconName parses raw into an IconName.
//
// Accepted forms are "prefix:name", "prefix-name", "provider:prefix:name" and
// "@provider:prefix:name". A bare "name" is accepted only when allowSimpleName
// is set and no provider was given. When validate is set, provider, prefix and
// name must consist of lowercase alphanumeric segments joined by single hyphens.
// The second return value is false for any malformed input.
func ParseIconName(raw string, validate, allowSimpleName bool) (IconName, bool) {
	parts := strings.Split(raw, ":")
	provider := ""

	if strings.HasPrefix(raw, "@") {
		if len(parts) < 2 || len(parts) > 3 {
			return IconName{}, false
		}
		provider = parts[0][1:]
		parts = parts[1:]
	}

	if len(parts) > 3 {
		return IconName{}, false
	}

	if len(parts) > 1 {
		n := IconName{
			Provider: provider,
			Prefix:   parts[len(parts)-2],
			Name:     parts[len(parts)-1],
		}
		if len(parts) == 3 {
			n.Provider = parts[0]
		}
		return n, n.valid(validate, false)
	}

	if prefix, name, ok := strings.Cut(parts[0], "-"); ok {
		n := IconName{Provider: provider, Prefix: prefix, Name: name}
		return n, n.valid(validate, false)
	}

	if allowSimpleName && provider == "" {
		n := IconName{Name: parts[0]}
		return n, n.valid(validate, true)
	}

	return IconName{}, false
}

// MustParseIconName parses a canonical name and panics on failure. It is meant for tests and constants.
func MustParseIconName(raw string) IconName {
	n, ok := ParseIconName(raw, true, false)
	if !ok {
		panic("invalid icon name: " + raw)
	}
	return n
}

func (n IconName) valid(validate, simple bool) bool {
	if n.Name == "" {
		return false
	}
	if n.Prefix == "" && !simple {
		return false
	}
	if !validate {
		return true
	}
	if n.Provider != "" && !nameSegments.MatchString(n.Provider) {
		return false
	}
	if !(simple && n.Prefix == "") && !nameSegments.MatchString(n.Prefix) {
		return false
	}
	return nameSegments.MatchString(n.Name)
}

// ValidName reports whether s is a valid prefix or icon name.
func ValidName(s string) bool {
	return nameSegments.MatchString(s)
}
