// Package fs provides file system adapters for local icon sets.
package fs

import (
	"encoding/json"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/tailscale/hujson"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SetSource = (*Source)(nil)

// Source implements ports.SetSource for JSON and JSONC files.
type Source struct{}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{}
}

// IsSetFile reports whether path has an icon set file extension.
func IsSetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}
	return false
}

// Discover resolves paths to a sorted list of icon set files.
// Glob patterns are expanded, directories contribute the set files directly inside them,
// and plain files are kept whatever their extension.
func (s *Source) Discover(paths []string) ([]string, error) {
	uniquePaths := make(map[string]bool)

	for _, path := range paths {
		matches := []string{path}
		if hasMeta(path) {
			var err error
			matches, err = filepath.Glob(path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrSetReadFailed.Error()), "path", path)
			}
			if len(matches) == 0 {
				return nil, zerr.With(zerr.With(domain.ErrSetReadFailed, "reason", "no match"), "path", path)
			}
		}

		for _, match := range matches {
			files, err := expand(match)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				uniquePaths[f] = true
			}
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	slices.Sort(result)
	return result, nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSetReadFailed.Error()), "path", path)
	}
	if !info.IsDir() {
		return []string{filepath.Clean(path)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSetReadFailed.Error()), "path", path)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSetFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[\`)
}

// Read decodes the icon set at path. Comments and trailing commas are allowed.
func (s *Source) Read(path string) (*domain.IconSetData, error) {
	//nolint:gosec // Path comes from the configured sets
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(domain.ErrSetReadFailed, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSetReadFailed.Error()), "path", path)
	}

	standardized, err := hujson.Standardize(b)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSetParseFailed.Error()), "path", path)
	}
	if !json.Valid(standardized) {
		return nil, zerr.With(domain.ErrSetParseFailed, "path", path)
	}

	data, err := domain.DecodeIconSet(standardized)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSetParseFailed.Error()), "path", path)
	}
	return data, nil
}

// Fingerprint computes the XXHash of a file's content.
func (s *Source) Fingerprint(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrSetReadFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrSetReadFailed.Error()), "path", path)
	}
	return hasher.Sum64(), nil
}
