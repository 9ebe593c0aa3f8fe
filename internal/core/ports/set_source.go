package ports

import "go.trai.ch/ikon/internal/core/domain"

// SetSource reads icon sets from local files.
//
//go:generate mockgen -source=set_source.go -destination=mocks/mock_set_source.go -package=mocks
type SetSource interface {
	// Discover expands files, directories and glob patterns into the icon set files they contain.
	Discover(paths []string) ([]string, error)
	// Read decodes the icon set stored at path.
	Read(path string) (*domain.IconSetData, error)
	// Fingerprint returns a hash of the content of path.
	Fingerprint(path string) (uint64, error)
}
