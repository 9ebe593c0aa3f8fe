package ports

import (
	"context"

	"go.trai.ch/ikon/internal/core/domain"
)

// SetCache persists icon set responses across process restarts.
//
//go:generate mockgen -source=set_cache.go -destination=mocks/mock_set_cache.go -package=mocks
type SetCache interface {
	// Get returns every unexpired cached chunk for the store.
	// An empty result is not an error.
	Get(ctx context.Context, key domain.SetKey) ([]*domain.IconSetData, error)
	// Put appends a chunk for the store.
	Put(ctx context.Context, key domain.SetKey, data *domain.IconSetData) error
	// Close releases the backend.
	Close() error
}

// SetCacheOpener opens the cache backend selected by the configuration.
type SetCacheOpener interface {
	// Open connects to the backend named by cfg.Driver.
	Open(ctx context.Context, cfg domain.CacheConfig) (SetCache, error)
}
