// Package setcache implements ports.SetCache on disk, redis and sqlite.
package setcache

import (
	"context"
	"encoding/json"
	"time"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/zerr"
)

// entry is the stored form of a cached chunk.
type entry struct {
	SavedAt time.Time           `json:"savedAt"`
	Data    *domain.IconSetData `json:"data"`
}

func (e entry) expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(e.SavedAt) > ttl
}

func encodeEntry(now time.Time, data *domain.IconSetData) ([]byte, error) {
	b, err := json.Marshal(entry{SavedAt: now.UTC(), Data: data})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return b, nil
}

func decodeEntry(b []byte) (entry, error) {
	var e entry
	if err := json.Unmarshal(b, &e); err != nil {
		return entry{}, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	if e.Data == nil || e.Data.Icons == nil {
		return entry{}, zerr.With(domain.ErrCacheReadFailed, "reason", "entry has no icon set")
	}
	return e, nil
}

// Opener opens the cache backend selected by the configuration.
type Opener struct{}

var _ ports.SetCacheOpener = Opener{}

// Open connects to the backend named by cfg.Driver.
func (Opener) Open(ctx context.Context, cfg domain.CacheConfig) (ports.SetCache, error) {
	switch cfg.Driver {
	case domain.CacheNone, "":
		return None{}, nil
	case domain.CacheDisk:
		return NewDisk(cfg.Path, cfg.TTL)
	case domain.CacheRedis:
		return NewRedis(ctx, cfg.URL, cfg.TTL)
	case domain.CacheSQLite:
		return NewSQLite(ctx, domain.DefaultSQLitePath(cfg.Path), cfg.TTL)
	default:
		return nil, zerr.With(domain.ErrUnknownCacheDriver, "driver", string(cfg.Driver))
	}
}

// None is a cache that stores nothing.
type None struct{}

// Get returns no chunks.
func (None) Get(context.Context, domain.SetKey) ([]*domain.IconSetData, error) { return nil, nil }

// Put discards data.
func (None) Put(context.Context, domain.SetKey, *domain.IconSetData) error { return nil }

// Close does nothing.
func (None) Close() error { return nil }
