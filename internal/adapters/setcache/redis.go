package setcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/zerr"
)

const redisKeyPrefix = "ikon:set:"

// Redis stores the chunks of a store in a redis list that expires as a whole.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedis connects to the redis server at url.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheConnectFailed.Error())
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheConnectFailed.Error()), "addr", opts.Addr)
	}
	return NewRedisWithClient(client, ttl), nil
}

// NewRedisWithClient creates a redis cache on an existing client. The cache owns the client.
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl, now: time.Now}
}

// Get returns every unexpired chunk of key.
func (r *Redis) Get(ctx context.Context, key domain.SetKey) ([]*domain.IconSetData, error) {
	items, err := r.client.LRange(ctx, redisKey(key), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "set", key.String())
	}

	now := r.now()
	chunks := make([]*domain.IconSetData, 0, len(items))
	var firstErr error
	for _, item := range items {
		e, err := decodeEntry([]byte(item))
		if err != nil {
			if firstErr == nil {
				firstErr = zerr.With(err, "set", key.String())
			}
			continue
		}
		if e.expired(now, r.ttl) {
			continue
		}
		chunks = append(chunks, e.Data)
	}
	return chunks, firstErr
}

// Put appends data to the list of key and refreshes its expiry.
func (r *Redis) Put(ctx context.Context, key domain.SetKey, data *domain.IconSetData) error {
	b, err := encodeEntry(r.now(), data)
	if err != nil {
		return err
	}

	k := redisKey(key)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, b)
		if r.ttl > 0 {
			pipe.Expire(ctx, k, r.ttl)
		}
		return nil
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "set", key.String())
	}
	return nil
}

// Close closes the redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func redisKey(key domain.SetKey) string {
	return redisKeyPrefix + key.Provider + ":" + key.Prefix
}
