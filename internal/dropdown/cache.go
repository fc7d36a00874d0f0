package dropdown

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKey = "orderdesk:dropdown"

type cachedProvider struct {
	next   Provider
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider keeps successful results of next in Redis for ttl.
// Redis failures are logged and served from next; errors from next are never cached.
func NewCachedProvider(next Provider, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) Provider {
	return &cachedProvider{next: next, client: client, ttl: ttl, logger: logger}
}

func (p *cachedProvider) GetDropdownData(ctx context.Context) (*Data, error) {
	raw, err := p.client.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var data Data
		if err := json.Unmarshal(raw, &data); err == nil {
			return &data, nil
		}
		p.logger.Warn("discarding unreadable dropdown cache entry", zap.Error(err))
	case !errors.Is(err, redis.Nil):
		p.logger.Warn("dropdown cache read failed", zap.Error(err))
	}

	data, err := p.next.GetDropdownData(ctx)
	if err != nil {
		return data, err
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		p.logger.Warn("encoding dropdown cache entry failed", zap.Error(err))
		return data, nil
	}
	if err := p.client.Set(ctx, cacheKey, encoded, p.ttl).Err(); err != nil {
		p.logger.Warn("dropdown cache write failed", zap.Error(err))
	}

	return data, nil
}

// Invalidate drops the cached dropdown data so the next read goes to the source.
func Invalidate(ctx context.Context, client redis.Cmdable) error {
	return client.Del(ctx, cacheKey).Err()
}
