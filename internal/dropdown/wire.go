package dropdown

import (
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewModule builds the dropdown controller. client may be nil to disable caching.
func NewModule(source Source, locale string, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Controller {
	provider := NewService(source, locale, logger)
	if client != nil {
		provider = NewCachedProvider(provider, client, ttl, logger)
	}
	return NewController(provider, logger)
}
