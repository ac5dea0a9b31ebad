package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/internal/model"
)

const evictChannel = "updatekit:evict"

// ReleaseCacheGroup holds the read caches in front of the release repo.
type ReleaseCacheGroup struct {
	// key: package:platform:region:test_group
	LatestReleaseCache *Cache[string, *model.Release]
}

func (g *ReleaseCacheGroup) EvictAll() {
	g.LatestReleaseCache.EvictAll()
}

// NewReleaseCacheGroup builds the caches and subscribes to the shared
// evict channel, so a publish on any instance flushes all of them.
func NewReleaseCacheGroup(rdb *redis.Client) *ReleaseCacheGroup {
	group := &ReleaseCacheGroup{
		LatestReleaseCache: NewCache[string, *model.Release](12 * time.Hour),
	}
	subscribeCacheEvict(rdb, group)
	return group
}

// NotifyEvict asks every instance, including this one, to drop its
// release caches.
func NotifyEvict(ctx context.Context, rdb *redis.Client, reason string) {
	if err := rdb.Publish(ctx, evictChannel, reason).Err(); err != nil {
		zap.L().Error("failed to publish cache evict",
			zap.Error(err),
		)
	}
}

func subscribeCacheEvict(rdb *redis.Client, group *ReleaseCacheGroup) {
	var (
		logger = zap.L()
		ctx    = context.Background()
	)

	subscribe := rdb.Subscribe(ctx, evictChannel)
	go func() {
		for {
			msg, err := subscribe.ReceiveMessage(ctx)
			if err != nil {
				logger.Error("failed to receive message",
					zap.Error(err),
				)
				continue
			}
			group.EvictAll()
			logger.Info("cache evict",
				zap.String("reason", msg.Payload),
			)
		}
	}()
}
