//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/internal/cache"
	"github.com/updatekit/updatekit/internal/config"
	"github.com/updatekit/updatekit/internal/handler"
	"github.com/updatekit/updatekit/internal/logic"
	"github.com/updatekit/updatekit/internal/metrics"
	"github.com/updatekit/updatekit/internal/repo"
	"github.com/updatekit/updatekit/version"
)

type HandlerSet struct {
	UpdateHandler      *handler.UpdateHandler
	MetricsHandler     *handler.MetricsHandler
	HealthCheckHandler *handler.HealthCheckHandler
}

func NewHandlerSet(
	logger *zap.Logger,
	conf *config.Config,
	rdb *redis.Client,
	redsync *redsync.Redsync,
	cg *cache.ReleaseCacheGroup,
	comparator *version.Comparator,
	m *metrics.Metrics,
) *HandlerSet {
	panic(wire.Build(
		repo.Provider,
		logic.Provider,
		handler.Provider,
		wire.Struct(new(HandlerSet), "*"),
	))
}
