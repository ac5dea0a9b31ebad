package main

import (
	"fmt"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/internal/cache"
	"github.com/updatekit/updatekit/internal/config"
	"github.com/updatekit/updatekit/internal/db"
	"github.com/updatekit/updatekit/internal/logger"
	"github.com/updatekit/updatekit/internal/metrics"
	"github.com/updatekit/updatekit/internal/pkg/shutdown"
	"github.com/updatekit/updatekit/internal/wire"
	"github.com/updatekit/updatekit/version"
)

const BodyLimit = 10 * 1024 * 1024

func main() {

	setUpConfigAndLog()

	// deps
	var (
		rdb        = db.NewRedis(config.GConfig)
		redSync    = db.NewRedSync(rdb)
		group      = cache.NewReleaseCacheGroup(rdb)
		comparator = version.NewComparator()
		m          = metrics.New()
		app        = fiber.New(fiber.Config{
			BodyLimit:   BodyLimit,
			ProxyHeader: fiber.HeaderXForwardedFor,
		})
	)

	handlerSet := wire.NewHandlerSet(zap.L(), config.GConfig, rdb, redSync, group, comparator, m)

	initRoute(app, handlerSet)

	addr := fmt.Sprintf(":%d", config.GConfig.Server.Port)

	go func() {
		if err := app.Listen(addr); err != nil {
			zap.L().Fatal("failed to start server",
				zap.Error(err),
			)
		}
	}()

	shutdown.GracefulStop(func() {
		if err := app.Shutdown(); err != nil {
			zap.L().Error("failed to shutdown server",
				zap.Error(err),
			)
		}
		if err := rdb.Close(); err != nil {
			zap.L().Error("failed to close redis",
				zap.Error(err),
			)
		}
	})
}

func setUpConfigAndLog() {
	config.GConfig = config.New()
	zap.ReplaceGlobals(logger.New(config.GConfig))
}

func initRoute(app *fiber.App, handlerSet *wire.HandlerSet) {
	app.Use(fiberzap.New(fiberzap.Config{
		Logger: zap.L(),
	}))

	r := app.Group("/")

	handlerSet.UpdateHandler.Register(r)

	handlerSet.MetricsHandler.Register(r)

	handlerSet.HealthCheckHandler.Register(r)
}
