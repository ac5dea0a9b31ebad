package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/internal/config"
	"github.com/updatekit/updatekit/internal/handler/response"
)

// NewValidatePublisher guards the publish endpoints with the configured
// bearer token.
func NewValidatePublisher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			resp := response.BusinessError("missing Authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(resp)
		}
		token = strings.TrimPrefix(token, "Bearer ")

		conf := config.GConfig
		if conf.Auth.PublisherToken == "" {
			zap.L().Error("publisher token not configured, rejecting publish")
			return c.Status(fiber.StatusUnauthorized).JSON(response.UnexpectedError())
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(conf.Auth.PublisherToken)) != 1 {
			zap.L().Info("publisher token rejected",
				zap.String("package", c.Params("package")),
			)
			resp := response.BusinessError("invalid authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(resp)
		}

		return c.Next()
	}
}
