package handler

import (
	"github.com/gofiber/fiber/v2"
)

type HealthCheckHandler struct {
}

func NewHealthCheckHandler() *HealthCheckHandler {
	return &HealthCheckHandler{}
}

func (h *HealthCheckHandler) Register(r fiber.Router) {
	r.Get("/up", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
}
