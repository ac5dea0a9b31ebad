package handler

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/updatekit/updatekit/internal/handler/response"
	"github.com/updatekit/updatekit/internal/logic"
	"github.com/updatekit/updatekit/internal/metrics"
	"github.com/updatekit/updatekit/internal/middleware"
	"github.com/updatekit/updatekit/internal/model"
	"github.com/updatekit/updatekit/internal/pkg/digest"
	"github.com/updatekit/updatekit/internal/pkg/errs"
	"github.com/updatekit/updatekit/internal/pkg/validator"
)

const packageKey = "package"

type UpdateHandler struct {
	logger       *zap.Logger
	releaseLogic *logic.ReleaseLogic
	metrics      *metrics.Metrics
}

func NewUpdateHandler(logger *zap.Logger, releaseLogic *logic.ReleaseLogic, metrics *metrics.Metrics) *UpdateHandler {
	return &UpdateHandler{
		logger:       logger,
		releaseLogic: releaseLogic,
		metrics:      metrics,
	}
}

func (h *UpdateHandler) Register(r fiber.Router) {
	r.Get("/v1/update/:package", h.Check)
	r.Use("/v1/update/:package/releases", middleware.NewValidatePublisher())
	r.Post("/v1/update/:package/releases", h.Publish)
}

// Check serves the update payload for a package. Clients treat any
// non-200 answer as "no update", so absence is a plain 204.
func (h *UpdateHandler) Check(c *fiber.Ctx) error {
	var req model.CheckUpdateRequest
	if err := c.QueryParser(&req); err != nil {
		resp := response.BusinessError("invalid query params")
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	req.PackageName = c.Params(packageKey)
	if req.Platform == "" {
		req.Platform = model.PlatformAny
	}

	h.metrics.CheckRequests.WithLabelValues(req.Platform).Inc()

	release, err := h.releaseLogic.Latest(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, errs.ErrReleaseNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		h.logger.Error("failed to resolve latest release",
			zap.String("package", req.PackageName),
			zap.Error(err),
		)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	payload := h.releaseLogic.BuildPayload(release, req.CurrentVersion)

	body, err := sonic.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal update payload",
			zap.Error(err),
		)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	h.metrics.UpdatesServed.WithLabelValues(req.Platform).Inc()

	c.Set(fiber.HeaderETag, `W/"`+digest.Sum(body)+`"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func (h *UpdateHandler) Publish(c *fiber.Ctx) error {
	packageName := c.Params(packageKey)

	var req model.PublishReleaseRequest
	if err := c.BodyParser(&req); err != nil {
		resp := response.BusinessError("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	if details, ok := validator.Struct(req); !ok {
		resp := response.New(response.CodeBusiness, "validation failed", details)
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	release, err := h.releaseLogic.Publish(c.UserContext(), packageName, req)
	if err != nil {
		return h.renderError(c, err)
	}

	h.metrics.ReleasesPublished.Inc()

	resp := response.Success(model.PublishReleaseResponseData{
		ID:          release.ID,
		VersionName: release.VersionName,
		Platform:    release.Platform,
	})
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *UpdateHandler) renderError(c *fiber.Ctx, err error) error {
	var bizErr *errs.Error
	if errors.As(err, &bizErr) {
		if bizErr.BizCode() == -1 {
			h.logger.Error("unexpected error",
				zap.Error(err),
			)
			return c.Status(bizErr.HTTPCode()).JSON(response.UnexpectedError())
		}
		resp := response.New(bizErr.BizCode(), bizErr.Message(), bizErr.Details())
		return c.Status(bizErr.HTTPCode()).JSON(resp)
	}
	h.logger.Error("unhandled error",
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(response.UnexpectedError())
}
