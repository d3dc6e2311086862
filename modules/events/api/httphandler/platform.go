package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) InitializePlatform(ctx *fiber.Ctx) (err error) {
	result := h.store.InitializePlatform(ctx.UserContext())
	return errors.WithStack(sendActionResult(ctx, result))
}

type updatePlatformAdminRequest struct {
	Address string `json:"address"`
}

func (h *HttpHandler) UpdatePlatformAdmin(ctx *fiber.Ctx) (err error) {
	var req updatePlatformAdminRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}

	result := h.store.UpdatePlatformAdmin(ctx.UserContext(), req.Address)
	return errors.WithStack(sendActionResult(ctx, result))
}
