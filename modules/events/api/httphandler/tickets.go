package httphandler

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gofiber/fiber/v2"
)

type ticketIDRequest struct {
	Id string `params:"id"`
}

func (r ticketIDRequest) Validate() error {
	if strings.TrimSpace(r.Id) == "" {
		return errs.NewPublicError("validation error: ticket id is required")
	}
	return nil
}

func parseTicketID(ctx *fiber.Ctx) (string, error) {
	var req ticketIDRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return "", errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return "", errors.WithStack(err)
	}
	return req.Id, nil
}

func (h *HttpHandler) MarkAttended(ctx *fiber.Ctx) (err error) {
	ticketID, err := parseTicketID(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req capRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}

	result := h.store.MarkAttended(ctx.UserContext(), ticketID, req.CapId)
	return errors.WithStack(sendActionResult(ctx, result))
}

func (h *HttpHandler) ClaimPoap(ctx *fiber.Ctx) (err error) {
	ticketID, err := parseTicketID(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	result := h.store.ClaimPoap(ctx.UserContext(), ticketID)
	return errors.WithStack(sendActionResult(ctx, result))
}

type transferTicketRequest struct {
	Recipient string `json:"recipient"`
}

func (h *HttpHandler) TransferTicket(ctx *fiber.Ctx) (err error) {
	ticketID, err := parseTicketID(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	var req transferTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}

	result := h.store.TransferEventTicket(ctx.UserContext(), ticketID, req.Recipient)
	return errors.WithStack(sendActionResult(ctx, result))
}
