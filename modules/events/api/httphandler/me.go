package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type meResult struct {
	Address     *string `json:"address"`
	CanSign     bool    `json:"canSign"`
	Loading     bool    `json:"loading"`
	TicketCount int     `json:"ticketCount"`
	PoapCount   int     `json:"poapCount"`
}

type getMeResponse = HttpResponse[meResult]

func (h *HttpHandler) GetMe(ctx *fiber.Ctx) (err error) {
	result := meResult{
		CanSign:     h.wallet.CanSign(),
		Loading:     h.store.Loading(),
		TicketCount: len(h.store.UserTickets()),
		PoapCount:   len(h.store.UserPoaps()),
	}
	if address, ok := h.wallet.Address(); ok {
		result.Address = lo.ToPtr(address)
	}
	return errors.WithStack(ctx.JSON(getMeResponse{Result: &result}))
}

type getMyTicketsResponse = HttpResponse[[]ticketResponse]

func (h *HttpHandler) GetMyTickets(ctx *fiber.Ctx) (err error) {
	tickets := lo.Map(h.store.UserTickets(), mapTicket)
	return errors.WithStack(ctx.JSON(getMyTicketsResponse{Result: &tickets}))
}

type getMyPoapsResponse = HttpResponse[[]poapResponse]

func (h *HttpHandler) GetMyPoaps(ctx *fiber.Ctx) (err error) {
	poaps := lo.Map(h.store.UserPoaps(), mapPoap)
	return errors.WithStack(ctx.JSON(getMyPoapsResponse{Result: &poaps}))
}

type refreshResult struct {
	EventCount  int `json:"eventCount"`
	TicketCount int `json:"ticketCount"`
	PoapCount   int `json:"poapCount"`
}

type refreshResponse = HttpResponse[refreshResult]

func (h *HttpHandler) Refresh(ctx *fiber.Ctx) (err error) {
	if err := h.store.Refresh(ctx.UserContext()); err != nil {
		return errors.Wrap(err, "error during Refresh")
	}
	result := refreshResult{
		EventCount:  len(h.store.Events()),
		TicketCount: len(h.store.UserTickets()),
		PoapCount:   len(h.store.UserPoaps()),
	}
	return errors.WithStack(ctx.JSON(refreshResponse{Result: &result}))
}
