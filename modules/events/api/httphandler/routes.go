package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1")

	r.Get("/events", h.GetEvents)
	r.Post("/events", h.CreateEvent)
	r.Get("/events/:id", h.GetEventByID)
	r.Put("/events/:id", h.UpdateEvent)
	r.Post("/events/:id/purchase", h.PurchaseTicket)
	r.Post("/events/:id/close", h.CloseEvent)
	r.Post("/events/:id/withdraw", h.WithdrawRevenue)

	r.Post("/tickets/:id/attend", h.MarkAttended)
	r.Post("/tickets/:id/claim-poap", h.ClaimPoap)
	r.Post("/tickets/:id/transfer", h.TransferTicket)

	r.Get("/me", h.GetMe)
	r.Get("/me/tickets", h.GetMyTickets)
	r.Get("/me/poaps", h.GetMyPoaps)
	r.Post("/refresh", h.Refresh)

	r.Post("/platform/initialize", h.InitializePlatform)
	r.Put("/platform/admin", h.UpdatePlatformAdmin)

	r.Get("/actions", h.GetActions)
	return nil
}
