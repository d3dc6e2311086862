package httphandler

import (
	"time"

	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type ticketTypeResponse struct {
	Id              int    `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	MaxSupply       uint64 `json:"maxSupply"`
	RemainingSupply uint64 `json:"remainingSupply"`
	CoverImg        string `json:"coverImg"`
}

type eventResponse struct {
	Id          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Location    string               `json:"location"`
	Timestamp   int64                `json:"timestamp"` // unix ms
	ImageUrl    string               `json:"imageUrl"`
	Organizer   string               `json:"organizer"`
	IsPaid      bool                 `json:"isPaid"`
	Closed      bool                 `json:"closed"`
	TicketTypes []ticketTypeResponse `json:"ticketTypes"`
}

type ticketResponse struct {
	Id           string           `json:"id"`
	EventId      string           `json:"eventId"`
	TicketTypeId int              `json:"ticketTypeId"`
	EventName    entity.EventName `json:"eventName"`
	Owner        string           `json:"owner"`
	Attended     bool             `json:"attended"`
	PoapClaimed  bool             `json:"poapClaimed"`
}

type poapResponse struct {
	Id        string           `json:"id"`
	EventId   string           `json:"eventId"`
	EventName entity.EventName `json:"eventName"`
	ImageUrl  string           `json:"imageUrl"`
	ClaimedAt int64            `json:"claimedAt"` // unix ms
}

type actionResultResponse struct {
	Success bool   `json:"success"`
	Digest  string `json:"digest,omitempty"`
	Message string `json:"message,omitempty"`
}

type actionResponse struct {
	Id        string    `json:"id"`
	Kind      string    `json:"kind"`
	Sender    string    `json:"sender"`
	Target    string    `json:"target"`
	Digest    string    `json:"digest"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func mapEvent(e entity.Event) eventResponse {
	return eventResponse{
		Id:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		Timestamp:   e.Timestamp.UnixMilli(),
		ImageUrl:    e.ImageURL,
		Organizer:   e.Organizer,
		IsPaid:      e.IsPaid,
		Closed:      e.Closed,
		TicketTypes: lo.Map(e.TicketTypes, func(t entity.TicketType, _ int) ticketTypeResponse {
			return ticketTypeResponse{
				Id:              t.ID,
				Name:            t.Name,
				Description:     t.Description,
				Price:           t.Price,
				MaxSupply:       t.MaxSupply,
				RemainingSupply: t.RemainingSupply,
				CoverImg:        t.ImageURL,
			}
		}),
	}
}

func mapEvents(events []entity.Event) []eventResponse {
	return lo.Map(events, func(e entity.Event, _ int) eventResponse { return mapEvent(e) })
}

func mapTicket(t entity.Ticket, _ int) ticketResponse {
	return ticketResponse{
		Id:           t.ID,
		EventId:      t.EventID,
		TicketTypeId: t.TicketTypeID,
		EventName:    t.EventName,
		Owner:        t.Owner,
		Attended:     t.Attended,
		PoapClaimed:  t.PoapClaimed,
	}
}

func mapPoap(p entity.Poap, _ int) poapResponse {
	return poapResponse{
		Id:        p.ID,
		EventId:   p.EventID,
		EventName: p.EventName,
		ImageUrl:  p.ImageURL,
		ClaimedAt: p.ClaimedAt.UnixMilli(),
	}
}

func mapAction(a entity.Action, _ int) actionResponse {
	return actionResponse{
		Id:        a.ID.String(),
		Kind:      string(a.Kind),
		Sender:    a.Sender,
		Target:    a.Target,
		Digest:    a.Digest,
		Success:   a.Success,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}
}

type actionResult = HttpResponse[actionResultResponse]

// sendActionResult answers a mutation. Failed actions are still 200: the
// outcome is in the result.
func sendActionResult(ctx *fiber.Ctx, result entity.ActionResult) error {
	return ctx.JSON(actionResult{
		Result: &actionResultResponse{
			Success: result.Success,
			Digest:  result.Digest,
			Message: result.Message,
		},
	})
}
