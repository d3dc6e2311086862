package httphandler

import (
	"context"

	"github.com/gaze-network/event-horizon/common"
	"github.com/gaze-network/event-horizon/modules/events/datagateway"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
)

// Store is the state store served by the handlers.
type Store interface {
	Refresh(ctx context.Context) error
	ApplyFilters(criteria entity.FilterCriteria) []entity.Event
	Events() []entity.Event
	UserTickets() []entity.Ticket
	UserPoaps() []entity.Poap
	Loading() bool
	GetEventByID(id string) (entity.Event, bool)

	PurchaseTicket(ctx context.Context, eventID string, ticketTypeID int, paymentRef string) entity.ActionResult
	CreateEvent(ctx context.Context, draft entity.EventDraft, ticketTypes []entity.TicketTypeDraft) entity.ActionResult
	UpdateEvent(ctx context.Context, eventID string, draft entity.EventDraft) entity.ActionResult
	MarkAttended(ctx context.Context, ticketID, capID string) entity.ActionResult
	ClaimPoap(ctx context.Context, ticketID string) entity.ActionResult
	TransferEventTicket(ctx context.Context, ticketID, recipient string) entity.ActionResult
	CloseEvent(ctx context.Context, eventID, capID string) entity.ActionResult
	WithdrawRevenue(ctx context.Context, eventID string) entity.ActionResult
	InitializePlatform(ctx context.Context) entity.ActionResult
	UpdatePlatformAdmin(ctx context.Context, newAdmin string) entity.ActionResult
}

type Wallet interface {
	Address() (string, bool)
	CanSign() bool
}

type HttpHandler struct {
	store   Store
	journal datagateway.ActionJournal
	wallet  Wallet
}

func New(store Store, journal datagateway.ActionJournal, wallet Wallet) *HttpHandler {
	return &HttpHandler{
		store:   store,
		journal: journal,
		wallet:  wallet,
	}
}

type HttpResponse[T any] common.HttpResponse[T]
