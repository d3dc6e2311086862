package httphandler

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getEventsRequest struct {
	Location  string `query:"location"`
	From      *int64 `query:"from"` // unix ms
	To        *int64 `query:"to"`   // unix ms
	IsPaid    *bool  `query:"isPaid"`
	Search    string `query:"search"`
	Organizer string `query:"organizer"`
}

func (r getEventsRequest) Validate() error {
	if r.From != nil && r.To != nil && *r.From > *r.To {
		return errs.NewPublicError("validation error: from must be less than or equal to to")
	}
	return nil
}

func (r getEventsRequest) Criteria() entity.FilterCriteria {
	var criteria entity.FilterCriteria
	if r.Location != "" {
		criteria.Location = lo.ToPtr(r.Location)
	}
	if r.From != nil || r.To != nil {
		criteria.DateRange = &entity.DateRange{}
		if r.From != nil {
			criteria.DateRange.Start = lo.ToPtr(time.UnixMilli(*r.From))
		}
		if r.To != nil {
			criteria.DateRange.End = lo.ToPtr(time.UnixMilli(*r.To))
		}
	}
	criteria.IsPaid = r.IsPaid
	if r.Search != "" {
		criteria.Search = lo.ToPtr(r.Search)
	}
	if r.Organizer != "" {
		criteria.Organizer = lo.ToPtr(r.Organizer)
	}
	return criteria
}

type getEventsResponse = HttpResponse[[]eventResponse]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	events := mapEvents(h.store.ApplyFilters(req.Criteria()))
	return errors.WithStack(ctx.JSON(getEventsResponse{Result: &events}))
}

type eventIDRequest struct {
	Id string `params:"id"`
}

func (r eventIDRequest) Validate() error {
	if strings.TrimSpace(r.Id) == "" {
		return errs.NewPublicError("validation error: event id is required")
	}
	return nil
}

type getEventResponse = HttpResponse[eventResponse]

func (h *HttpHandler) GetEventByID(ctx *fiber.Ctx) (err error) {
	var req eventIDRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	event, ok := h.store.GetEventByID(req.Id)
	if !ok {
		return errs.WithPublicMessage(errors.Wrapf(errs.NotFound, "event %s", req.Id), "event not found")
	}
	resp := mapEvent(event)
	return errors.WithStack(ctx.JSON(getEventResponse{Result: &resp}))
}

type ticketTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"` // SUI
	MaxSupply   uint64 `json:"maxSupply"`
	CoverImg    string `json:"coverImg"`
}

type eventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Timestamp   int64  `json:"timestamp"` // unix ms
	IsPaid      bool   `json:"isPaid"`
	ImageUrl    string `json:"imageUrl"`
}

func (r eventRequest) Draft() entity.EventDraft {
	draft := entity.EventDraft{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		IsPaid:      r.IsPaid,
		ImageURL:    r.ImageUrl,
	}
	if r.Timestamp != 0 {
		draft.Timestamp = time.UnixMilli(r.Timestamp)
	}
	return draft
}

type createEventRequest struct {
	eventRequest
	TicketTypes []ticketTypeRequest `json:"ticketTypes"`
}

func (r createEventRequest) Validate() error {
	var errList []error
	for i, t := range r.TicketTypes {
		if strings.TrimSpace(t.Name) == "" {
			errList = append(errList, errors.Errorf("ticketTypes[%d].name is required", i))
		}
		if t.MaxSupply == 0 {
			errList = append(errList, errors.Errorf("ticketTypes[%d].maxSupply must be greater than 0", i))
		}
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) CreateEvent(ctx *fiber.Ctx) (err error) {
	var req createEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	ticketTypes := lo.Map(req.TicketTypes, func(t ticketTypeRequest, _ int) entity.TicketTypeDraft {
		return entity.TicketTypeDraft{
			Name:        t.Name,
			Description: t.Description,
			Price:       lo.Ternary(t.Price == "", "0", t.Price),
			MaxSupply:   t.MaxSupply,
			ImageURL:    t.CoverImg,
		}
	})
	result := h.store.CreateEvent(ctx.UserContext(), req.Draft(), ticketTypes)
	return errors.WithStack(sendActionResult(ctx, result))
}

func (h *HttpHandler) UpdateEvent(ctx *fiber.Ctx) (err error) {
	var params eventIDRequest
	if err := ctx.ParamsParser(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := params.Validate(); err != nil {
		return errors.WithStack(err)
	}
	var req eventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}

	result := h.store.UpdateEvent(ctx.UserContext(), params.Id, req.Draft())
	return errors.WithStack(sendActionResult(ctx, result))
}

type purchaseTicketRequest struct {
	TicketTypeId    *int   `json:"ticketTypeId"`
	PaymentObjectId string `json:"paymentObjectId"`
}

func (r purchaseTicketRequest) Validate() error {
	var errList []error
	if r.TicketTypeId == nil {
		errList = append(errList, errors.New("ticketTypeId is required"))
	} else if *r.TicketTypeId < 0 {
		errList = append(errList, errors.New("ticketTypeId must be greater than or equal to 0"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) PurchaseTicket(ctx *fiber.Ctx) (err error) {
	var params eventIDRequest
	if err := ctx.ParamsParser(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := params.Validate(); err != nil {
		return errors.WithStack(err)
	}
	var req purchaseTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result := h.store.PurchaseTicket(ctx.UserContext(), params.Id, *req.TicketTypeId, req.PaymentObjectId)
	return errors.WithStack(sendActionResult(ctx, result))
}

type capRequest struct {
	CapId string `json:"capId"`
}

func (h *HttpHandler) CloseEvent(ctx *fiber.Ctx) (err error) {
	var params eventIDRequest
	if err := ctx.ParamsParser(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := params.Validate(); err != nil {
		return errors.WithStack(err)
	}
	var req capRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}

	result := h.store.CloseEvent(ctx.UserContext(), params.Id, req.CapId)
	return errors.WithStack(sendActionResult(ctx, result))
}

func (h *HttpHandler) WithdrawRevenue(ctx *fiber.Ctx) (err error) {
	var params eventIDRequest
	if err := ctx.ParamsParser(&params); err != nil {
		return errors.WithStack(err)
	}
	if err := params.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result := h.store.WithdrawRevenue(ctx.UserContext(), params.Id)
	return errors.WithStack(sendActionResult(ctx, result))
}
