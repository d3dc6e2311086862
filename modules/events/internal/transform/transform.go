// Package transform reshapes raw chain records into the flat view records
// served by the API. It has no side effects.
package transform

import (
	"time"

	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/samber/lo"
)

// Events transforms raw events in order. TicketTypes[i].ID is i.
func Events(raw []entity.RawEvent) []entity.Event {
	return lo.Map(raw, func(r entity.RawEvent, _ int) entity.Event {
		return Event(r)
	})
}

func Event(r entity.RawEvent) entity.Event {
	return entity.Event{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Timestamp:   time.UnixMilli(int64(r.Timestamp.Uint64())),
		ImageURL:    r.CoverImg,
		Organizer:   r.Organizer,
		IsPaid:      r.IsPaid,
		Closed:      r.Closed,
		TicketTypes: lo.Map(r.TicketTypes, func(t entity.RawTicketType, i int) entity.TicketType {
			return TicketType(i, t)
		}),
	}
}

func TicketType(position int, r entity.RawTicketType) entity.TicketType {
	maxSupply := r.MaxTickets.Uint64()
	var remaining uint64
	if sold := r.TicketsSold.Uint64(); sold < maxSupply {
		remaining = maxSupply - sold
	}
	return entity.TicketType{
		ID:              position,
		Name:            r.Name,
		Description:     r.Description,
		Price:           MistToSui(r.Price.Uint64()),
		MaxSupply:       maxSupply,
		RemainingSupply: remaining,
		ImageURL:        r.CoverImg,
	}
}

// Tickets transforms raw tickets, resolving event names from events.
func Tickets(raw []entity.RawTicket, events []entity.Event) []entity.Ticket {
	byID := indexEvents(events)
	return lo.Map(raw, func(r entity.RawTicket, _ int) entity.Ticket {
		name := entity.UnknownEventName
		if event, ok := byID[r.EventID]; ok {
			name = entity.KnownEventName(event.Name)
		}
		return entity.Ticket{
			ID:           r.ID,
			EventID:      r.EventID,
			TicketTypeID: int(r.TicketType.Uint64()),
			EventName:    name,
			Owner:        r.Owner,
			Attended:     r.Attended,
			PoapClaimed:  r.PoapClaimed,
		}
	})
}

// Poaps transforms raw POAPs, resolving event name and image from events.
// The chain has no claim time, so ClaimedAt is now.
func Poaps(raw []entity.RawPoap, events []entity.Event, now time.Time) []entity.Poap {
	byID := indexEvents(events)
	return lo.Map(raw, func(r entity.RawPoap, _ int) entity.Poap {
		poap := entity.Poap{
			ID:        r.ID,
			EventID:   r.EventID,
			EventName: entity.UnknownEventName,
			ClaimedAt: now,
		}
		if event, ok := byID[r.EventID]; ok {
			poap.EventName = entity.KnownEventName(event.Name)
			poap.ImageURL = event.ImageURL
		}
		return poap
	})
}

func indexEvents(events []entity.Event) map[string]entity.Event {
	return lo.KeyBy(events, func(e entity.Event) string { return e.ID })
}
