package sui

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/pkg/sui"
)

// Move structs are rendered by the JSON-RPC as {"type": ..., "fields": {...}}.
type moveStruct[T any] struct {
	Type   string `json:"type"`
	Fields T      `json:"fields"`
}

// maybeWrapped decodes a Move struct given either wrapped in
// {"type", "fields"} or as its bare fields. Nested vectors of structs in the
// users map come in both forms depending on the node version.
type maybeWrapped[T any] struct {
	Value T
}

func (m *maybeWrapped[T]) UnmarshalJSON(data []byte) error {
	var probe struct {
		Fields json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return errors.WithStack(err)
	}
	if len(probe.Fields) > 0 && bytes.HasPrefix(bytes.TrimSpace(probe.Fields), []byte("{")) {
		data = probe.Fields
	}
	return errors.WithStack(json.Unmarshal(data, &m.Value))
}

type uid struct {
	ID string `json:"id"`
}

type vecMap[K, V any] struct {
	Contents []moveStruct[vecMapEntry[K, V]] `json:"contents"`
}

type vecMapEntry[K, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

type platformFields struct {
	Events moveStruct[vecMap[string, moveStruct[eventFields]]] `json:"events"`
	Users  moveStruct[vecMap[string, moveStruct[userFields]]]  `json:"users"`
}

type eventFields struct {
	ID          uid                           `json:"id"`
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	Location    string                        `json:"location"`
	Timestamp   sui.Uint64                    `json:"timestamp"`
	CoverImg    string                        `json:"cover_img"`
	Organizer   string                        `json:"organizer"`
	IsPaid      bool                          `json:"is_paid"`
	Closed      bool                          `json:"closed"`
	TicketType  []moveStruct[ticketTypeField] `json:"ticket_type"`
}

type ticketTypeField struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       sui.Uint64 `json:"price"`
	MaxTickets  sui.Uint64 `json:"max_tickets"`
	TicketsSold sui.Uint64 `json:"tickets_sold"`
	CoverImg    string     `json:"cover_img"`
}

type userFields struct {
	Tickets []maybeWrapped[ticketFields] `json:"tickets"`
	Poaps   []maybeWrapped[poapFields]   `json:"poaps"`
}

type ticketFields struct {
	ID          uid        `json:"id"`
	EventID     string     `json:"event_id"`
	TicketType  sui.Uint64 `json:"ticket_type"`
	Owner       string     `json:"owner"`
	Attended    bool       `json:"attended"`
	PoapClaimed bool       `json:"poap_claimed"`
}

type poapFields struct {
	ID      uid    `json:"id"`
	EventID string `json:"event_id"`
}

func (f eventFields) toEntity() entity.RawEvent {
	ticketTypes := make([]entity.RawTicketType, 0, len(f.TicketType))
	for _, t := range f.TicketType {
		ticketTypes = append(ticketTypes, entity.RawTicketType{
			Name:        t.Fields.Name,
			Description: t.Fields.Description,
			Price:       t.Fields.Price,
			MaxTickets:  t.Fields.MaxTickets,
			TicketsSold: t.Fields.TicketsSold,
			CoverImg:    t.Fields.CoverImg,
		})
	}
	return entity.RawEvent{
		ID:          f.ID.ID,
		Name:        f.Name,
		Description: f.Description,
		Location:    f.Location,
		Timestamp:   f.Timestamp,
		CoverImg:    f.CoverImg,
		Organizer:   f.Organizer,
		IsPaid:      f.IsPaid,
		Closed:      f.Closed,
		TicketTypes: ticketTypes,
	}
}

func (f ticketFields) toEntity() entity.RawTicket {
	return entity.RawTicket{
		ID:          f.ID.ID,
		EventID:     f.EventID,
		TicketType:  f.TicketType,
		Owner:       f.Owner,
		Attended:    f.Attended,
		PoapClaimed: f.PoapClaimed,
	}
}

func (f poapFields) toEntity() entity.RawPoap {
	return entity.RawPoap{
		ID:      f.ID.ID,
		EventID: f.EventID,
	}
}
