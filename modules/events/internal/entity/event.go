package entity

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
)

type Event struct {
	ID          string
	Name        string
	Description string
	Location    string
	Timestamp   time.Time
	ImageURL    string
	Organizer   string
	IsPaid      bool
	Closed      bool
	TicketTypes []TicketType
}

// TicketType is identified by its position in the event's ticket type list.
type TicketType struct {
	ID              int
	Name            string
	Description     string
	Price           string // decimal SUI
	MaxSupply       uint64
	RemainingSupply uint64
	ImageURL        string
}

// TicketType returns the ticket type at position id.
func (e Event) TicketType(id int) (TicketType, bool) {
	if id < 0 || id >= len(e.TicketTypes) {
		return TicketType{}, false
	}
	return e.TicketTypes[id], true
}

type Ticket struct {
	ID           string
	EventID      string
	TicketTypeID int
	EventName    EventName
	Owner        string
	Attended     bool
	PoapClaimed  bool
}

type Poap struct {
	ID        string
	EventID   string
	EventName EventName
	ImageURL  string

	// ClaimedAt is the time the POAP was first seen by a refresh. The chain
	// doesn't store a claim time.
	ClaimedAt time.Time
}

const unknownEventName = "Unknown Event"

// EventName is the denormalized name of a ticket's or POAP's event. It is
// unknown when the event is not in the current snapshot.
type EventName struct {
	name  string
	known bool
}

// UnknownEventName is the name of an event that couldn't be resolved.
var UnknownEventName = EventName{}

func KnownEventName(name string) EventName {
	return EventName{name: name, known: true}
}

// Value returns the name and whether it is known.
func (n EventName) Value() (string, bool) {
	return n.name, n.known
}

func (n EventName) IsKnown() bool {
	return n.known
}

func (n EventName) String() string {
	if !n.known {
		return unknownEventName
	}
	return n.name
}

func (n EventName) MarshalJSON() ([]byte, error) {
	if !n.known {
		return []byte("null"), nil
	}
	return json.Marshal(n.name)
}

func (n *EventName) UnmarshalJSON(data []byte) error {
	var name *string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.WithStack(err)
	}
	if name == nil {
		*n = UnknownEventName
		return nil
	}
	*n = KnownEventName(*name)
	return nil
}
