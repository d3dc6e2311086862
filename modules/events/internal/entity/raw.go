package entity

import "github.com/gaze-network/event-horizon/pkg/sui"

// Raw records are the chain shapes read by the chain reader, before they are
// reshaped into view records. Field names follow the on-chain structs.

type RawEvent struct {
	ID          string
	Name        string
	Description string
	Location    string
	Timestamp   sui.Uint64 // milliseconds
	CoverImg    string
	Organizer   string
	IsPaid      bool
	Closed      bool
	TicketTypes []RawTicketType
}

type RawTicketType struct {
	Name        string
	Description string
	Price       sui.Uint64 // MIST
	MaxTickets  sui.Uint64
	TicketsSold sui.Uint64
	CoverImg    string
}

type RawTicket struct {
	ID          string
	EventID     string
	TicketType  sui.Uint64
	Owner       string
	Attended    bool
	PoapClaimed bool
}

type RawPoap struct {
	ID      string
	EventID string
}
