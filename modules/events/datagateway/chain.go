package datagateway

import (
	"context"

	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
)

// ChainReader reads the ticketing program's state from the chain.
type ChainReader interface {
	// GetEvents returns all events of the platform, in platform order.
	GetEvents(ctx context.Context) ([]entity.RawEvent, error)
	GetUserTickets(ctx context.Context, owner string) ([]entity.RawTicket, error)
	GetUserPoaps(ctx context.Context, owner string) ([]entity.RawPoap, error)

	// GetBalance returns the SUI balance of owner in MIST.
	GetBalance(ctx context.Context, owner string) (uint64, error)
}
