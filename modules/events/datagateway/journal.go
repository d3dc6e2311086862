package datagateway

import (
	"context"

	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
)

// ActionJournal records the transactions submitted by the service.
type ActionJournal interface {
	RecordAction(ctx context.Context, action entity.Action) error

	// GetActions returns the latest actions first.
	GetActions(ctx context.Context, limit, offset int32) ([]entity.Action, error)
}
