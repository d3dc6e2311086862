// Package memory keeps the action journal in process memory when no
// database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/gaze-network/event-horizon/modules/events/datagateway"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
)

// DefaultCapacity is the number of actions kept by default.
const DefaultCapacity = 1000

var _ datagateway.ActionJournal = (*Journal)(nil)

// Journal keeps the latest actions up to a fixed capacity. Older actions are
// dropped first.
type Journal struct {
	mu       sync.RWMutex
	actions  []entity.Action // oldest first
	capacity int
}

func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{capacity: capacity}
}

func (j *Journal) RecordAction(_ context.Context, action entity.Action) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.actions) == j.capacity {
		copy(j.actions, j.actions[1:])
		j.actions = j.actions[:len(j.actions)-1]
	}
	j.actions = append(j.actions, action)
	return nil
}

func (j *Journal) GetActions(_ context.Context, limit, offset int32) ([]entity.Action, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	limit, offset = max(limit, 0), max(offset, 0)
	out := make([]entity.Action, 0, min(int(limit), len(j.actions)))
	for i := len(j.actions) - 1 - int(offset); i >= 0 && len(out) < int(limit); i-- {
		out = append(out, j.actions[i])
	}
	return out, nil
}
