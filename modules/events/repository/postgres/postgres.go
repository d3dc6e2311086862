package postgres

import (
	"github.com/gaze-network/event-horizon/internal/postgres"
	"github.com/gaze-network/event-horizon/modules/events/datagateway"
	"github.com/gaze-network/event-horizon/modules/events/repository/postgres/gen"
)

// Make sure Repository implements the ActionJournal interface
var _ datagateway.ActionJournal = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}
