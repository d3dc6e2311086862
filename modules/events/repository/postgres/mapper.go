package postgres

import (
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/modules/events/repository/postgres/gen"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func mapActionTypeToParams(src entity.Action) gen.CreateActionParams {
	return gen.CreateActionParams{
		ID:        pgtype.UUID{Bytes: src.ID, Valid: true},
		Kind:      string(src.Kind),
		Sender:    src.Sender,
		Target:    src.Target,
		Digest:    src.Digest,
		Success:   src.Success,
		Message:   src.Message,
		CreatedAt: pgtype.Timestamptz{Time: src.CreatedAt.UTC(), Valid: true},
	}
}

func mapActionModelToType(src gen.EventHorizonAction) entity.Action {
	var id uuid.UUID
	if src.ID.Valid {
		id = uuid.UUID(src.ID.Bytes)
	}
	return entity.Action{
		ID:        id,
		Kind:      entity.ActionKind(src.Kind),
		Sender:    src.Sender,
		Target:    src.Target,
		Digest:    src.Digest,
		Success:   src.Success,
		Message:   src.Message,
		CreatedAt: src.CreatedAt.Time,
	}
}
