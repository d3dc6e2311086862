package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/modules/events/repository/postgres/gen"
	"github.com/samber/lo"
)

func (r *Repository) RecordAction(ctx context.Context, action entity.Action) error {
	if err := r.queries.CreateAction(ctx, mapActionTypeToParams(action)); err != nil {
		return errors.Wrap(err, "error during query")
	}
	return nil
}

func (r *Repository) GetActions(ctx context.Context, limit, offset int32) ([]entity.Action, error) {
	rows, err := r.queries.GetActions(ctx, gen.GetActionsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	return lo.Map(rows, func(row gen.EventHorizonAction, _ int) entity.Action {
		return mapActionModelToType(row)
	}), nil
}
