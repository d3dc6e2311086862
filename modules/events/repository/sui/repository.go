// Package sui reads the ticketing program's state over the Sui JSON-RPC.
package sui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/modules/events/config"
	"github.com/gaze-network/event-horizon/modules/events/datagateway"
	"github.com/gaze-network/event-horizon/modules/events/internal/dispatcher"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/logger/slogx"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/suirpc"
	"github.com/samber/lo"
)

// Struct names of the objects owned by attendees.
const (
	TicketStruct = "Ticket"
	PoapStruct   = "POAP"
)

// RPC is the subset of the Sui JSON-RPC used to read state.
type RPC interface {
	GetObject(ctx context.Context, id string, opts suirpc.ObjectDataOptions) (*suirpc.ObjectData, error)
	GetOwnedObjects(ctx context.Context, owner string, query suirpc.ObjectResponseQuery, cursor *string, limit *uint) (*suirpc.ObjectsPage, error)
	GetBalance(ctx context.Context, owner string, coinType string) (*suirpc.Balance, error)
}

// Make sure Repository implements the ChainReader interface
var _ datagateway.ChainReader = (*Repository)(nil)

type Repository struct {
	rpc             RPC
	packageID       sui.ObjectID
	platformID      sui.ObjectID
	ownershipSource string
}

func NewRepository(rpc RPC, conf config.Config) (*Repository, error) {
	packageID, err := sui.ParseAddress(conf.PackageID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid package id")
	}
	platformID, err := sui.ParseAddress(conf.PlatformID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid platform id")
	}
	source := conf.OwnershipSource
	switch source {
	case "":
		source = config.OwnershipSourceOwnedObjects
	case config.OwnershipSourceOwnedObjects, config.OwnershipSourcePlatform:
	default:
		return nil, errors.Wrapf(errs.Unsupported, "ownership source %q", source)
	}
	return &Repository{
		rpc:             rpc,
		packageID:       packageID,
		platformID:      platformID,
		ownershipSource: source,
	}, nil
}

// platform returns the decoded fields of the platform object. ok is false
// when the object has no Move object content.
func (r *Repository) platform(ctx context.Context) (fields platformFields, ok bool, err error) {
	data, err := r.rpc.GetObject(ctx, r.platformID.String(), suirpc.ObjectDataOptions{ShowContent: true})
	if err != nil {
		return platformFields{}, false, errors.Wrap(err, "can't get platform object")
	}
	if !data.Content.IsMoveObject() {
		return platformFields{}, false, nil
	}
	if err := json.Unmarshal(data.Content.Fields, &fields); err != nil {
		return platformFields{}, false, errors.Wrap(err, "can't decode platform object")
	}
	return fields, true, nil
}

func (r *Repository) GetEvents(ctx context.Context) ([]entity.RawEvent, error) {
	fields, ok, err := r.platform(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !ok {
		return []entity.RawEvent{}, nil
	}
	return lo.Map(fields.Events.Fields.Contents, func(entry moveStruct[vecMapEntry[string, moveStruct[eventFields]]], _ int) entity.RawEvent {
		return entry.Fields.Value.Fields.toEntity()
	}), nil
}

func (r *Repository) GetUserTickets(ctx context.Context, owner string) ([]entity.RawTicket, error) {
	if r.ownershipSource == config.OwnershipSourcePlatform {
		user, err := r.platformUser(ctx, owner)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return lo.Map(user.Tickets, func(t maybeWrapped[ticketFields], _ int) entity.RawTicket {
			return t.Value.toEntity()
		}), nil
	}

	tickets := make([]entity.RawTicket, 0)
	err := r.ownedObjects(ctx, owner, TicketStruct, func(raw json.RawMessage) error {
		var f ticketFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return errors.WithStack(err)
		}
		tickets = append(tickets, f.toEntity())
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't get owned tickets")
	}
	return tickets, nil
}

func (r *Repository) GetUserPoaps(ctx context.Context, owner string) ([]entity.RawPoap, error) {
	if r.ownershipSource == config.OwnershipSourcePlatform {
		user, err := r.platformUser(ctx, owner)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return lo.Map(user.Poaps, func(p maybeWrapped[poapFields], _ int) entity.RawPoap {
			return p.Value.toEntity()
		}), nil
	}

	poaps := make([]entity.RawPoap, 0)
	err := r.ownedObjects(ctx, owner, PoapStruct, func(raw json.RawMessage) error {
		var f poapFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return errors.WithStack(err)
		}
		poaps = append(poaps, f.toEntity())
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't get owned poaps")
	}
	return poaps, nil
}

func (r *Repository) GetBalance(ctx context.Context, owner string) (uint64, error) {
	balance, err := r.rpc.GetBalance(ctx, owner, suirpc.SUICoinType)
	if err != nil {
		return 0, errors.Wrap(err, "can't get balance")
	}
	return balance.TotalBalance.Uint64(), nil
}

// platformUser returns the entry of owner in the platform's users map. An
// address without entry has no tickets and no POAPs.
func (r *Repository) platformUser(ctx context.Context, owner string) (userFields, error) {
	fields, ok, err := r.platform(ctx)
	if err != nil || !ok {
		return userFields{}, errors.WithStack(err)
	}
	entry, found := lo.Find(fields.Users.Fields.Contents, func(entry moveStruct[vecMapEntry[string, moveStruct[userFields]]]) bool {
		return sui.EqualAddress(entry.Fields.Key, owner)
	})
	if !found {
		return userFields{}, nil
	}
	return entry.Fields.Value.Fields, nil
}

// ownedObjects pages through the objects of type `{package}::event_mgnt_sc::{name}`
// owned by owner and calls fn with the fields of each one.
func (r *Repository) ownedObjects(ctx context.Context, owner string, name string, fn func(json.RawMessage) error) error {
	structType := fmt.Sprintf("%s::%s::%s", r.packageID, dispatcher.MoveModule, name)
	query := suirpc.ObjectResponseQuery{
		Filter:  &suirpc.ObjectFilter{StructType: structType},
		Options: &suirpc.ObjectDataOptions{ShowType: true, ShowContent: true},
	}

	var cursor *string
	for {
		page, err := r.rpc.GetOwnedObjects(ctx, owner, query, cursor, nil)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, resp := range page.Data {
			data, err := resp.Object()
			if err != nil {
				logger.WarnContext(ctx, "Skipped unreadable owned object", slog.String("type", structType), slogx.Error(err))
				continue
			}
			if !data.Content.IsMoveObject() {
				continue
			}
			if err := fn(data.Content.Fields); err != nil {
				return errors.Wrapf(err, "can't decode object %s", data.ObjectID)
			}
		}
		if !page.HasNextPage || page.NextCursor == nil {
			return nil
		}
		cursor = page.NextCursor
	}
}
