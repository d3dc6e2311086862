package dispatcher

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/ptb"
	"github.com/samber/lo"
)

type TicketTypeParams struct {
	Name        string
	Description string
	Price       uint64 // MIST
	MaxSupply   uint64
	ImageURL    string
}

type CreateEventParams struct {
	Name        string
	Description string
	Timestamp   uint64 // milliseconds
	Location    string
	IsPaid      bool
	ImageURL    string
	TicketTypes []TicketTypeParams
}

type UpdateEventParams struct {
	EventID     string
	Name        string
	Description string
	Timestamp   uint64 // milliseconds
	Location    string
	IsPaid      bool
}

type PurchaseParams struct {
	EventID      string
	TicketTypeID uint64
	Price        uint64 // MIST
}

func (d *Dispatcher) BuildInitializePlatform() (*ptb.Builder, error) {
	return d.call(FuncInitializePlatform, nil), nil
}

func (d *Dispatcher) InitializePlatform(ctx context.Context) (TxResult, error) {
	tx, err := d.BuildInitializePlatform()
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

// BuildCreateEvent passes ticket types as parallel vectors aligned by position.
func (d *Dispatcher) BuildCreateEvent(params CreateEventParams) (*ptb.Builder, error) {
	if len(params.TicketTypes) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "event must have at least one ticket type")
	}
	return d.call(FuncCreateEvent, func(tx *ptb.Builder) []ptb.Argument {
		types := params.TicketTypes
		return []ptb.Argument{
			d.platform(tx),
			tx.PureString(params.Name),
			tx.PureString(params.Description),
			tx.PureU64(params.Timestamp),
			tx.PureString(params.Location),
			tx.PureBool(params.IsPaid),
			tx.PureString(params.ImageURL),
			tx.PureStrings(lo.Map(types, func(t TicketTypeParams, _ int) string { return t.Name })),
			tx.PureStrings(lo.Map(types, func(t TicketTypeParams, _ int) string { return t.Description })),
			tx.PureU64s(lo.Map(types, func(t TicketTypeParams, _ int) uint64 { return t.Price })),
			tx.PureU64s(lo.Map(types, func(t TicketTypeParams, _ int) uint64 { return t.MaxSupply })),
			tx.PureStrings(lo.Map(types, func(t TicketTypeParams, _ int) string { return t.ImageURL })),
		}
	}), nil
}

func (d *Dispatcher) CreateEvent(ctx context.Context, params CreateEventParams) (TxResult, error) {
	tx, err := d.BuildCreateEvent(params)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

// BuildPurchaseTicket pays with a coin of exactly Price split from the gas coin.
func (d *Dispatcher) BuildPurchaseTicket(params PurchaseParams) (*ptb.Builder, error) {
	eventID, err := parseID("event id", params.EventID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncBuyTicket, func(tx *ptb.Builder) []ptb.Argument {
		platform := d.platform(tx)
		payment := tx.SplitGas(params.Price)
		return []ptb.Argument{
			platform,
			tx.PureAddress(eventID),
			payment,
			tx.PureU64(params.TicketTypeID),
		}
	}), nil
}

func (d *Dispatcher) PurchaseTicket(ctx context.Context, params PurchaseParams) (TxResult, error) {
	tx, err := d.BuildPurchaseTicket(params)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

func (d *Dispatcher) BuildMarkAttended(ticketID, capID string) (*ptb.Builder, error) {
	ticket, err := parseID("ticket id", ticketID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	organizerCap, err := parseID("cap id", capID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncMarkAttended, func(tx *ptb.Builder) []ptb.Argument {
		return []ptb.Argument{
			d.platform(tx),
			tx.Object(ticket, true),
			tx.Object(organizerCap, false),
		}
	}), nil
}

func (d *Dispatcher) MarkAttended(ctx context.Context, ticketID, capID string) (TxResult, error) {
	tx, err := d.BuildMarkAttended(ticketID, capID)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

func (d *Dispatcher) BuildCloseEvent(eventID, capID string) (*ptb.Builder, error) {
	event, err := parseID("event id", eventID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	organizerCap, err := parseID("cap id", capID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncCloseEvent, func(tx *ptb.Builder) []ptb.Argument {
		return []ptb.Argument{
			d.platform(tx),
			tx.PureAddress(event),
			tx.Object(organizerCap, false),
		}
	}), nil
}

func (d *Dispatcher) CloseEvent(ctx context.Context, eventID, capID string) (TxResult, error) {
	tx, err := d.BuildCloseEvent(eventID, capID)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

func (d *Dispatcher) BuildClaimPoap(ticketID string) (*ptb.Builder, error) {
	ticket, err := parseID("ticket id", ticketID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncClaimPoap, func(tx *ptb.Builder) []ptb.Argument {
		return []ptb.Argument{
			d.platform(tx),
			tx.Object(ticket, true),
		}
	}), nil
}

func (d *Dispatcher) ClaimPoap(ctx context.Context, ticketID string) (TxResult, error) {
	tx, err := d.BuildClaimPoap(ticketID)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

// BuildWithdrawRevenue passes the system clock as an immutable shared object.
func (d *Dispatcher) BuildWithdrawRevenue(eventID string) (*ptb.Builder, error) {
	event, err := parseID("event id", eventID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncWithdrawRevenue, func(tx *ptb.Builder) []ptb.Argument {
		return []ptb.Argument{
			d.platform(tx),
			tx.PureAddress(event),
			tx.SharedObject(sui.ClockObjectID, clockInitialSharedVersion, false),
		}
	}), nil
}

func (d *Dispatcher) WithdrawRevenue(ctx context.Context, eventID string) (TxResult, error) {
	tx, err := d.BuildWithdrawRevenue(eventID)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

func (d *Dispatcher) BuildTransferTicket(ticketID, recipient string) (*ptb.Builder, error) {
	ticket, err := parseID("ticket id", ticketID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	to, err := parseID("recipient address", recipient)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncTransferTicket, func(tx *ptb.Builder) []ptb.Argument {
		return []ptb.Argument{
			d.platform(tx),
			tx.Object(ticket, true),
			tx.PureAddress(to),
		}
	}), nil
}

func (d *Dispatcher) TransferTicket(ctx context.Context, ticketID, recipient string) (TxResult, error) {
	tx, err := d.BuildTransferTicket(ticketID, recipient)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

func (d *Dispatcher) BuildUpdatePlatformAdmin(newAdmin string) (*ptb.Builder, error) {
	admin, err := parseID("admin address", newAdmin)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncUpdatePlatformAdmin, func(tx *ptb.Builder) []ptb.Argument {
		return []ptb.Argument{
			d.platform(tx),
			tx.PureAddress(admin),
		}
	}), nil
}

func (d *Dispatcher) UpdatePlatformAdmin(ctx context.Context, newAdmin string) (TxResult, error) {
	tx, err := d.BuildUpdatePlatformAdmin(newAdmin)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}

func (d *Dispatcher) BuildUpdateEvent(params UpdateEventParams) (*ptb.Builder, error) {
	event, err := parseID("event id", params.EventID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d.call(FuncUpdateEvent, func(tx *ptb.Builder) []ptb.Argument {
		return []ptb.Argument{
			d.platform(tx),
			tx.PureAddress(event),
			tx.PureString(params.Name),
			tx.PureString(params.Description),
			tx.PureU64(params.Timestamp),
			tx.PureString(params.Location),
			tx.PureBool(params.IsPaid),
		}
	}), nil
}

func (d *Dispatcher) UpdateEvent(ctx context.Context, params UpdateEventParams) (TxResult, error) {
	tx, err := d.BuildUpdateEvent(params)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return d.submit(ctx, tx)
}
