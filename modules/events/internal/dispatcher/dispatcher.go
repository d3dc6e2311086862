// Package dispatcher builds one programmable transaction per intent against
// the `event_mgnt_sc` Move module and submits it through a Submitter.
package dispatcher

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/ptb"
)

// MoveModule is the Move module of the ticketing program.
const MoveModule = "event_mgnt_sc"

// Move functions of the ticketing program.
const (
	FuncInitializePlatform  = "initialize_platform"
	FuncCreateEvent         = "create_event"
	FuncBuyTicket           = "buy_ticket"
	FuncMarkAttended        = "mark_attended"
	FuncCloseEvent          = "close_event"
	FuncClaimPoap           = "claim_poap"
	FuncWithdrawRevenue     = "withdraw_revenue"
	FuncTransferTicket      = "transfer_ticket"
	FuncUpdatePlatformAdmin = "update_platform_admin"
	FuncUpdateEvent         = "update_event"
)

// clockInitialSharedVersion is the initial shared version of the system clock.
const clockInitialSharedVersion = 1

type TxResult struct {
	Digest string
}

// Submitter signs and executes a transaction.
type Submitter interface {
	Execute(ctx context.Context, tx *ptb.Builder) (TxResult, error)
}

type Dispatcher struct {
	packageID  sui.ObjectID
	platformID sui.ObjectID
	submitter  Submitter
}

func New(packageID, platformID string, submitter Submitter) (*Dispatcher, error) {
	pkg, err := sui.ParseAddress(packageID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid package id")
	}
	platform, err := sui.ParseAddress(platformID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid platform id")
	}
	if submitter == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "submitter is required")
	}
	return &Dispatcher{
		packageID:  pkg,
		platformID: platform,
		submitter:  submitter,
	}, nil
}

func (d *Dispatcher) target(function string) ptb.Target {
	return ptb.Target{Package: d.packageID, Module: MoveModule, Function: function}
}

func (d *Dispatcher) submit(ctx context.Context, tx *ptb.Builder) (TxResult, error) {
	result, err := d.submitter.Execute(ctx, tx)
	if err != nil {
		return TxResult{}, errors.WithStack(err)
	}
	return result, nil
}

// call builds a transaction with a single Move call to function.
func (d *Dispatcher) call(function string, args func(tx *ptb.Builder) []ptb.Argument) *ptb.Builder {
	tx := ptb.NewBuilder()
	var arguments []ptb.Argument
	if args != nil {
		arguments = args(tx)
	}
	tx.MoveCall(d.target(function), arguments...)
	return tx
}

func (d *Dispatcher) platform(tx *ptb.Builder) ptb.Argument {
	return tx.Object(d.platformID, true)
}

func parseID(name, id string) (sui.ObjectID, error) {
	addr, err := sui.ParseAddress(id)
	if err != nil {
		return sui.ObjectID{}, errors.Wrapf(err, "invalid %s", name)
	}
	return addr, nil
}
