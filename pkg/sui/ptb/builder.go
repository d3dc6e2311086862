// Package ptb builds Sui programmable transaction blocks and encodes them as
// BCS TransactionData ready to be signed.
package ptb

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/bcs"
)

// Builder collects inputs and commands of a programmable transaction.
// Object inputs are added by id and resolved to versioned references
// before Build.
type Builder struct {
	inputs   []input
	commands []command
	objects  map[sui.ObjectID]uint16

	// gasSpend is the total amount split from the gas coin.
	gasSpend uint64
}

func NewBuilder() *Builder {
	return &Builder{
		objects: make(map[sui.ObjectID]uint16),
	}
}

func (b *Builder) addInput(in input) Argument {
	if len(b.inputs) >= math.MaxUint16 {
		panic("ptb: too many inputs")
	}
	b.inputs = append(b.inputs, in)
	return Argument{Kind: ArgumentInput, Index: uint16(len(b.inputs) - 1)}
}

// Pure adds an already BCS encoded pure value.
func (b *Builder) Pure(value []byte) Argument {
	return b.addInput(input{kind: callArgPure, pure: value})
}

func (b *Builder) PureU64(v uint64) Argument {
	return b.Pure(bcs.U64(v))
}

func (b *Builder) PureBool(v bool) Argument {
	return b.Pure(bcs.Bool(v))
}

func (b *Builder) PureString(s string) Argument {
	return b.Pure(bcs.String(s))
}

func (b *Builder) PureStrings(s []string) Argument {
	return b.Pure(bcs.Strings(s))
}

func (b *Builder) PureU64s(v []uint64) Argument {
	return b.Pure(bcs.U64s(v))
}

// PureAddress adds an address. Object ids passed by value (`ID`) use the
// same encoding.
func (b *Builder) PureAddress(addr sui.Address) Argument {
	return b.Pure(addr[:])
}

// Object adds an object input by id. The same object used twice shares one
// input; it becomes mutable if any use is mutable.
func (b *Builder) Object(id sui.ObjectID, mutable bool) Argument {
	if idx, ok := b.objects[id]; ok {
		b.inputs[idx].mutable = b.inputs[idx].mutable || mutable
		return Argument{Kind: ArgumentInput, Index: idx}
	}
	arg := b.addInput(input{kind: callArgObject, objectID: id, mutable: mutable})
	b.objects[id] = arg.Index
	return arg
}

// SharedObject adds an already resolved shared object input.
func (b *Builder) SharedObject(id sui.ObjectID, initialSharedVersion uint64, mutable bool) Argument {
	arg := b.Object(id, mutable)
	resolved := SharedObject(id, initialSharedVersion, b.inputs[arg.Index].mutable)
	b.inputs[arg.Index].resolved = &resolved
	return arg
}

// MoveCall appends a Move call and returns its result.
func (b *Builder) MoveCall(target Target, args ...Argument) Argument {
	b.commands = append(b.commands, command{
		kind:   commandMoveCall,
		target: target,
		args:   args,
	})
	return Argument{Kind: ArgumentResult, Index: uint16(len(b.commands) - 1)}
}

// SplitCoins splits coin into the given amounts and returns the command result.
func (b *Builder) SplitCoins(coin Argument, amounts ...Argument) Argument {
	b.commands = append(b.commands, command{
		kind:    commandSplitCoins,
		coin:    coin,
		amounts: amounts,
	})
	return Argument{Kind: ArgumentResult, Index: uint16(len(b.commands) - 1)}
}

// SplitGas splits a single coin of amount from the gas coin and returns it.
func (b *Builder) SplitGas(amount uint64) Argument {
	result := b.SplitCoins(GasCoin(), b.PureU64(amount))
	b.gasSpend += amount
	return Argument{Kind: ArgumentNestedResult, Index: result.Index, ResultIndex: 0}
}

// GasSpend returns the total amount split from the gas coin.
func (b *Builder) GasSpend() uint64 {
	return b.gasSpend
}

// ObjectRequest is an object input waiting for resolution.
type ObjectRequest struct {
	ID      sui.ObjectID
	Mutable bool
}

// UnresolvedObjects returns the object inputs that still need a reference.
func (b *Builder) UnresolvedObjects() []ObjectRequest {
	var out []ObjectRequest
	for _, in := range b.inputs {
		if in.kind == callArgObject && in.resolved == nil {
			out = append(out, ObjectRequest{ID: in.objectID, Mutable: in.mutable})
		}
	}
	return out
}

// ResolveObject sets the reference of an object input. Shared objects keep
// the mutability requested by the commands.
func (b *Builder) ResolveObject(id sui.ObjectID, arg ObjectArg) error {
	idx, ok := b.objects[id]
	if !ok {
		return errors.Wrapf(errs.NotFound, "object %s is not an input", id)
	}
	if arg.IsShared() {
		arg.mutable = b.inputs[idx].mutable
	}
	b.inputs[idx].resolved = &arg
	return nil
}

// GasData selects the coins paying for the transaction.
type GasData struct {
	Payment []sui.ObjectRef
	Owner   sui.Address
	Price   uint64
	Budget  uint64
}

// Build encodes the transaction as BCS TransactionData (V1).
func (b *Builder) Build(sender sui.Address, gas GasData) ([]byte, error) {
	if len(b.commands) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "transaction has no commands")
	}
	if unresolved := b.UnresolvedObjects(); len(unresolved) > 0 {
		return nil, errors.Wrapf(errs.InvalidArgument, "object %s is not resolved", unresolved[0].ID)
	}
	if len(gas.Payment) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "no gas payment")
	}
	if gas.Owner.IsZero() {
		gas.Owner = sender
	}

	e := bcs.NewEncoder()
	e.Tag(0) // TransactionData::V1
	e.Tag(0) // TransactionKind::ProgrammableTransaction
	bcs.Vector(e, b.inputs, func(e *bcs.Encoder, in input) { e.Marshal(in) })
	bcs.Vector(e, b.commands, func(e *bcs.Encoder, c command) { e.Marshal(c) })
	e.Fixed(sender[:])
	bcs.Vector(e, gas.Payment, marshalObjectRef)
	e.Fixed(gas.Owner[:]).U64(gas.Price).U64(gas.Budget)
	e.Tag(0) // TransactionExpiration::None
	return e.Bytes(), nil
}
