package ptb

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/bcs"
)

type commandKind uint8

const (
	commandMoveCall   commandKind = 0
	commandSplitCoins commandKind = 2
)

// Target is a fully qualified Move function `package::module::function`.
type Target struct {
	Package  sui.ObjectID
	Module   string
	Function string
}

// ParseTarget parses `0xpkg::module::function`.
func ParseTarget(s string) (Target, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return Target{}, errors.Wrapf(errs.InvalidArgument, "invalid move call target %q", s)
	}
	pkg, err := sui.ParseAddress(parts[0])
	if err != nil {
		return Target{}, errors.Wrap(err, "invalid package id")
	}
	return Target{Package: pkg, Module: parts[1], Function: parts[2]}, nil
}

func (t Target) String() string {
	return t.Package.String() + "::" + t.Module + "::" + t.Function
}

type command struct {
	kind commandKind

	// MoveCall
	target Target
	args   []Argument

	// SplitCoins
	coin    Argument
	amounts []Argument
}

func (c command) MarshalBCS(e *bcs.Encoder) {
	e.Tag(int(c.kind))
	switch c.kind {
	case commandMoveCall:
		e.Fixed(c.target.Package[:]).
			String(c.target.Module).
			String(c.target.Function).
			Length(0) // type arguments
		bcs.Vector(e, c.args, func(e *bcs.Encoder, a Argument) { e.Marshal(a) })
	case commandSplitCoins:
		e.Marshal(c.coin)
		bcs.Vector(e, c.amounts, func(e *bcs.Encoder, a Argument) { e.Marshal(a) })
	}
}
