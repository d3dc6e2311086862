package ptb

import "github.com/gaze-network/event-horizon/pkg/sui/bcs"

type ArgumentKind uint8

const (
	ArgumentGasCoin ArgumentKind = iota
	ArgumentInput
	ArgumentResult
	ArgumentNestedResult
)

// Argument references a value available to a command: the gas coin, a
// transaction input or the result of a previous command.
type Argument struct {
	Kind        ArgumentKind
	Index       uint16
	ResultIndex uint16
}

// GasCoin is the coin paying for gas.
func GasCoin() Argument {
	return Argument{Kind: ArgumentGasCoin}
}

func (a Argument) MarshalBCS(e *bcs.Encoder) {
	e.Tag(int(a.Kind))
	switch a.Kind {
	case ArgumentInput, ArgumentResult:
		e.U16(a.Index)
	case ArgumentNestedResult:
		e.U16(a.Index).U16(a.ResultIndex)
	}
}
