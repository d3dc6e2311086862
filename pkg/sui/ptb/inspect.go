package ptb

// MoveCall is a Move call command as recorded by the builder.
type MoveCall struct {
	Target    Target
	Arguments []Argument
}

// MoveCalls returns the Move call commands in order.
func (b *Builder) MoveCalls() []MoveCall {
	var calls []MoveCall
	for _, c := range b.commands {
		if c.kind == commandMoveCall {
			calls = append(calls, MoveCall{Target: c.target, Arguments: c.args})
		}
	}
	return calls
}

// PureValue returns the BCS bytes of a pure input argument.
func (b *Builder) PureValue(arg Argument) ([]byte, bool) {
	if arg.Kind != ArgumentInput || int(arg.Index) >= len(b.inputs) {
		return nil, false
	}
	in := b.inputs[arg.Index]
	if in.kind != callArgPure {
		return nil, false
	}
	return in.pure, true
}

// ObjectValue returns the object id and mutability of an object input argument.
func (b *Builder) ObjectValue(arg Argument) (ObjectRequest, bool) {
	if arg.Kind != ArgumentInput || int(arg.Index) >= len(b.inputs) {
		return ObjectRequest{}, false
	}
	in := b.inputs[arg.Index]
	if in.kind != callArgObject {
		return ObjectRequest{}, false
	}
	return ObjectRequest{ID: in.objectID, Mutable: in.mutable}, true
}
