package ptb

import (
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/bcs"
)

type callArgKind uint8

const (
	callArgPure callArgKind = iota
	callArgObject
)

type objectArgKind uint8

const (
	objectArgImmOrOwned objectArgKind = iota
	objectArgShared
)

// ObjectArg is a resolved object input.
type ObjectArg struct {
	kind objectArgKind

	ref sui.ObjectRef

	id                   sui.ObjectID
	initialSharedVersion uint64
	mutable              bool
}

// ImmOrOwnedObject is an owned or immutable object pinned at a version.
func ImmOrOwnedObject(ref sui.ObjectRef) ObjectArg {
	return ObjectArg{kind: objectArgImmOrOwned, ref: ref}
}

// SharedObject is a shared object, referenced by its initial shared version.
func SharedObject(id sui.ObjectID, initialSharedVersion uint64, mutable bool) ObjectArg {
	return ObjectArg{
		kind:                 objectArgShared,
		id:                   id,
		initialSharedVersion: initialSharedVersion,
		mutable:              mutable,
	}
}

func (o ObjectArg) IsShared() bool {
	return o.kind == objectArgShared
}

func (o ObjectArg) MarshalBCS(e *bcs.Encoder) {
	e.Tag(int(o.kind))
	switch o.kind {
	case objectArgImmOrOwned:
		marshalObjectRef(e, o.ref)
	case objectArgShared:
		e.Fixed(o.id[:]).U64(o.initialSharedVersion).Bool(o.mutable)
	}
}

func marshalObjectRef(e *bcs.Encoder, ref sui.ObjectRef) {
	e.Fixed(ref.ObjectID[:]).U64(ref.Version).ByteVector(ref.Digest[:])
}

type input struct {
	kind callArgKind
	pure []byte

	// object inputs
	objectID sui.ObjectID
	mutable  bool
	resolved *ObjectArg
}

func (in input) MarshalBCS(e *bcs.Encoder) {
	e.Tag(int(in.kind))
	switch in.kind {
	case callArgPure:
		e.ByteVector(in.pure)
	case callArgObject:
		e.Marshal(*in.resolved)
	}
}
