package suirpc

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
)

const (
	// SUICoinType is the native coin type.
	SUICoinType = "0x2::sui::SUI"

	RequestTypeWaitForLocalExecution = "WaitForLocalExecution"

	// ExecutionStatusSuccess is the effects status of a successful transaction.
	ExecutionStatusSuccess = "success"
)

type ObjectDataOptions struct {
	ShowType    bool `json:"showType,omitempty"`
	ShowOwner   bool `json:"showOwner,omitempty"`
	ShowContent bool `json:"showContent,omitempty"`
}

type ObjectResponseQuery struct {
	Filter  *ObjectFilter      `json:"filter,omitempty"`
	Options *ObjectDataOptions `json:"options,omitempty"`
}

type ObjectFilter struct {
	StructType string `json:"StructType,omitempty"`
}

type ObjectResponse struct {
	Data  *ObjectData          `json:"data,omitempty"`
	Error *ObjectResponseError `json:"error,omitempty"`
}

type ObjectResponseError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id,omitempty"`
}

// Object returns the object data or errs.NotFound when the node answered
// with an error (deleted, missing, ...).
func (r ObjectResponse) Object() (*ObjectData, error) {
	if r.Error != nil {
		return nil, errors.Wrapf(errs.NotFound, "object error %q", r.Error.Code)
	}
	if r.Data == nil {
		return nil, errors.Wrap(errs.NotFound, "object without data")
	}
	return r.Data, nil
}

type ObjectData struct {
	ObjectID sui.ObjectID `json:"objectId"`
	Version  sui.Uint64   `json:"version"`
	Digest   sui.Digest   `json:"digest"`
	Type     string       `json:"type,omitempty"`
	Owner    *ObjectOwner `json:"owner,omitempty"`
	Content  *MoveContent `json:"content,omitempty"`
}

func (o ObjectData) Ref() sui.ObjectRef {
	return sui.ObjectRef{
		ObjectID: o.ObjectID,
		Version:  o.Version.Uint64(),
		Digest:   o.Digest,
	}
}

// MoveContent is the parsed content of an object. Fields is the Move struct
// rendered as JSON.
type MoveContent struct {
	DataType          string          `json:"dataType"`
	Type              string          `json:"type,omitempty"`
	HasPublicTransfer bool            `json:"hasPublicTransfer,omitempty"`
	Fields            json.RawMessage `json:"fields,omitempty"`
}

// IsMoveObject reports whether the content is a Move object (not a package).
func (c *MoveContent) IsMoveObject() bool {
	return c != nil && c.DataType == "moveObject"
}

// ObjectOwner is one of `"Immutable"`, `{"AddressOwner": ...}`,
// `{"ObjectOwner": ...}` or `{"Shared": {"initial_shared_version": ...}}`.
type ObjectOwner struct {
	AddressOwner *sui.Address `json:"AddressOwner,omitempty"`
	ObjectOwner  *sui.Address `json:"ObjectOwner,omitempty"`
	Shared       *SharedOwner `json:"Shared,omitempty"`
	Immutable    bool         `json:"-"`
}

type SharedOwner struct {
	InitialSharedVersion sui.Uint64 `json:"initial_shared_version"`
}

func (o *ObjectOwner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WithStack(err)
		}
		if s != "Immutable" {
			return errors.Wrapf(errs.Unsupported, "owner %q", s)
		}
		*o = ObjectOwner{Immutable: true}
		return nil
	}
	type alias ObjectOwner
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.WithStack(err)
	}
	*o = ObjectOwner(v)
	return nil
}

func (o *ObjectOwner) IsShared() bool {
	return o != nil && o.Shared != nil
}

type ObjectsPage struct {
	Data        []ObjectResponse `json:"data"`
	NextCursor  *string          `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}

type Coin struct {
	CoinType     string       `json:"coinType"`
	CoinObjectID sui.ObjectID `json:"coinObjectId"`
	Version      sui.Uint64   `json:"version"`
	Digest       sui.Digest   `json:"digest"`
	Balance      sui.Uint64   `json:"balance"`
}

func (c Coin) Ref() sui.ObjectRef {
	return sui.ObjectRef{
		ObjectID: c.CoinObjectID,
		Version:  c.Version.Uint64(),
		Digest:   c.Digest,
	}
}

type CoinPage struct {
	Data        []Coin  `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type Balance struct {
	CoinType        string     `json:"coinType"`
	CoinObjectCount int        `json:"coinObjectCount"`
	TotalBalance    sui.Uint64 `json:"totalBalance"`
}

type TransactionBlockResponseOptions struct {
	ShowEffects bool `json:"showEffects,omitempty"`
	ShowEvents  bool `json:"showEvents,omitempty"`
}

type TransactionBlockResponse struct {
	Digest  string                   `json:"digest"`
	Effects *TransactionBlockEffects `json:"effects,omitempty"`
}

type TransactionBlockEffects struct {
	Status ExecutionStatus `json:"status"`
}

type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Succeeded reports whether the transaction effects are `success`.
func (r TransactionBlockResponse) Succeeded() bool {
	return r.Effects != nil && r.Effects.Status.Status == ExecutionStatusSuccess
}
