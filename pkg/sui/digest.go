package sui

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
)

const DigestLength = 32

// Digest is a 32-byte object or transaction digest, rendered in base58.
type Digest [DigestLength]byte

func ParseDigest(s string) (Digest, error) {
	var d Digest
	b := base58.Decode(s)
	if len(b) != DigestLength {
		return d, errors.Wrapf(errs.InvalidArgument, "invalid digest %q", s)
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) String() string {
	return base58.Encode(d[:])
}

func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.WithStack(err)
	}
	digest, err := ParseDigest(s)
	if err != nil {
		return errors.WithStack(err)
	}
	*d = digest
	return nil
}

// ObjectRef pins an owned or immutable object at a specific version.
type ObjectRef struct {
	ObjectID ObjectID `json:"objectId"`
	Version  uint64   `json:"version"`
	Digest   Digest   `json:"digest"`
}
