// Package sui contains the Sui primitives used by the service: account and
// object addresses, object digests and references, lenient u64 JSON values
// and the Ed25519 keypair used to sign transactions.
package sui

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
)

const AddressLength = 32

// Address is a 32-byte Sui account address or object id.
type Address [AddressLength]byte

// ObjectID identifies an on-chain object. Object ids share the address space.
type ObjectID = Address

// Well-known system objects.
var (
	// ClockObjectID is the shared `0x2::clock::Clock` object.
	ClockObjectID = MustParseAddress("0x6")
)

// ParseAddress parses a hex address with or without `0x` prefix. Short
// addresses (e.g. `0x6`) are left-padded with zeros.
func ParseAddress(s string) (Address, error) {
	var addr Address
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if raw == "" {
		return addr, errors.Wrap(errs.InvalidArgument, "empty address")
	}
	if len(raw) > AddressLength*2 {
		return addr, errors.Wrapf(errs.InvalidArgument, "address %q is too long", s)
	}
	if len(raw)%2 != 0 || len(raw) < AddressLength*2 {
		raw = strings.Repeat("0", AddressLength*2-len(raw)) + raw
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return addr, errors.Wrapf(errs.InvalidArgument, "invalid address %q: %v", s, err)
	}
	copy(addr[:], b)
	return addr, nil
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the full-length `0x` hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// EqualAddress reports whether the two string forms name the same address.
func EqualAddress(a, b string) bool {
	x, err := ParseAddress(a)
	if err != nil {
		return false
	}
	y, err := ParseAddress(b)
	if err != nil {
		return false
	}
	return x == y
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*a = addr
	return nil
}

var (
	_ json.Marshaler   = Address{}
	_ json.Unmarshaler = (*Address)(nil)
)

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.WithStack(err)
	}
	return a.UnmarshalText([]byte(s))
}
