package sui

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
)

// Uint64 is a u64 Move value. The JSON-RPC renders u64 as a decimal string,
// but numbers are accepted too. Empty strings and null decode to zero.
type Uint64 uint64

func (u Uint64) Uint64() uint64 {
	return uint64(u)
}

func (u Uint64) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

func (u Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uint64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*u = 0
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WithStack(err)
		}
	}
	if s == "" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return errors.Wrapf(errs.OverflowUint64, "value %q", s)
		}
		return errors.Wrapf(errs.InvalidArgument, "invalid u64 %q", s)
	}
	*u = Uint64(v)
	return nil
}
