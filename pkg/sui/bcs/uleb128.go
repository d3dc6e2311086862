package bcs

import (
	"github.com/gaze-network/event-horizon/common/errs"
)

const (
	ErrEmpty        = errs.ErrorKind("uleb128: empty byte sequence")
	ErrUnterminated = errs.ErrorKind("uleb128: unterminated byte sequence")
	ErrOverflow     = errs.ErrorKind("uleb128: value overflows u32")
)

// maxULEB128Length is the encoded length of the largest BCS sequence length (u32).
const maxULEB128Length = 5

// EncodeULEB128 appends the ULEB128 form of n to dst.
func EncodeULEB128(dst []byte, n uint32) []byte {
	for n>>7 > 0 {
		dst = append(dst, byte(n&0b0111_1111)|0b1000_0000)
		n >>= 7
	}
	return append(dst, byte(n))
}

// DecodeULEB128 reads a ULEB128 value from the start of data and returns it
// with the number of bytes consumed.
func DecodeULEB128(data []byte) (n uint32, length int, err error) {
	if len(data) == 0 {
		return 0, 0, ErrEmpty
	}
	var v uint64
	for i, b := range data {
		if i >= maxULEB128Length {
			return 0, 0, ErrOverflow
		}
		v |= uint64(b&0b0111_1111) << (7 * i)
		// if the high bit is not set, then this is the last byte
		if b&0b1000_0000 == 0 {
			if v > uint64(^uint32(0)) {
				return 0, 0, ErrOverflow
			}
			return uint32(v), i + 1, nil
		}
	}
	return 0, 0, ErrUnterminated
}
