package bcs

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULEB128RoundTrip(t *testing.T) {
	test := func(n uint32) {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			t.Parallel()
			encoded := EncodeULEB128(nil, n)
			decoded, length, err := DecodeULEB128(encoded)
			require.NoError(t, err)
			assert.Equal(t, n, decoded)
			assert.Equal(t, len(encoded), length)
		})
	}

	test(0)
	for i := 0; i < 32; i++ {
		test(uint32(1) << i)
	}
	test(math.MaxUint32)
}

func TestULEB128Encoding(t *testing.T) {
	testcases := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprint(tc.value), func(t *testing.T) {
			assert.Equal(t, tc.expected, EncodeULEB128(nil, tc.value))
		})
	}
}

func TestULEB128DecodeError(t *testing.T) {
	testError := func(name string, bytes []byte, expectedError error) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := DecodeULEB128(bytes)
			if expectedError == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, expectedError)
			}
		})
	}

	testError("empty", []byte{}, ErrEmpty)
	testError("unterminated", []byte{0b1000_0000}, ErrUnterminated)
	testError("max u32", []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, nil)
	testError("overflow u32", []byte{0xff, 0xff, 0xff, 0xff, 0x1f}, ErrOverflow)
	testError("too long", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, ErrOverflow)
}

func TestEncoder(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		e := NewEncoder().U8(1).U16(0x0203).U32(0x04050607).U64(0x08)
		assert.Equal(t, []byte{
			0x01,
			0x03, 0x02,
			0x07, 0x06, 0x05, 0x04,
			0x08, 0, 0, 0, 0, 0, 0, 0,
		}, e.Bytes())
	})
	t.Run("bool", func(t *testing.T) {
		assert.Equal(t, []byte{1}, Bool(true))
		assert.Equal(t, []byte{0}, Bool(false))
	})
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, []byte{3, 'a', 'b', 'c'}, String("abc"))
		assert.Equal(t, []byte{0}, String(""))
	})
	t.Run("vector<string>", func(t *testing.T) {
		assert.Equal(t, []byte{2, 1, 'a', 2, 'b', 'c'}, Strings([]string{"a", "bc"}))
		assert.Equal(t, []byte{0}, Strings(nil))
	})
	t.Run("vector<u64>", func(t *testing.T) {
		assert.Equal(t, []byte{
			2,
			1, 0, 0, 0, 0, 0, 0, 0,
			0, 1, 0, 0, 0, 0, 0, 0,
		}, U64s([]uint64{1, 256}))
	})
	t.Run("fixed", func(t *testing.T) {
		assert.Equal(t, []byte{0xaa, 0xbb}, NewEncoder().Fixed([]byte{0xaa, 0xbb}).Bytes())
	})
}
