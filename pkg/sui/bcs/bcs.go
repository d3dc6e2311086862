// Package bcs implements the subset of Binary Canonical Serialization needed
// to build Sui transactions: little-endian integers, booleans, ULEB128
// prefixed sequences and strings, fixed byte arrays and enum tags.
package bcs

import (
	"encoding/binary"
	"math"
)

// Marshaler is implemented by types that can encode themselves in BCS.
type Marshaler interface {
	MarshalBCS(e *Encoder)
}

// Encoder accumulates BCS encoded values.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Bytes returns the encoded bytes. The slice aliases the encoder buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) U8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) U16(v uint16) *Encoder {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
	return e
}

func (e *Encoder) U32(v uint32) *Encoder {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return e
}

func (e *Encoder) U64(v uint64) *Encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

func (e *Encoder) Bool(v bool) *Encoder {
	if v {
		return e.U8(1)
	}
	return e.U8(0)
}

// Length writes a sequence length. Lengths above u32 can't be encoded.
func (e *Encoder) Length(n int) *Encoder {
	if n < 0 || n > math.MaxUint32 {
		panic("bcs: sequence length out of range")
	}
	e.buf = EncodeULEB128(e.buf, uint32(n))
	return e
}

// Tag writes an enum variant index.
func (e *Encoder) Tag(variant int) *Encoder {
	return e.Length(variant)
}

// Fixed writes raw bytes without a length prefix (e.g. addresses).
func (e *Encoder) Fixed(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

// ByteVector writes a `vector<u8>`.
func (e *Encoder) ByteVector(b []byte) *Encoder {
	return e.Length(len(b)).Fixed(b)
}

func (e *Encoder) String(s string) *Encoder {
	return e.ByteVector([]byte(s))
}

func (e *Encoder) Marshal(v Marshaler) *Encoder {
	v.MarshalBCS(e)
	return e
}

// Vector writes a length prefixed sequence using encode for every element.
func Vector[T any](e *Encoder, items []T, encode func(*Encoder, T)) *Encoder {
	e.Length(len(items))
	for _, item := range items {
		encode(e, item)
	}
	return e
}

// Marshal encodes a single value.
func Marshal(v Marshaler) []byte {
	return NewEncoder().Marshal(v).Bytes()
}

// U64 returns the encoding of a `u64`.
func U64(v uint64) []byte {
	return NewEncoder().U64(v).Bytes()
}

// String returns the encoding of a Move `String`.
func String(s string) []byte {
	return NewEncoder().String(s).Bytes()
}

// Bool returns the encoding of a `bool`.
func Bool(v bool) []byte {
	return NewEncoder().Bool(v).Bytes()
}

// Strings returns the encoding of a `vector<String>`.
func Strings(items []string) []byte {
	return Vector(NewEncoder(), items, func(e *Encoder, s string) { e.String(s) }).Bytes()
}

// U64s returns the encoding of a `vector<u64>`.
func U64s(items []uint64) []byte {
	return Vector(NewEncoder(), items, func(e *Encoder, v uint64) { e.U64(v) }).Bytes()
}
