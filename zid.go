// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import (
	"github.com/google/uuid"
)

// MaxZenohIdSize is the largest number of bytes a ZenohId may occupy.
const MaxZenohIdSize = 16

// ZenohId is a 1..=16-byte little-endian-encoded peer identifier. Equality
// is by content: two ids with different recorded sizes are never equal, and
// trailing unused bytes beyond size are ignored.
type ZenohId struct {
	bytes [MaxZenohIdSize]byte
	size  uint8
}

// NewZenohId builds a ZenohId from b, which must be 1..=16 bytes.
func NewZenohId(b []byte) (ZenohId, error) {
	var id ZenohId
	if len(b) == 0 {
		return id, ErrInvalidArgument
	}
	if len(b) > MaxZenohIdSize {
		return id, ErrTooLong
	}
	copy(id.bytes[:], b)
	id.size = uint8(len(b))
	return id, nil
}

// NewRandomZenohId returns a fresh 16-byte ZenohId drawn from a random UUID,
// suitable as a local peer identity when the caller has no fixed one of its
// own.
func NewRandomZenohId() ZenohId {
	u := uuid.New()
	id, _ := NewZenohId(u[:])
	return id
}

// Bytes returns the id's content, aliasing no external state (a copy).
func (z ZenohId) Bytes() []byte {
	out := make([]byte, z.size)
	copy(out, z.bytes[:z.size])
	return out
}

// Size returns the recorded byte length, 0 for the zero value.
func (z ZenohId) Size() int { return int(z.size) }

// Equal reports whether z and other have the same recorded size and bytes.
func (z ZenohId) Equal(other ZenohId) bool {
	if z.size != other.size {
		return false
	}
	return z.bytes == other.bytes
}

// IsZero reports whether z was never assigned an identity.
func (z ZenohId) IsZero() bool { return z.size == 0 }

func (z ZenohId) String() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, z.size*2)
	for i := 0; i < int(z.size); i++ {
		b := z.bytes[i]
		buf[i*2] = hexDigits[b>>4]
		buf[i*2+1] = hexDigits[b&0x0F]
	}
	return string(buf)
}
