// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import "github.com/zenoh-go/ztransport/internal/sn"

// Bits selects the wire width of a negotiated numeric field.
type Bits uint8

const (
	BitsU8 Bits = iota
	BitsU16
	BitsU32
	BitsU64
)

func (b Bits) snWidth() sn.Width {
	switch b {
	case BitsU8:
		return sn.Width8
	case BitsU16:
		return sn.Width16
	case BitsU32:
		return sn.Width32
	default:
		return sn.Width64
	}
}

func (b Bits) String() string {
	switch b {
	case BitsU8:
		return "U8"
	case BitsU16:
		return "U16"
	case BitsU32:
		return "U32"
	case BitsU64:
		return "U64"
	default:
		return "invalid"
	}
}

// Field names a per-connection resolution slot.
type Field uint8

const (
	FieldFrameSN Field = iota
	FieldRequestID
)

// Resolution is a bit-packed record assigning a Bits width to FrameSN and
// RequestID: 2 bits per field, packed into one byte.
type Resolution struct {
	packed uint8
}

// DefaultResolution matches the zero value: both fields at U8.
var DefaultResolution = Resolution{}

func fieldShift(f Field) uint8 {
	if f == FieldFrameSN {
		return 0
	}
	return 2
}

// Get returns the width currently assigned to f.
func (r Resolution) Get(f Field) Bits {
	return Bits((r.packed >> fieldShift(f)) & 0x3)
}

// Set assigns width to f, returning the updated Resolution.
func (r Resolution) Set(f Field, width Bits) Resolution {
	shift := fieldShift(f)
	r.packed = (r.packed &^ (0x3 << shift)) | (uint8(width) << shift)
	return r
}

// Accept reports whether peer's proposed width for f is acceptable given r's
// own capability: the peer may only propose a width <= ours.
func (r Resolution) Accept(f Field, peerWidth Bits) bool {
	return peerWidth <= r.Get(f)
}

func (r Resolution) encode() byte { return r.packed }

func resolutionFromByte(b byte) Resolution { return Resolution{packed: b} }
