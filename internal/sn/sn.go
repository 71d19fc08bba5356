// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sn derives a peer's initial FrameSN sequence number deterministically
// from both ends' ZenohId using a SHAKE128 extendable-output hash, per
// zenoh-proto's transport handshake (crates/zenoh-proto/src/transport/state.rs).
package sn

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Width selects the mask applied to the derived 32-bit value, matching the
// negotiated FrameSN field width. The masks are reproduced bit-for-bit from
// the original Rust implementation, including the U64 case deriving its mask
// from a 32-bit maximum — that is the actual wire behavior, not a bug this
// derivation is meant to correct.
type Width uint8

const (
	Width8 Width = iota
	Width16
	Width32
	Width64
)

func (w Width) mask() uint32 {
	switch w {
	case Width8:
		return uint32(0xFF) >> 1 // 0x7F
	case Width16:
		return uint32(0xFFFF) >> 2 // 0x3FFF
	case Width32:
		return uint32(0xFFFFFFFF) >> 4 // 0x0FFFFFFF
	case Width64:
		return uint32(0xFFFFFFFF) >> 1 // 0x7FFFFFFF
	default:
		return uint32(0xFFFFFFFF) >> 4
	}
}

// Derive computes the initial sequence number for a session opened between
// local and peer, under the negotiated FrameSN width.
//
// local and peer are fed into the XOF in that order (local first), then four
// output bytes are read and interpreted as a little-endian uint32 before
// masking to width.
func Derive(local, peer []byte, width Width) uint32 {
	h := sha3.NewShake128()
	_, _ = h.Write(local)
	_, _ = h.Write(peer)

	var out [4]byte
	_, _ = h.Read(out[:])

	x := binary.LittleEndian.Uint32(out[:])
	return x & width.mask()
}
