// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

// Version is the Zenoh wire protocol version this engine speaks.
const Version uint8 = 9

// Message IDs occupy the low 5 bits of every header byte. Concrete numeric
// values are not mandated by this core (body field codecs, including the
// exact IDs the real protocol assigns, are out of scope); this module picks
// its own consistent set, preserving the ID-sharing relationships the codec
// depends on: InitSyn/InitAck share an id (disambiguated by the ack bit), as
// do OpenSyn/OpenAck, and Interest/InterestFinal (disambiguated by the
// ifinal bit).
const (
	idPush          byte = 1
	idRequest       byte = 2
	idResponse      byte = 3
	idResponseFinal byte = 4
	idInterest      byte = 5 // shared with InterestFinal
	idDeclare       byte = 6
	idFrameHeader   byte = 7
	idClose         byte = 8
	idKeepAlive     byte = 9
	idInitSynOrAck  byte = 10 // InitSyn when ack clear, InitAck when ack set
	idOpenSynOrAck  byte = 11 // OpenSyn when ack clear, OpenAck when ack set
)

const (
	headerIDMask    byte = 0b0001_1111
	headerAckBit    byte = 0b0010_0000
	headerFlagBit   byte = 0b0100_0000
	headerFinalMask byte = headerAckBit | headerFlagBit
)

// packHeader builds the 1-byte wire header. ack and flag are body-specific
// disambiguation bits (see header.go doc comment); bit 7 is reserved for use
// by an individual body's own codec.
func packHeader(id byte, ack, flag bool) byte {
	h := id & headerIDMask
	if ack {
		h |= headerAckBit
	}
	if flag {
		h |= headerFlagBit
	}
	return h
}

type unpackedHeader struct {
	id   byte
	ack  bool
	// ifinal mirrors the original codec's literal bit test: true exactly when
	// neither the ack bit nor the flag bit is set. InterestFinal is decoded
	// when this is true for the shared Interest/InterestFinal id; plain
	// Interest is decoded otherwise.
	ifinal bool
}

func unpackHeader(h byte) unpackedHeader {
	return unpackedHeader{
		id:     h & headerIDMask,
		ack:    h&headerAckBit != 0,
		ifinal: h&headerFinalMask == 0,
	}
}
