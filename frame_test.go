package ztransport

import (
	"testing"

	"github.com/zenoh-go/ztransport/internal/wire"
)

func TestFrameHeaderRoundtrip(t *testing.T) {
	cases := []FrameHeader{
		{Reliability: BestEffort, QoS: DefaultQoS, SN: 0},
		{Reliability: Reliable, QoS: QoS(7), SN: 0xDEADBEEF},
	}
	for _, fh := range cases {
		buf := make([]byte, frameHeaderEncodedLen)
		w := wire.NewWriter(buf)
		if err := fh.encode(w); err != nil {
			t.Fatalf("encode: %v", err)
		}
		if w.Offset() != frameHeaderEncodedLen {
			t.Fatalf("encoded %d bytes, want %d", w.Offset(), frameHeaderEncodedLen)
		}
		header := buf[0]
		r := wire.NewReader(buf[1:])
		got, err := decodeFrameHeader(header, r)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != fh {
			t.Fatalf("roundtrip = %+v, want %+v", got, fh)
		}
	}
}

func TestFrameHeaderEncodesReliabilityInReservedBit(t *testing.T) {
	buf := make([]byte, frameHeaderEncodedLen)
	w := wire.NewWriter(buf)
	fh := FrameHeader{Reliability: Reliable, QoS: DefaultQoS, SN: 1}
	if err := fh.encode(w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf[0]&0x80 == 0 {
		t.Fatal("Reliable did not set bit 7")
	}
	if unpackHeader(buf[0]).id != idFrameHeader {
		t.Fatal("header id is not idFrameHeader")
	}
}
