package ztransport

import (
	"bytes"
	"testing"

	"github.com/zenoh-go/ztransport/internal/wire"
)

func TestNetworkBodyRoundtrip(t *testing.T) {
	payload := []byte("hello zenoh")
	bodies := []NetworkBody{
		NewPush(payload),
		NewRequest(payload),
		NewResponse(payload),
		NewResponseFinal(payload),
		NewInterest(payload),
		NewInterestFinal(payload),
		NewDeclare(payload),
	}
	for _, body := range bodies {
		buf := make([]byte, 256)
		w := wire.NewWriter(buf)
		ack, flag := headerFlagsFor(body)
		h := packHeader(body.bodyID(), ack, flag)
		if err := w.Byte(h); err != nil {
			t.Fatalf("header: %v", err)
		}
		if err := body.encodeBody(w); err != nil {
			t.Fatalf("encodeBody: %v", err)
		}

		r := wire.NewReader(buf[1:w.Offset()])
		got, err := decodeNetworkBody(unpackHeader(h), r)
		if err != nil {
			t.Fatalf("decodeNetworkBody: %v", err)
		}
		if got.bodyID() != body.bodyID() {
			t.Fatalf("bodyID = %d, want %d", got.bodyID(), body.bodyID())
		}
		if !bytes.Equal(payloadOf(got), payload) {
			t.Fatalf("payload = %q, want %q", payloadOf(got), payload)
		}
	}
}

func payloadOf(b NetworkBody) []byte {
	switch v := b.(type) {
	case Push:
		return v.payload
	case Request:
		return v.payload
	case Response:
		return v.payload
	case ResponseFinal:
		return v.payload
	case Interest:
		return v.payload
	case InterestFinal:
		return v.payload
	case Declare:
		return v.payload
	default:
		return nil
	}
}

func TestInterestAndInterestFinalShareID(t *testing.T) {
	i := NewInterest(nil)
	f := NewInterestFinal(nil)
	if i.bodyID() != f.bodyID() {
		t.Fatal("Interest and InterestFinal do not share an id")
	}
}

func TestInterestFinalDisambiguationByIfinalBit(t *testing.T) {
	ackI, flagI := headerFlagsFor(NewInterest(nil))
	ackF, flagF := headerFlagsFor(NewInterestFinal(nil))

	hdrI := unpackHeader(packHeader(idInterest, ackI, flagI))
	hdrF := unpackHeader(packHeader(idInterest, ackF, flagF))

	if hdrI.ifinal {
		t.Fatal("Interest decoded as ifinal")
	}
	if !hdrF.ifinal {
		t.Fatal("InterestFinal did not decode as ifinal")
	}

	w := wire.NewWriter(make([]byte, 16))
	_ = w.PutBlob(nil)
	r := wire.NewReader(w.Bytes())
	body, err := decodeNetworkBody(hdrF, r)
	if err != nil {
		t.Fatalf("decodeNetworkBody: %v", err)
	}
	if _, ok := body.(InterestFinal); !ok {
		t.Fatalf("decoded %T, want InterestFinal", body)
	}
}
