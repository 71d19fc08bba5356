package ztransport

import "testing"

// drain pulls every NetworkMessage out of an RxIterator, discarding them,
// and reports how many were yielded.
func drain(it *RxIterator) int {
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

// TestConnectListenHandshake drives a full four-way handshake between a
// connect-side and a listen-side Engine over an in-memory byte channel,
// mirroring the reference implementation's end-to-end transport test: three
// rounds of feed/flush/interact bring both sides to Opened with matching
// negotiated state.
func TestConnectListenHandshake(t *testing.T) {
	zidA, _ := NewZenohId([]byte{0xA})
	zidB, _ := NewZenohId([]byte{0xB})

	a, err := New(make([]byte, 512), Connect(), WithZid(zidA), WithBatchSize(1024))
	if err != nil {
		t.Fatalf("New(A): %v", err)
	}
	b, err := New(make([]byte, 512), Listen(), WithZid(zidB), WithBatchSize(2048))
	if err != nil {
		t.Fatalf("New(B): %v", err)
	}

	// Round 1: A emits InitSyn, B consumes it and queues InitAck.
	initSyn, err := a.Init()
	if err != nil {
		t.Fatalf("a.Init: %v", err)
	}
	if err := b.Feed(initSyn); err != nil {
		t.Fatalf("b.Feed(initSyn): %v", err)
	}
	if n := drain(b.Flush()); n != 0 {
		t.Fatalf("b yielded %d NetworkMessages from a handshake-only batch", n)
	}
	if b.State().Kind() != StateWaitingOpenSyn {
		t.Fatalf("b state = %v, want WaitingOpenSyn", b.State().Kind())
	}
	initAck, err := b.Interact()
	if err != nil {
		t.Fatalf("b.Interact: %v", err)
	}
	if initAck == nil {
		t.Fatal("b.Interact produced no InitAck")
	}

	// Round 2: A consumes InitAck, queues OpenSyn.
	if err := a.Feed(initAck); err != nil {
		t.Fatalf("a.Feed(initAck): %v", err)
	}
	if n := drain(a.Flush()); n != 0 {
		t.Fatalf("a yielded %d NetworkMessages from a handshake-only batch", n)
	}
	if a.State().Kind() != StateWaitingOpenAck {
		t.Fatalf("a state = %v, want WaitingOpenAck", a.State().Kind())
	}
	openSyn, err := a.Interact()
	if err != nil {
		t.Fatalf("a.Interact: %v", err)
	}
	if openSyn == nil {
		t.Fatal("a.Interact produced no OpenSyn")
	}

	// Round 3: B consumes OpenSyn, opens, queues OpenAck.
	if err := b.Feed(openSyn); err != nil {
		t.Fatalf("b.Feed(openSyn): %v", err)
	}
	if n := drain(b.Flush()); n != 0 {
		t.Fatalf("b yielded %d NetworkMessages from a handshake-only batch", n)
	}
	if !b.Opened() {
		t.Fatal("b did not open after OpenSyn")
	}
	openAck, err := b.Interact()
	if err != nil {
		t.Fatalf("b.Interact: %v", err)
	}
	if openAck == nil {
		t.Fatal("b.Interact produced no OpenAck")
	}

	// A consumes OpenAck and opens too, with no further response.
	if err := a.Feed(openAck); err != nil {
		t.Fatalf("a.Feed(openAck): %v", err)
	}
	if n := drain(a.Flush()); n != 0 {
		t.Fatalf("a yielded %d NetworkMessages from a handshake-only batch", n)
	}
	if !a.Opened() {
		t.Fatal("a did not open after OpenAck")
	}
	if final, err := a.Interact(); err != nil || final != nil {
		t.Fatalf("a.Interact after open = (%v, %v), want (nil, nil)", final, err)
	}

	if !a.State().PeerZid().Equal(zidB) {
		t.Fatal("a does not know b's zid")
	}
	if !b.State().PeerZid().Equal(zidA) {
		t.Fatal("b does not know a's zid")
	}
	if a.State().SN() != b.State().SN() {
		t.Fatalf("negotiated sn mismatch: a=%d b=%d", a.State().SN(), b.State().SN())
	}
}

// TestOpenedEnginesExchangeNetworkMessages carries a NetworkMessage across
// an already-opened pair of Engines, checking that frame context and sn
// sequencing on the transmit side survive a Feed/Flush roundtrip on the
// receive side.
func TestOpenedEnginesExchangeNetworkMessages(t *testing.T) {
	zidA, _ := NewZenohId([]byte{0x1})
	zidB, _ := NewZenohId([]byte{0x2})

	a, _ := New(make([]byte, 512), Connect(), WithZid(zidA))
	b, _ := New(make([]byte, 512), Listen(), WithZid(zidB))

	initSyn, _ := a.Init()
	_ = b.Feed(initSyn)
	drain(b.Flush())
	initAck, _ := b.Interact()
	_ = a.Feed(initAck)
	drain(a.Flush())
	openSyn, _ := a.Interact()
	_ = b.Feed(openSyn)
	drain(b.Flush())
	openAck, _ := b.Interact()
	_ = a.Feed(openAck)
	drain(a.Flush())

	if !a.Opened() || !b.Opened() {
		t.Fatal("handshake did not complete")
	}

	payload := []byte("hello")
	if err := a.Push(NetworkMessage{Reliability: Reliable, QoS: QoS(2), Body: NewPush(payload)}); err != nil {
		t.Fatalf("a.Push: %v", err)
	}
	wire := a.FlushTx()
	if wire == nil {
		t.Fatal("a.FlushTx produced nothing")
	}

	if err := b.Feed(wire); err != nil {
		t.Fatalf("b.Feed: %v", err)
	}
	it := b.Flush()
	got, ok := it.Next()
	if !ok {
		t.Fatal("b did not decode the pushed message")
	}
	if got.Reliability != Reliable || got.QoS != QoS(2) {
		t.Fatalf("got = %+v", got)
	}
	if string(payloadOf(got.Body)) != "hello" {
		t.Fatalf("payload = %q, want %q", payloadOf(got.Body), "hello")
	}
}
