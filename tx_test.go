package ztransport

import (
	"encoding/binary"
	"testing"
)

func TestTxPushFlushDatagram(t *testing.T) {
	tx := newTx(make([]byte, 256), false)
	msg := NetworkMessage{Reliability: BestEffort, QoS: DefaultQoS, Body: NewPush([]byte("hi"))}
	if err := tx.Push(msg); err != nil {
		t.Fatalf("Push: %v", err)
	}
	out := tx.Flush()
	if out == nil {
		t.Fatal("Flush returned nil after a push")
	}
	if unpackHeader(out[0]).id != idFrameHeader {
		t.Fatal("datagram batch does not start with a FrameHeader")
	}
}

func TestTxStreamedPrependsBigEndianLength(t *testing.T) {
	tx := newTx(make([]byte, 256), true)
	msg := NetworkMessage{Reliability: BestEffort, QoS: DefaultQoS, Body: NewPush([]byte("hi"))}
	if err := tx.Push(msg); err != nil {
		t.Fatalf("Push: %v", err)
	}
	out := tx.Flush()
	if out == nil {
		t.Fatal("Flush returned nil after a push")
	}
	gotLen := binary.BigEndian.Uint16(out[:2])
	if int(gotLen) != len(out)-2 {
		t.Fatalf("length prefix = %d, want %d", gotLen, len(out)-2)
	}
}

func TestTxFlushWithNothingWrittenReturnsNil(t *testing.T) {
	tx := newTx(make([]byte, 64), true)
	if out := tx.Flush(); out != nil {
		t.Fatalf("Flush on empty batch = %v, want nil", out)
	}
}

func TestTxPushSuppressesFrameHeaderAcrossPushes(t *testing.T) {
	tx := newTx(make([]byte, 256), false)
	a := NetworkMessage{Reliability: BestEffort, QoS: DefaultQoS, Body: NewPush([]byte("a"))}
	b := NetworkMessage{Reliability: BestEffort, QoS: DefaultQoS, Body: NewPush([]byte("b"))}
	if err := tx.Push(a); err != nil {
		t.Fatalf("Push a: %v", err)
	}
	if err := tx.Push(b); err != nil {
		t.Fatalf("Push b: %v", err)
	}
	if tx.nextSN != 1 {
		t.Fatalf("nextSN = %d, want 1 (one FrameHeader for two same-context pushes)", tx.nextSN)
	}
}

func TestTxPushTooLargeForBatch(t *testing.T) {
	tx := newTx(make([]byte, 4), false)
	msg := NetworkMessage{Reliability: BestEffort, QoS: DefaultQoS, Body: NewPush([]byte("this does not fit"))}
	if err := tx.Push(msg); err != ErrMessageTooLargeForBatch {
		t.Fatalf("err = %v, want ErrMessageTooLargeForBatch", err)
	}
}

func TestTxAnswerHasNoFrameHeaderWrapper(t *testing.T) {
	tx := newTx(make([]byte, 256), false)
	out, err := tx.Answer(TransportMessage{Kind: KindKeepAlive})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if unpackHeader(out[0]).id == idFrameHeader {
		t.Fatal("Answer wrapped the message in a FrameHeader")
	}
	if unpackHeader(out[0]).id != idKeepAlive {
		t.Fatal("Answer did not encode the KeepAlive id")
	}
}

func TestTxBatchPacksUntilFull(t *testing.T) {
	tx := newTx(make([]byte, 32), false)
	msgs := make([]NetworkMessage, 10)
	for i := range msgs {
		msgs[i] = NetworkMessage{Reliability: BestEffort, QoS: DefaultQoS, Body: NewPush([]byte("x"))}
	}
	batch := tx.Batch(msgs)
	count := 0
	for {
		out, ok := batch.Next()
		if !ok {
			break
		}
		if len(out) == 0 {
			t.Fatal("Batch yielded an empty slice")
		}
		count++
		if count > len(msgs) {
			t.Fatal("Batch looped forever")
		}
	}
	if count == 0 {
		t.Fatal("Batch yielded nothing")
	}
	if count < 2 {
		t.Fatalf("Batch yielded %d batch(es), want at least 2 once the buffer fills", count)
	}
}

func TestTxSyncSeedsNextSNOnlyOnceOpened(t *testing.T) {
	zid, _ := NewZenohId([]byte{1})
	s := newConnectingState(zid, DefaultResolution, 1024, 0, nil)
	tx := newTx(make([]byte, 64), false)

	tx.Sync(s) // not opened yet: no-op
	if tx.synced {
		t.Fatal("Sync took effect before the handshake opened")
	}

	s.kind = StateOpened
	s.sn = 99
	tx.Sync(s)
	if !tx.synced || tx.nextSN != 99 {
		t.Fatalf("nextSN = %d, synced = %v, want 99/true", tx.nextSN, tx.synced)
	}

	s.sn = 1000
	tx.Sync(s)
	if tx.nextSN != 99 {
		t.Fatalf("nextSN = %d, want unchanged 99 (Sync must only seed once)", tx.nextSN)
	}
}
