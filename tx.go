// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import (
	"encoding/binary"

	"github.com/zenoh-go/ztransport/internal/wire"
)

// Tx owns the transmit-side buffer and the running frame context (last
// emitted reliability/qos, next outgoing sn) needed to suppress redundant
// FrameHeaders within a batch.
type Tx struct {
	buf      []byte
	cursor   int
	streamed bool

	nextSN  uint32
	synced  bool

	haveContext     bool
	lastReliability Reliability
	lastQoS         QoS
}

func newTx(buf []byte, streamed bool) *Tx {
	return &Tx{buf: buf, streamed: streamed}
}

// Sync seeds nextSN from state's negotiated initial sn the first time it is
// called after state has opened; later calls (or calls before opening) are
// no-ops.
func (tx *Tx) Sync(state *State) {
	if tx.synced || !state.Opened() {
		return
	}
	tx.nextSN = state.SN()
	tx.synced = true
}

func (tx *Tx) reserveStreamedPrefix() error {
	if tx.cursor != 0 {
		return nil
	}
	if !tx.streamed {
		return nil
	}
	if len(tx.buf) < 2 {
		return ErrTransportFull
	}
	tx.cursor = 2
	return nil
}

// Push encodes one NetworkMessage into the current batch, emitting a new
// FrameHeader first iff (msg.Reliability, msg.QoS) differs from the last
// emitted pair (or this is the first body in the batch).
func (tx *Tx) Push(msg NetworkMessage) error {
	if err := tx.reserveStreamedPrefix(); err != nil {
		return err
	}

	w := wire.NewWriter(tx.buf[tx.cursor:])
	sn := tx.nextSN
	have := tx.haveContext
	lastRel := tx.lastReliability
	lastQoS := tx.lastQoS

	if err := msg.encode(w, &lastRel, &lastQoS, &have, &sn); err != nil {
		if err == wire.ErrShortBuffer {
			return ErrMessageTooLargeForBatch
		}
		return err
	}

	tx.cursor += w.Offset()
	tx.nextSN = sn
	tx.haveContext = have
	tx.lastReliability = lastRel
	tx.lastQoS = lastQoS
	return nil
}

// Flush finalizes the current batch: in streamed mode it backfills the
// 2-byte big-endian length prefix, then resets the cursor and frame context
// for the next batch. It returns nil if nothing (or only the reserved
// prefix) was written. The returned slice aliases Tx's buffer and is valid
// until the next Push/Flush/Batch/Answer call.
func (tx *Tx) Flush() []byte {
	defer func() {
		tx.cursor = 0
		tx.haveContext = false
	}()

	if tx.cursor == 0 {
		return nil
	}
	if tx.streamed {
		if tx.cursor <= 2 {
			return nil
		}
		binary.BigEndian.PutUint16(tx.buf[:2], uint16(tx.cursor-2))
	}
	return tx.buf[:tx.cursor]
}

// Answer serializes a single pending TransportMessage into a freshly reset
// batch, with no FrameHeader wrapper. It returns ErrMessageTooLargeForBatch
// if the message does not fit.
func (tx *Tx) Answer(msg TransportMessage) ([]byte, error) {
	tx.cursor = 0
	tx.haveContext = false
	if err := tx.reserveStreamedPrefix(); err != nil {
		return nil, err
	}

	w := wire.NewWriter(tx.buf[tx.cursor:])
	if err := msg.encode(w); err != nil {
		if err == wire.ErrShortBuffer {
			return nil, ErrMessageTooLargeForBatch
		}
		return nil, err
	}
	tx.cursor += w.Offset()
	return tx.Flush(), nil
}

// TxBatch is the lazy sequence of packed batches Batch returns.
type TxBatch struct {
	tx   *Tx
	msgs []NetworkMessage
	i    int
}

// Batch returns a pull-based sequence that packs msgs into as few batches as
// fit Tx's buffer, yielding one finalized slice per pull.
func (tx *Tx) Batch(msgs []NetworkMessage) *TxBatch {
	return &TxBatch{tx: tx, msgs: msgs}
}

// Next packs as many remaining messages as fit into one batch and returns
// its finalized bytes, or (nil, false) once msgs is exhausted or when the
// next message cannot be packed at all (that message is left unconsumed).
func (b *TxBatch) Next() ([]byte, bool) {
	if b.i >= len(b.msgs) {
		return nil, false
	}
	packed := 0
	for b.i < len(b.msgs) {
		err := b.tx.Push(b.msgs[b.i])
		if err == nil {
			b.i++
			packed++
			continue
		}
		if err == ErrMessageTooLargeForBatch && packed > 0 {
			break // this message starts the next batch
		}
		return nil, false
	}
	out := b.tx.Flush()
	if out == nil {
		return nil, false
	}
	return out, true
}
