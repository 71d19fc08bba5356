// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import (
	"encoding/binary"

	"github.com/zenoh-go/ztransport/internal/wire"
)

// Rx owns the receive-side buffer. Feed/FeedWith/FeedExact copy bytes into
// it; Flush returns a single-pass iterator over the NetworkMessages in the
// most recently fed batch, dispatching any interleaved TransportMessage to a
// State as it goes.
//
// Decoded NetworkMessage bodies alias Rx's buffer. Rx stamps a generation on
// every Feed* call; an iterator captures the generation at creation and
// refuses to yield once it goes stale, which is this package's substitute
// for the reference implementation's borrow checking.
type Rx struct {
	buf      []byte
	filled   int
	streamed bool
	logger   Logger

	generation uint64

	haveFrame bool
	frame     FrameHeader

	haveLastSN bool
	lastSN     uint32
	synced     bool
}

func newRx(buf []byte, streamed bool, logger Logger) *Rx {
	return &Rx{buf: buf, streamed: streamed, logger: logger}
}

func (rx *Rx) resetBatch() {
	rx.generation++
	rx.haveFrame = false
}

// Feed copies data into the Rx buffer, starting a fresh batch. It fails with
// ErrTransportFull if data does not fit.
func (rx *Rx) Feed(data []byte) error {
	if len(data) > len(rx.buf) {
		return ErrTransportFull
	}
	copy(rx.buf, data)
	rx.filled = len(data)
	rx.resetBatch()
	return nil
}

// FeedWith fills the Rx buffer via fill. In streamed mode, fill is invoked
// first with a 2-byte scratch to read the big-endian batch length, then with
// an that-many-byte region of the Rx buffer. In datagram mode, fill is
// invoked once with the full Rx buffer and its own return value is the
// number of bytes written.
func (rx *Rx) FeedWith(fill func([]byte) (int, error)) error {
	rx.resetBatch()
	if !rx.streamed {
		n, err := fill(rx.buf)
		if err != nil {
			return err
		}
		rx.filled = n
		return nil
	}

	var lenScratch [2]byte
	n, err := fill(lenScratch[:])
	if err != nil {
		return err
	}
	if n != len(lenScratch) {
		return ErrTransportFull
	}
	length := int(binary.BigEndian.Uint16(lenScratch[:]))
	if length > len(rx.buf) {
		return ErrTransportFull
	}
	n, err = fill(rx.buf[:length])
	if err != nil {
		return err
	}
	rx.filled = n
	return nil
}

// FeedExact copies exactly n bytes into the Rx buffer via fill, starting a
// fresh batch. Useful when the caller already knows a frame's length.
func (rx *Rx) FeedExact(n int, fill func([]byte) error) error {
	if n > len(rx.buf) {
		return ErrTransportFull
	}
	if err := fill(rx.buf[:n]); err != nil {
		return err
	}
	rx.filled = n
	rx.resetBatch()
	return nil
}

// RxIterator is the lazy, single-pass sequence Flush returns.
type RxIterator struct {
	rx         *Rx
	state      *State
	generation uint64
	r          *wire.Reader
	done       bool
}

// Flush begins iterating the most recently fed batch against state,
// dispatching any TransportMessage to it along the way.
func (rx *Rx) Flush(state *State) *RxIterator {
	return &RxIterator{
		rx:         rx,
		state:      state,
		generation: rx.generation,
		r:          wire.NewReader(rx.buf[:rx.filled]),
	}
}

func (it *RxIterator) logf(format string, args ...any) {
	if it.rx.logger != nil {
		it.rx.logger.Printf(format, args...)
	}
}

func (it *RxIterator) stale() bool {
	return it.done || it.generation != it.rx.generation
}

func (it *RxIterator) syncSN() {
	rx := it.rx
	if rx.synced || !it.state.Opened() {
		return
	}
	rx.lastSN = it.state.SN() - 1
	rx.haveLastSN = true
	rx.synced = true
}

// validateSN applies the FrameHeader sequence-number rule: a non-increasing
// sn aborts the batch; a gap is logged but accepted.
func (it *RxIterator) validateSN(got uint32) bool {
	rx := it.rx
	if !rx.haveLastSN {
		rx.lastSN = got
		rx.haveLastSN = true
		return true
	}
	if got <= rx.lastSN {
		return false
	}
	if got > rx.lastSN+1 {
		it.logf("ztransport: sn gap: %d message(s) missed", got-rx.lastSN-1)
	}
	rx.lastSN = got
	return true
}

// Next pulls the next NetworkMessage, returning (msg, true) on success or
// (NetworkMessage{}, false) once the batch is exhausted, a decode error
// occurs, or the iterator has gone stale (a later Feed* call happened).
func (it *RxIterator) Next() (NetworkMessage, bool) {
	if it.stale() {
		return NetworkMessage{}, false
	}

	for {
		if !it.r.CanRead() {
			it.done = true
			return NetworkMessage{}, false
		}

		h, err := it.r.Byte()
		if err != nil {
			it.done = true
			return NetworkMessage{}, false
		}
		hdr := unpackHeader(h)

		if it.state.Kind() != StateCodec {
			if kind, ok := tryTransportMessageKind(hdr); ok {
				msg, err := decodeTransportMessage(hdr, kind, it.r)
				if err != nil {
					it.logf("ztransport: decode error on transport message: %v", err)
					it.done = true
					return NetworkMessage{}, false
				}
				if err := it.state.Process(msg); err != nil {
					it.logf("ztransport: state rejected %v: %v", kind, err)
				}
				continue
			}
		}

		if hdr.id == idFrameHeader {
			fh, err := decodeFrameHeader(h, it.r)
			if err != nil {
				it.logf("ztransport: decode error on frame header: %v", err)
				it.done = true
				return NetworkMessage{}, false
			}
			if it.state.Kind() != StateCodec {
				it.syncSN()
				if !it.validateSN(fh.SN) {
					it.logf("ztransport: non-increasing sn %d, dropping rest of batch", fh.SN)
					it.done = true
					return NetworkMessage{}, false
				}
			}
			it.rx.haveFrame = true
			it.rx.frame = fh
			continue
		}

		if !it.rx.haveFrame {
			it.logf("ztransport: network body id %d before any frame header", hdr.id)
			it.done = true
			return NetworkMessage{}, false
		}

		body, err := decodeNetworkBody(hdr, it.r)
		if err != nil {
			it.logf("ztransport: decode error on network body: %v", err)
			it.done = true
			return NetworkMessage{}, false
		}
		return NetworkMessage{
			Reliability: it.rx.frame.Reliability,
			QoS:         it.rx.frame.QoS,
			Body:        body,
		}, true
	}
}
