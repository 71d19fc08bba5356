// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import "time"

// RxScope is a re-borrowed view of an Engine's Rx paired with its State, so
// that TransportMessages dispatched during Flush are visible to a
// TxScope/StateScope obtained from the same Scope call.
type RxScope struct {
	rx    *Rx
	state *State
}

func (s RxScope) Feed(data []byte) error { return s.rx.Feed(data) }

func (s RxScope) FeedWith(fill func([]byte) (int, error)) error { return s.rx.FeedWith(fill) }

func (s RxScope) FeedExact(n int, fill func([]byte) error) error { return s.rx.FeedExact(n, fill) }

// Flush iterates the most recently fed batch against the shared State.
func (s RxScope) Flush() *RxIterator { return s.rx.Flush(s.state) }

// TxScope is a re-borrowed view of an Engine's Tx paired with its State.
type TxScope struct {
	tx    *Tx
	state *State
}

func (s TxScope) Push(msg NetworkMessage) error {
	s.tx.Sync(s.state)
	return s.tx.Push(msg)
}

func (s TxScope) Flush() []byte { return s.tx.Flush() }

func (s TxScope) Batch(msgs []NetworkMessage) *TxBatch {
	s.tx.Sync(s.state)
	return s.tx.Batch(msgs)
}

// Answer serializes the State's pending reply, if any, observing replies
// that an RxScope.Flush from the same Scope just produced.
func (s TxScope) Answer() ([]byte, error) {
	pending, ok := s.state.TakePending()
	if !ok {
		return nil, nil
	}
	return s.tx.Answer(pending)
}

// StateScope is a re-borrowed view of an Engine's State.
type StateScope struct {
	state *State
}

func (s StateScope) Kind() StateKind   { return s.state.Kind() }
func (s StateScope) Opened() bool      { return s.state.Opened() }
func (s StateScope) PeerZid() ZenohId  { return s.state.PeerZid() }
func (s StateScope) Lease() time.Duration { return s.state.Lease() }
func (s StateScope) Init() (TransportMessage, error) { return s.state.Init() }

// Scope bundles one mutable borrow of an Engine's Rx, Tx, and State so a
// caller can drive a full receive-process-reply step — a response queued by
// State.Process during Rx.Flush is visible to Tx.Answer within the same
// Scope, without re-fetching the Engine.
type Scope struct {
	Rx    RxScope
	Tx    TxScope
	State StateScope
}
