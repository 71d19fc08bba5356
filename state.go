// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import (
	"time"

	"github.com/zenoh-go/ztransport/internal/sn"
)

// StateKind names one of State's eight variants.
type StateKind uint8

const (
	StateCodec StateKind = iota
	StateConnecting
	StateWaitingInitAck
	StateWaitingOpenAck
	StateWaitingInitSyn
	StateWaitingOpenSyn
	StateOpened
	StateClosed
)

func (k StateKind) String() string {
	switch k {
	case StateCodec:
		return "Codec"
	case StateConnecting:
		return "Connecting"
	case StateWaitingInitAck:
		return "WaitingInitAck"
	case StateWaitingOpenAck:
		return "WaitingOpenAck"
	case StateWaitingInitSyn:
		return "WaitingInitSyn"
	case StateWaitingOpenSyn:
		return "WaitingOpenSyn"
	case StateOpened:
		return "Opened"
	case StateClosed:
		return "Closed"
	default:
		return "invalid"
	}
}

// State is the handshake state machine: a kind tag plus the payload fields
// relevant to that kind (peer id, lease, negotiated sn), mirroring the
// reference transport's state.rs enum. Process dispatches one incoming
// TransportMessage and, on a valid transition, may leave a reply queued for
// the caller to pick up via TakePending.
type State struct {
	kind StateKind

	zid        ZenohId
	resolution Resolution
	batchSize  uint16
	lease      time.Duration

	peer ZenohId
	sn   uint32

	pending *TransportMessage
	logger  Logger
}

// newCodecState builds a State that never negotiates: every TransportMessage
// it receives is accepted and discarded silently.
func newCodecState(logger Logger) *State {
	return &State{kind: StateCodec, logger: logger}
}

// newConnectingState builds the connect-side initial state: the owner must
// call Init to advance it and obtain the InitSyn to send.
func newConnectingState(zid ZenohId, resolution Resolution, batchSize uint16, lease time.Duration, logger Logger) *State {
	return &State{
		kind:       StateConnecting,
		zid:        zid,
		resolution: resolution,
		batchSize:  batchSize,
		lease:      lease,
		logger:     logger,
	}
}

// newListeningState builds the listen-side initial state, ready to accept an
// incoming InitSyn.
func newListeningState(zid ZenohId, resolution Resolution, batchSize uint16, lease time.Duration, logger Logger) *State {
	return &State{
		kind:       StateWaitingInitSyn,
		zid:        zid,
		resolution: resolution,
		batchSize:  batchSize,
		lease:      lease,
		logger:     logger,
	}
}

// Kind reports the current variant.
func (s *State) Kind() StateKind { return s.kind }

// Zid returns this side's own identifier.
func (s *State) Zid() ZenohId { return s.zid }

// PeerZid returns the peer's identifier, known from WaitingOpenAck onward
// (connect side) or WaitingOpenSyn onward (listen side).
func (s *State) PeerZid() ZenohId { return s.peer }

// Lease returns the negotiated keepalive lease, valid once Opened.
func (s *State) Lease() time.Duration { return s.lease }

// SN returns the derived/negotiated initial FrameSN, valid once Opened.
func (s *State) SN() uint32 { return s.sn }

// Resolution returns the current (possibly not yet fully negotiated)
// resolution.
func (s *State) Resolution() Resolution { return s.resolution }

// BatchSize returns the current (possibly not yet negotiated) batch size.
func (s *State) BatchSize() uint16 { return s.batchSize }

// Opened reports whether the handshake has completed.
func (s *State) Opened() bool { return s.kind == StateOpened }

// Init advances a Connecting state to WaitingInitAck and returns the InitSyn
// to send. It is an error to call Init from any other state.
func (s *State) Init() (TransportMessage, error) {
	if s.kind != StateConnecting {
		return TransportMessage{}, ErrStateCantHandle
	}
	s.kind = StateWaitingInitAck
	return TransportMessage{
		Kind: KindInitSyn,
		InitSyn: InitSyn{
			Zid:        s.zid,
			Resolution: s.resolution,
			BatchSize:  s.batchSize,
		},
	}, nil
}

// TakePending returns and clears the reply queued by the last successful
// Process call, if any.
func (s *State) TakePending() (TransportMessage, bool) {
	if s.pending == nil {
		return TransportMessage{}, false
	}
	m := *s.pending
	s.pending = nil
	return m, true
}

func min16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

// Process dispatches one TransportMessage against the current state. On a
// valid transition it updates the state in place and, if the transition
// produces a reply, stores it for TakePending. An invalid message for the
// current state returns ErrStateCantHandle (ErrTransportIsClosed once
// Closed) and leaves the state unchanged.
func (s *State) Process(msg TransportMessage) error {
	switch s.kind {
	case StateCodec:
		return nil

	case StateConnecting:
		return ErrStateCantHandle

	case StateWaitingInitAck:
		if msg.Kind != KindInitAck {
			return ErrStateCantHandle
		}
		ack := msg.InitAck
		batchSize := min16(s.batchSize, ack.BatchSize)
		resolution := s.resolution
		for _, f := range []Field{FieldFrameSN, FieldRequestID} {
			if ack.Resolution.Get(f) > s.resolution.Get(f) {
				return ErrInvalidAttribute
			}
			resolution = resolution.Set(f, ack.Resolution.Get(f))
		}
		derived := sn.Derive(s.zid.Bytes(), ack.Zid.Bytes(), resolution.Get(FieldFrameSN).snWidth())

		s.batchSize = batchSize
		s.resolution = resolution
		s.sn = derived
		s.peer = ack.Zid
		s.kind = StateWaitingOpenAck
		resp := TransportMessage{
			Kind: KindOpenSyn,
			OpenSyn: OpenSyn{
				Lease:  s.lease,
				SN:     derived,
				Cookie: ack.Cookie,
			},
		}
		s.pending = &resp
		return nil

	case StateWaitingOpenAck:
		if msg.Kind != KindOpenAck {
			return ErrStateCantHandle
		}
		s.lease = msg.OpenAck.Lease
		s.sn = msg.OpenAck.SN
		s.kind = StateOpened
		return nil

	case StateWaitingInitSyn:
		if msg.Kind != KindInitSyn {
			return ErrStateCantHandle
		}
		syn := msg.InitSyn
		s.peer = syn.Zid
		s.kind = StateWaitingOpenSyn
		resp := TransportMessage{
			Kind: KindInitAck,
			InitAck: InitAck{
				Zid:        s.zid,
				Resolution: s.resolution,
				BatchSize:  s.batchSize,
				Cookie:     nil,
			},
		}
		s.pending = &resp
		return nil

	case StateWaitingOpenSyn:
		if msg.Kind != KindOpenSyn {
			return ErrStateCantHandle
		}
		syn := msg.OpenSyn
		ownLease := s.lease
		s.lease = syn.Lease
		s.sn = syn.SN
		s.kind = StateOpened
		resp := TransportMessage{
			Kind: KindOpenAck,
			OpenAck: OpenAck{
				Lease: ownLease,
				SN:    s.sn,
			},
		}
		s.pending = &resp
		return nil

	case StateOpened:
		switch msg.Kind {
		case KindClose:
			s.kind = StateClosed
			return nil
		case KindKeepAlive:
			if s.logger != nil {
				s.logger.Printf("ztransport: keepalive from %s", s.peer)
			}
			return nil
		default:
			return ErrStateCantHandle
		}

	case StateClosed:
		return ErrTransportIsClosed

	default:
		return ErrStateCantHandle
	}
}
