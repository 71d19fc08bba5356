// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

// Engine is the sans-I/O facade: it owns a State, an Rx, and a Tx carved out
// of one caller-provided buffer, and exposes the feed/flush/push/batch
// surface needed to drive a handshake and steady-state codec loop without
// ever touching a socket.
type Engine struct {
	rx    *Rx
	tx    *Tx
	state *State
}

// New splits buf into a receive half and a transmit half and constructs the
// State its Options select (Codec/Connect/Listen). buf must be large enough
// to hold at least one header byte on each side.
func New(buf []byte, opts ...Option) (*Engine, error) {
	if len(buf) < 2 {
		return nil, ErrInvalidArgument
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	mid := len(buf) / 2
	rxBuf, txBuf := buf[:mid], buf[mid:]

	var state *State
	switch cfg.mode {
	case ModeConnect:
		state = newConnectingState(cfg.zid, cfg.resolution, cfg.batchSize, cfg.lease, cfg.logger)
	case ModeListen:
		state = newListeningState(cfg.zid, cfg.resolution, cfg.batchSize, cfg.lease, cfg.logger)
	default:
		state = newCodecState(cfg.logger)
	}

	return &Engine{
		rx:    newRx(rxBuf, cfg.streamed, cfg.logger),
		tx:    newTx(txBuf, cfg.streamed),
		state: state,
	}, nil
}

// State exposes the handshake state machine directly, for callers that need
// more than Opened()/PeerZid().
func (e *Engine) State() *State { return e.state }

// Opened reports whether the handshake has completed.
func (e *Engine) Opened() bool { return e.state.Opened() }

// Init emits the InitSyn that starts a connect-side handshake. It is an
// error to call this unless the Engine was built with Connect().
func (e *Engine) Init() ([]byte, error) {
	msg, err := e.state.Init()
	if err != nil {
		return nil, err
	}
	return e.tx.Answer(msg)
}

// Interact serializes any reply the state machine queued during the last
// Flush, or (nil, nil) if nothing is pending.
func (e *Engine) Interact() ([]byte, error) {
	pending, ok := e.state.TakePending()
	if !ok {
		return nil, nil
	}
	return e.tx.Answer(pending)
}

// Feed copies data into the receive buffer, starting a fresh batch.
func (e *Engine) Feed(data []byte) error { return e.rx.Feed(data) }

// FeedWith fills the receive buffer via fill; see Rx.FeedWith.
func (e *Engine) FeedWith(fill func([]byte) (int, error)) error { return e.rx.FeedWith(fill) }

// FeedExact copies exactly n bytes into the receive buffer via fill.
func (e *Engine) FeedExact(n int, fill func([]byte) error) error { return e.rx.FeedExact(n, fill) }

// Flush iterates the most recently fed batch, dispatching any interleaved
// TransportMessage to the Engine's State.
func (e *Engine) Flush() *RxIterator { return e.rx.Flush(e.state) }

// Push encodes one NetworkMessage into the current transmit batch.
func (e *Engine) Push(msg NetworkMessage) error {
	e.tx.Sync(e.state)
	return e.tx.Push(msg)
}

// FlushTx finalizes and returns the current transmit batch.
func (e *Engine) FlushTx() []byte { return e.tx.Flush() }

// Batch returns a pull-based sequence that packs msgs into as few transmit
// batches as fit the Engine's buffer.
func (e *Engine) Batch(msgs []NetworkMessage) *TxBatch {
	e.tx.Sync(e.state)
	return e.tx.Batch(msgs)
}

// Scope returns one mutable borrow of Rx, Tx, and State together, so a
// caller can drive feed->flush->answer in one logical step and observe a
// reply before the next NetworkMessage is yielded.
func (e *Engine) Scope() Scope {
	return Scope{
		Rx:    RxScope{rx: e.rx, state: e.state},
		Tx:    TxScope{tx: e.tx, state: e.state},
		State: StateScope{state: e.state},
	}
}
