// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import "time"

// DefaultBatchSize is the batch size a fresh Options starts with, absent a
// WithBatchSize override.
const DefaultBatchSize uint16 = 65535

// DefaultLease is the keepalive lease Options starts with.
const DefaultLease = 10 * time.Second

// Mode selects what role an Engine's State plays: a bare codec with no
// handshake, the connect side, or the listen side.
type Mode uint8

const (
	ModeCodec Mode = iota
	ModeConnect
	ModeListen
)

// Options holds an Engine's construction-time configuration, built up by
// applying a sequence of Option functions over the defaults from
// defaultOptions.
type Options struct {
	zid        ZenohId
	resolution Resolution
	batchSize  uint16
	lease      time.Duration
	streamed   bool
	mode       Mode
	logger     Logger
}

func defaultOptions() Options {
	return Options{
		zid:        NewRandomZenohId(),
		resolution: DefaultResolution,
		batchSize:  DefaultBatchSize,
		lease:      DefaultLease,
		streamed:   false,
		mode:       ModeCodec,
		logger:     noopLogger{},
	}
}

// Option mutates an in-progress Options during Engine construction.
type Option func(*Options)

// WithZid sets the local peer identity used during the handshake.
func WithZid(id ZenohId) Option {
	return func(o *Options) { o.zid = id }
}

// WithBatchSize sets the locally proposed/advertised batch size.
func WithBatchSize(n uint16) Option {
	return func(o *Options) { o.batchSize = n }
}

// WithLease sets the locally proposed/advertised keepalive lease.
func WithLease(d time.Duration) Option {
	return func(o *Options) { o.lease = d }
}

// WithResolution sets the locally required field-width resolution.
func WithResolution(r Resolution) Option {
	return func(o *Options) { o.resolution = r }
}

// WithLogger installs the hook used to report decode errors and sn gaps.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.logger = l }
}

// Streamed selects the length-prefixed framing mode (one batch per
// length-delimited read).
func Streamed() Option {
	return func(o *Options) { o.streamed = true }
}

// Datagram selects the unprefixed framing mode (one fill is one batch).
func Datagram() Option {
	return func(o *Options) { o.streamed = false }
}

// Connect configures the Engine as the connect side of a handshake: Init
// must be called once to emit the first InitSyn.
func Connect() Option {
	return func(o *Options) { o.mode = ModeConnect }
}

// Listen configures the Engine as the listen side of a handshake, ready to
// receive an InitSyn.
func Listen() Option {
	return func(o *Options) { o.mode = ModeListen }
}

// Codec configures the Engine with no handshake: Rx does not decode
// TransportMessages in this mode (a transport header inside a batch is a
// decode error that ends the batch), and NetworkMessages decode without sn
// validation.
func Codec() Option {
	return func(o *Options) { o.mode = ModeCodec }
}

// ForTCP is a convenience wrapper selecting the streamed framing a
// stream-oriented transport like TCP needs.
func ForTCP() Option { return Streamed() }

// ForUDP is a convenience wrapper selecting the datagram framing a
// message-oriented transport like UDP needs.
func ForUDP() Option { return Datagram() }
