// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import "errors"

var (
	// ErrInvalidArgument reports an invalid configuration or a nil/undersized buffer.
	ErrInvalidArgument = errors.New("ztransport: invalid argument")

	// ErrTooLong reports a field (e.g. a zid or a body blob) exceeding its wire limit.
	ErrTooLong = errors.New("ztransport: field too long")

	// ErrTransportFull means there was no room in the Rx buffer for fed bytes,
	// or no room in the Tx buffer for a required stream-length prefix.
	ErrTransportFull = errors.New("ztransport: transport buffer full")

	// ErrMessageTooLargeForBatch means the current message does not fit the
	// remaining space in the current batch. The caller should flush and retry,
	// possibly with a larger buffer.
	ErrMessageTooLargeForBatch = errors.New("ztransport: message too large for batch")

	// ErrStateCantHandle means the state machine received a message that is
	// not valid in its current state.
	ErrStateCantHandle = errors.New("ztransport: state cannot handle message")

	// ErrTransportIsClosed means the state machine is in the Closed state.
	ErrTransportIsClosed = errors.New("ztransport: transport is closed")

	// ErrInvalidAttribute means a peer proposed a resolution width wider than
	// this side's own capability during the handshake.
	ErrInvalidAttribute = errors.New("ztransport: invalid negotiated attribute")

	// ErrIncompleteState means a scoped snapshot was requested while the state
	// machine is mid-handshake and no consistent snapshot exists yet.
	ErrIncompleteState = errors.New("ztransport: incomplete handshake state")
)
