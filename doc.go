// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ztransport is a sans-I/O, allocation-free codec and handshake
// state machine for the Zenoh wire protocol (version 9).
//
// Semantics and design:
//   - Sans-I/O: the engine never touches a socket. The caller feeds raw
//     bytes in (Rx.Feed/FeedWith/FeedExact), drains decoded NetworkMessages
//     out (Rx.Flush), pushes NetworkMessages in (Tx.Push/Batch), and drains
//     encoded batches out (Tx.Flush). All operations run to completion
//     synchronously; nothing blocks and nothing is scheduled.
//   - Allocation-free steady state: Rx and Tx each own a slice of a single
//     caller-provided buffer. Decoded message bodies are slices into that
//     buffer (zero-copy) and are valid only until the next Feed/FeedWith
//     call; Rx enforces this dynamically with a generation counter.
//   - Handshake as a value: State is a single tagged union advanced by
//     TransportMessages pulled out of the same byte stream Rx decodes.
//     Codec mode skips state handling entirely and is suitable for raw
//     NetworkMessage exchange without any handshake.
//
// Wire format: a 1-byte header (5-bit id, ack bit, ifinal bit) precedes
// every TransportMessage, FrameHeader, and NetworkMessage body. A
// FrameHeader establishes the (reliability, qos, sn) context for the
// NetworkMessage bodies that follow it, and is re-emitted only when that
// context changes. In streamed mode each batch is prefixed with a 2-byte
// big-endian length; in datagram mode one Feed/Flush is one batch.
package ztransport
