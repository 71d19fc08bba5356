// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

// Reliability is the delivery guarantee a FrameHeader and the NetworkMessages
// under it share.
type Reliability uint8

const (
	BestEffort Reliability = iota
	Reliable
)

// QoS is an opaque, protocol-defined priority/congestion-control byte; this
// core transports it unexamined.
type QoS uint8

// DefaultQoS is the zero-value QoS class.
const DefaultQoS QoS = 0
