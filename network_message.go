// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import "github.com/zenoh-go/ztransport/internal/wire"

// NetworkMessage is a user-level message carried across an opened session:
// a reliability/QoS pair plus one NetworkBody.
type NetworkMessage struct {
	Reliability Reliability
	QoS         QoS
	Body        NetworkBody
}

// encode writes msg's body, first emitting a FrameHeader if (Reliability,
// QoS) differs from the last emitted pair (or none has been emitted yet in
// this batch). lastReliability/lastQoS are updated in place and sn is
// advanced each time a new FrameHeader is emitted, mirroring
// NetworkMessage::z_encode in the reference implementation.
func (msg NetworkMessage) encode(w *wire.Writer, lastReliability *Reliability, lastQoS *QoS, haveContext *bool, sn *uint32) error {
	if !*haveContext || *lastReliability != msg.Reliability || *lastQoS != msg.QoS {
		fh := FrameHeader{Reliability: msg.Reliability, QoS: msg.QoS, SN: *sn}
		if err := fh.encode(w); err != nil {
			return err
		}
		*lastReliability = msg.Reliability
		*lastQoS = msg.QoS
		*haveContext = true
		*sn = *sn + 1
	}

	ack, flag := headerFlagsFor(msg.Body)
	if err := w.Byte(packHeader(msg.Body.bodyID(), ack, flag)); err != nil {
		return err
	}
	return msg.Body.encodeBody(w)
}
