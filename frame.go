// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import "github.com/zenoh-go/ztransport/internal/wire"

// FrameHeader establishes the (reliability, qos, sn) context under which the
// NetworkMessage bodies following it are parsed.
type FrameHeader struct {
	Reliability Reliability
	QoS         QoS
	SN          uint32
}

// encode writes the frame header: the header byte (Reliability stored in the
// reserved bit 7), the QoS byte, then SN as a big-endian uint32.
func (f FrameHeader) encode(w *wire.Writer) error {
	h := packHeader(idFrameHeader, false, false)
	if f.Reliability == Reliable {
		h |= 0x80
	}
	if err := w.Byte(h); err != nil {
		return err
	}
	if err := w.Byte(byte(f.QoS)); err != nil {
		return err
	}
	return w.PutUint32(f.SN)
}

// frameHeaderEncodedLen is the number of bytes FrameHeader.encode always writes.
const frameHeaderEncodedLen = 1 + 1 + 4

func decodeFrameHeader(header byte, r *wire.Reader) (FrameHeader, error) {
	var f FrameHeader
	if header&0x80 != 0 {
		f.Reliability = Reliable
	} else {
		f.Reliability = BestEffort
	}
	qos, err := r.Byte()
	if err != nil {
		return FrameHeader{}, err
	}
	f.QoS = QoS(qos)
	sn, err := r.Uint32()
	if err != nil {
		return FrameHeader{}, err
	}
	f.SN = sn
	return f, nil
}
