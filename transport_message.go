// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import (
	"time"

	"github.com/zenoh-go/ztransport/internal/wire"
)

// TransportMessage is a control-plane message: handshake, keepalive, or
// close. Kind selects which one of the variant fields (InitSyn through
// KeepAlive) is meaningful.
type TransportMessage struct {
	Kind TransportMessageKind

	InitSyn   InitSyn
	InitAck   InitAck
	OpenSyn   OpenSyn
	OpenAck   OpenAck
	Close     Close
	KeepAlive KeepAlive
}

// TransportMessageKind discriminates TransportMessage's active variant.
type TransportMessageKind uint8

const (
	KindInitSyn TransportMessageKind = iota
	KindInitAck
	KindOpenSyn
	KindOpenAck
	KindClose
	KindKeepAlive
)

// InitSyn is the first handshake message, sent by the connecting side.
type InitSyn struct {
	Zid        ZenohId
	Resolution Resolution
	BatchSize  uint16
}

// InitAck answers an InitSyn from the listening side.
type InitAck struct {
	Zid        ZenohId
	Resolution Resolution
	BatchSize  uint16
	Cookie     []byte
}

// OpenSyn is sent by the connecting side after receiving InitAck.
type OpenSyn struct {
	Lease  time.Duration
	SN     uint32
	Cookie []byte
}

// OpenAck answers an OpenSyn from the listening side, completing the
// handshake.
type OpenAck struct {
	Lease time.Duration
	SN    uint32
}

// Close terminates an opened session.
type Close struct{}

// KeepAlive is a liveness ping; it carries no fields.
type KeepAlive struct{}

func encodeZid(w *wire.Writer, id ZenohId) error {
	b := id.Bytes()
	if err := w.Byte(byte(len(b))); err != nil {
		return err
	}
	return w.PutBytes(b)
}

func decodeZid(r *wire.Reader) (ZenohId, error) {
	n, err := r.Byte()
	if err != nil {
		return ZenohId{}, err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return ZenohId{}, err
	}
	return NewZenohId(b)
}

func (m InitSyn) encode(w *wire.Writer) error {
	if err := w.Byte(packHeader(idInitSynOrAck, false, false)); err != nil {
		return err
	}
	if err := w.Byte(Version); err != nil {
		return err
	}
	if err := encodeZid(w, m.Zid); err != nil {
		return err
	}
	if err := w.Byte(m.Resolution.encode()); err != nil {
		return err
	}
	return w.PutUint16(m.BatchSize)
}

func decodeInitSyn(r *wire.Reader) (InitSyn, error) {
	var m InitSyn
	if _, err := r.Byte(); err != nil { // version, currently unchecked by the core
		return m, err
	}
	zid, err := decodeZid(r)
	if err != nil {
		return m, err
	}
	res, err := r.Byte()
	if err != nil {
		return m, err
	}
	bs, err := r.Uint16()
	if err != nil {
		return m, err
	}
	m.Zid = zid
	m.Resolution = resolutionFromByte(res)
	m.BatchSize = bs
	return m, nil
}

func (m InitAck) encode(w *wire.Writer) error {
	if err := w.Byte(packHeader(idInitSynOrAck, true, false)); err != nil {
		return err
	}
	if err := w.Byte(Version); err != nil {
		return err
	}
	if err := encodeZid(w, m.Zid); err != nil {
		return err
	}
	if err := w.Byte(m.Resolution.encode()); err != nil {
		return err
	}
	if err := w.PutUint16(m.BatchSize); err != nil {
		return err
	}
	return w.PutBlob(m.Cookie)
}

func decodeInitAck(r *wire.Reader) (InitAck, error) {
	var m InitAck
	if _, err := r.Byte(); err != nil {
		return m, err
	}
	zid, err := decodeZid(r)
	if err != nil {
		return m, err
	}
	res, err := r.Byte()
	if err != nil {
		return m, err
	}
	bs, err := r.Uint16()
	if err != nil {
		return m, err
	}
	cookie, err := r.Blob()
	if err != nil {
		return m, err
	}
	m.Zid = zid
	m.Resolution = resolutionFromByte(res)
	m.BatchSize = bs
	m.Cookie = cookie
	return m, nil
}

func (m OpenSyn) encode(w *wire.Writer) error {
	if err := w.Byte(packHeader(idOpenSynOrAck, false, false)); err != nil {
		return err
	}
	if err := w.PutUint64(uint64(m.Lease)); err != nil {
		return err
	}
	if err := w.PutUint32(m.SN); err != nil {
		return err
	}
	return w.PutBlob(m.Cookie)
}

func decodeOpenSyn(r *wire.Reader) (OpenSyn, error) {
	var m OpenSyn
	lease, err := r.Uint64()
	if err != nil {
		return m, err
	}
	sn, err := r.Uint32()
	if err != nil {
		return m, err
	}
	cookie, err := r.Blob()
	if err != nil {
		return m, err
	}
	m.Lease = time.Duration(lease)
	m.SN = sn
	m.Cookie = cookie
	return m, nil
}

func (m OpenAck) encode(w *wire.Writer) error {
	if err := w.Byte(packHeader(idOpenSynOrAck, true, false)); err != nil {
		return err
	}
	if err := w.PutUint64(uint64(m.Lease)); err != nil {
		return err
	}
	return w.PutUint32(m.SN)
}

func decodeOpenAck(r *wire.Reader) (OpenAck, error) {
	var m OpenAck
	lease, err := r.Uint64()
	if err != nil {
		return m, err
	}
	sn, err := r.Uint32()
	if err != nil {
		return m, err
	}
	m.Lease = time.Duration(lease)
	m.SN = sn
	return m, nil
}

func (Close) encode(w *wire.Writer) error {
	return w.Byte(packHeader(idClose, false, false))
}

func (KeepAlive) encode(w *wire.Writer) error {
	return w.Byte(packHeader(idKeepAlive, false, false))
}

// encode serializes msg's active variant, including its leading header byte.
func (msg TransportMessage) encode(w *wire.Writer) error {
	switch msg.Kind {
	case KindInitSyn:
		return msg.InitSyn.encode(w)
	case KindInitAck:
		return msg.InitAck.encode(w)
	case KindOpenSyn:
		return msg.OpenSyn.encode(w)
	case KindOpenAck:
		return msg.OpenAck.encode(w)
	case KindClose:
		return msg.Close.encode(w)
	case KindKeepAlive:
		return msg.KeepAlive.encode(w)
	default:
		return ErrInvalidArgument
	}
}

// decodeTransportMessage decodes the body following a header already
// identified as a transport message by tryTransportMessageKind.
func decodeTransportMessage(hdr unpackedHeader, kind TransportMessageKind, r *wire.Reader) (TransportMessage, error) {
	switch kind {
	case KindInitSyn:
		m, err := decodeInitSyn(r)
		return TransportMessage{Kind: KindInitSyn, InitSyn: m}, err
	case KindInitAck:
		m, err := decodeInitAck(r)
		return TransportMessage{Kind: KindInitAck, InitAck: m}, err
	case KindOpenSyn:
		m, err := decodeOpenSyn(r)
		return TransportMessage{Kind: KindOpenSyn, OpenSyn: m}, err
	case KindOpenAck:
		m, err := decodeOpenAck(r)
		return TransportMessage{Kind: KindOpenAck, OpenAck: m}, err
	case KindClose:
		return TransportMessage{Kind: KindClose}, nil
	case KindKeepAlive:
		return TransportMessage{Kind: KindKeepAlive}, nil
	default:
		return TransportMessage{}, ErrInvalidArgument
	}
}

// tryTransportMessageKind reports whether hdr identifies a TransportMessage
// and, if so, which kind. InitSyn/InitAck share an id (disambiguated by the
// ack bit), as do OpenSyn/OpenAck.
func tryTransportMessageKind(hdr unpackedHeader) (TransportMessageKind, bool) {
	switch hdr.id {
	case idInitSynOrAck:
		if hdr.ack {
			return KindInitAck, true
		}
		return KindInitSyn, true
	case idOpenSynOrAck:
		if hdr.ack {
			return KindOpenAck, true
		}
		return KindOpenSyn, true
	case idClose:
		return KindClose, true
	case idKeepAlive:
		return KindKeepAlive, true
	default:
		return 0, false
	}
}
