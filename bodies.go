// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ztransport

import "github.com/zenoh-go/ztransport/internal/wire"

// NetworkBody is one of Push, Request, Response, ResponseFinal, Interest,
// InterestFinal, or Declare. Each body's own field layout is a separate,
// opaque concern (out of scope for this core, per package doc): the core
// only needs a stable ID and a length-delimited binary form so it can frame,
// skip, and forward bodies without interpreting them.
type NetworkBody interface {
	bodyID() byte
	encodeBody(w *wire.Writer) error
}

// opaqueBody is the shared representation for every NetworkBody variant: an
// ID plus an uninterpreted payload blob, aliasing the Rx buffer when decoded.
type opaqueBody struct {
	id      byte
	payload []byte
}

func (b opaqueBody) bodyID() byte { return b.id }

func (b opaqueBody) encodeBody(w *wire.Writer) error {
	return w.PutBlob(b.payload)
}

// Push carries a one-way publication.
type Push struct{ opaqueBody }

// Request carries a query or remote-procedure-call request.
type Request struct{ opaqueBody }

// Response carries one reply to a Request.
type Response struct{ opaqueBody }

// ResponseFinal terminates the reply stream for a Request.
type ResponseFinal struct{ opaqueBody }

// Interest registers interest in a key expression.
type Interest struct{ opaqueBody }

// InterestFinal terminates an Interest's initial burst of matching state.
type InterestFinal struct{ opaqueBody }

// Declare carries a routing-table declaration (subscriber, queryable, token).
type Declare struct{ opaqueBody }

// NewPush, NewRequest, ... construct a body variant around an opaque payload
// owned by the caller (copied nowhere; encodeBody writes it as-is).
func NewPush(payload []byte) Push                   { return Push{opaqueBody{idPush, payload}} }
func NewRequest(payload []byte) Request             { return Request{opaqueBody{idRequest, payload}} }
func NewResponse(payload []byte) Response           { return Response{opaqueBody{idResponse, payload}} }
func NewResponseFinal(payload []byte) ResponseFinal { return ResponseFinal{opaqueBody{idResponseFinal, payload}} }
func NewInterest(payload []byte) Interest           { return Interest{opaqueBody{idInterest, payload}} }
func NewInterestFinal(payload []byte) InterestFinal { return InterestFinal{opaqueBody{idInterest, payload}} }
func NewDeclare(payload []byte) Declare             { return Declare{opaqueBody{idDeclare, payload}} }

// headerFlagsFor returns the (ack, flag) bits this body's header byte should
// carry. Only Interest/InterestFinal use the flag bit, to disambiguate their
// shared id; every other body leaves both bits clear.
func headerFlagsFor(b NetworkBody) (ack, flag bool) {
	switch b.(type) {
	case InterestFinal:
		return false, false // ifinal == (ack clear && flag clear)
	case Interest:
		return false, true // forces ifinal == false
	default:
		return false, false
	}
}

func decodeNetworkBody(hdr unpackedHeader, r *wire.Reader) (NetworkBody, error) {
	payload, err := r.Blob()
	if err != nil {
		return nil, err
	}
	switch hdr.id {
	case idPush:
		return Push{opaqueBody{idPush, payload}}, nil
	case idRequest:
		return Request{opaqueBody{idRequest, payload}}, nil
	case idResponse:
		return Response{opaqueBody{idResponse, payload}}, nil
	case idResponseFinal:
		return ResponseFinal{opaqueBody{idResponseFinal, payload}}, nil
	case idInterest:
		if hdr.ifinal {
			return InterestFinal{opaqueBody{idInterest, payload}}, nil
		}
		return Interest{opaqueBody{idInterest, payload}}, nil
	case idDeclare:
		return Declare{opaqueBody{idDeclare, payload}}, nil
	default:
		return nil, ErrInvalidArgument
	}
}
