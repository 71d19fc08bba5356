// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire provides the byte-cursor primitives shared by every codec in
// ztransport: single bytes, fixed-width big-endian integers, raw byte runs,
// and a length-delimited blob format for the opaque per-message-body
// payloads.
//
// None of this allocates: Reader slices into the caller's buffer and Writer
// advances a cursor over one it was handed.
package wire

import (
	"encoding/binary"
	"errors"
)

// ErrShortBuffer is returned by Writer methods when the destination buffer
// has no room left for the requested field.
var ErrShortBuffer = errors.New("wire: short buffer")

// ErrShortInput is returned by Reader methods when fewer bytes remain than
// the field being parsed requires.
var ErrShortInput = errors.New("wire: short input")

// Reader is a read cursor over a byte slice borrowed from the caller. All
// returned slices alias the original buffer; the caller must not mutate it
// while a Reader (or anything decoded from it) is still live.
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps buf for sequential decoding starting at offset 0.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

// CanRead reports whether at least one more byte remains.
func (r *Reader) CanRead() bool { return r.Len() > 0 }

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.off }

// Byte reads one byte.
func (r *Reader) Byte() (byte, error) {
	if r.Len() < 1 {
		return 0, ErrShortInput
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// Uint16 reads a big-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	if r.Len() < 2 {
		return 0, ErrShortInput
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

// Uint32 reads a big-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	if r.Len() < 4 {
		return 0, ErrShortInput
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// Uint64 reads a big-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	if r.Len() < 8 {
		return 0, ErrShortInput
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

// Bytes reads n raw bytes and returns a slice aliasing the underlying buffer.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if r.Len() < n {
		return nil, ErrShortInput
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Blob reads a length-delimited byte blob: a 1-byte length for payloads
// shorter than 255 bytes, or 0xFF followed by a big-endian uint32 length for
// longer ones. The returned slice aliases the underlying buffer.
func (r *Reader) Blob() ([]byte, error) {
	n, err := r.Byte()
	if err != nil {
		return nil, err
	}
	length := int(n)
	if n == 0xFF {
		ext, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		length = int(ext)
	}
	return r.Bytes(length)
}

// Writer is a write cursor over a byte slice borrowed from the caller.
type Writer struct {
	buf []byte
	off int
}

// NewWriter wraps buf for sequential encoding starting at offset 0.
func NewWriter(buf []byte) *Writer { return &Writer{buf: buf} }

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int { return w.off }

// Remaining returns the number of bytes still free in the buffer.
func (w *Writer) Remaining() int { return len(w.buf) - w.off }

// Bytes returns the bytes written so far, aliasing the destination buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

// Byte writes one byte.
func (w *Writer) Byte(b byte) error {
	if w.Remaining() < 1 {
		return ErrShortBuffer
	}
	w.buf[w.off] = b
	w.off++
	return nil
}

// PutUint16 writes a big-endian uint16.
func (w *Writer) PutUint16(v uint16) error {
	if w.Remaining() < 2 {
		return ErrShortBuffer
	}
	binary.BigEndian.PutUint16(w.buf[w.off:], v)
	w.off += 2
	return nil
}

// PutUint32 writes a big-endian uint32.
func (w *Writer) PutUint32(v uint32) error {
	if w.Remaining() < 4 {
		return ErrShortBuffer
	}
	binary.BigEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
	return nil
}

// PutUint64 writes a big-endian uint64.
func (w *Writer) PutUint64(v uint64) error {
	if w.Remaining() < 8 {
		return ErrShortBuffer
	}
	binary.BigEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
	return nil
}

// PutBytes writes raw bytes verbatim.
func (w *Writer) PutBytes(b []byte) error {
	if w.Remaining() < len(b) {
		return ErrShortBuffer
	}
	copy(w.buf[w.off:], b)
	w.off += len(b)
	return nil
}

// PutBlob writes b as a length-delimited blob, matching Reader.Blob's format.
func (w *Writer) PutBlob(b []byte) error {
	if len(b) < 0xFF {
		if err := w.Byte(byte(len(b))); err != nil {
			return err
		}
		return w.PutBytes(b)
	}
	if err := w.Byte(0xFF); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(len(b))); err != nil {
		return err
	}
	return w.PutBytes(b)
}
