// Package netpack provides bounds-checked big-endian reads and writes over
// caller-owned byte slices. Integers may use any width from 1 to 8 bytes,
// which covers the 24-bit fields of the Diameter header and AVP.
package netpack

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfBuffer is returned when a read needs more bytes than remain.
	ErrEndOfBuffer = errors.New("netpack: end of buffer")
	// ErrBufferOverflow is returned when a write does not fit the destination.
	ErrBufferOverflow = errors.New("netpack: buffer overflow")
	// ErrInvalidWidth is returned for integer widths outside 1..8.
	ErrInvalidWidth = errors.New("netpack: invalid integer width")
)

func checkWidth(width int) error {
	if width < 1 || width > 8 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return nil
}

// Reader consumes a byte slice front to back.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) need(n int) error {
	if n < 0 || r.Len() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrEndOfBuffer, n, r.off, r.Len())
	}
	return nil
}

// Uint reads a big-endian unsigned integer of width bytes.
func (r *Reader) Uint(width int) (uint64, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}
	if err := r.need(width); err != nil {
		return 0, err
	}
	var v uint64
	for _, b := range r.buf[r.off : r.off+width] {
		v = v<<8 | uint64(b)
	}
	r.off += width
	return v, nil
}

func (r *Reader) Uint8() (uint8, error) {
	v, err := r.Uint(1)
	return uint8(v), err
}

func (r *Reader) Uint16() (uint16, error) {
	v, err := r.Uint(2)
	return uint16(v), err
}

// Uint24 reads a 3-byte big-endian integer.
func (r *Reader) Uint24() (uint32, error) {
	v, err := r.Uint(3)
	return uint32(v), err
}

func (r *Reader) Uint32() (uint32, error) {
	v, err := r.Uint(4)
	return uint32(v), err
}

func (r *Reader) Uint64() (uint64, error) {
	return r.Uint(8)
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.buf[r.off:])
	r.off += n
	return b, nil
}

// Skip advances past n bytes.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

// Writer fills a fixed destination slice front to back. It never grows the
// destination.
type Writer struct {
	buf []byte
	off int
}

func NewWriter(dst []byte) *Writer {
	return &Writer{buf: dst}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.off
}

// Available returns the free space left in the destination.
func (w *Writer) Available() int {
	return len(w.buf) - w.off
}

// Bytes returns the written part of the destination.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.off]
}

func (w *Writer) room(n int) error {
	if n < 0 || w.Available() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrBufferOverflow, n, w.off, w.Available())
	}
	return nil
}

// PutUint writes the low width bytes of v in big-endian order.
func (w *Writer) PutUint(v uint64, width int) error {
	if err := checkWidth(width); err != nil {
		return err
	}
	if err := w.room(width); err != nil {
		return err
	}
	for i := width - 1; i >= 0; i-- {
		w.buf[w.off+i] = byte(v)
		v >>= 8
	}
	w.off += width
	return nil
}

func (w *Writer) PutUint8(v uint8) error   { return w.PutUint(uint64(v), 1) }
func (w *Writer) PutUint16(v uint16) error { return w.PutUint(uint64(v), 2) }
func (w *Writer) PutUint24(v uint32) error { return w.PutUint(uint64(v), 3) }
func (w *Writer) PutUint32(v uint32) error { return w.PutUint(uint64(v), 4) }
func (w *Writer) PutUint64(v uint64) error { return w.PutUint(v, 8) }

// PutBytes copies p into the destination.
func (w *Writer) PutBytes(p []byte) error {
	if err := w.room(len(p)); err != nil {
		return err
	}
	w.off += copy(w.buf[w.off:], p)
	return nil
}

// Zero writes n zero bytes.
func (w *Writer) Zero(n int) error {
	if err := w.room(n); err != nil {
		return err
	}
	clear(w.buf[w.off : w.off+n])
	w.off += n
	return nil
}
