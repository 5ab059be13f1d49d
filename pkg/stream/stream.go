// Package stream frames Diameter messages on byte streams. A message is
// delimited only by the 24-bit length in its header.
package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/hsdfat8/diam-codec/message"
	"github.com/hsdfat8/diam-codec/pkg/logger"
	"github.com/hsdfat8/diam-codec/pkg/metrics"
)

var log = logger.For("stream")

// Buffer pool for message reading
var readerBufferPool sync.Pool

const pooledMessageLength = 1 << 12

func newReaderBuffer() *bytes.Buffer {
	if v := readerBufferPool.Get(); v != nil {
		return v.(*bytes.Buffer)
	}
	return bytes.NewBuffer(make([]byte, pooledMessageLength))
}

func putReaderBuffer(b *bytes.Buffer) {
	if cap(b.Bytes()) == pooledMessageLength {
		b.Reset()
		readerBufferPool.Put(b)
	}
}

func readerBufferSlice(buf *bytes.Buffer, l int) []byte {
	b := buf.Bytes()
	if l <= pooledMessageLength && cap(b) >= pooledMessageLength {
		return b[:l]
	}
	return make([]byte, l)
}

// readFrame reads one message into scratch space from the pool and hands
// it to fn before the space is returned.
func readFrame(r io.Reader, fn func(frame []byte) error) error {
	buf := newReaderBuffer()
	defer putReaderBuffer(buf)

	b := readerBufferSlice(buf, message.HeaderLength)
	if _, err := io.ReadFull(r, b); err != nil {
		return err
	}
	h, err := message.DecodeHeader(b)
	if err != nil {
		return err
	}

	frame := readerBufferSlice(buf, int(h.Length))
	if &frame[0] != &b[0] {
		copy(frame, b)
	}
	n, err := io.ReadFull(r, frame[message.HeaderLength:])
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("read body of %s: %w, %d of %d bytes read", h, err, n, int(h.Length)-message.HeaderLength)
	}
	return fn(frame)
}

// ReadFrame reads one complete message, header included, without decoding
// its AVPs. The returned slice is owned by the caller.
func ReadFrame(r io.Reader) ([]byte, error) {
	var out []byte
	err := readFrame(r, func(frame []byte) error {
		out = bytes.Clone(frame)
		return nil
	})
	return out, err
}

// Reader decodes consecutive messages from a byte stream.
type Reader struct {
	r   io.Reader
	rec *metrics.Recorder
}

// NewReader returns a Reader over r. rec may be nil.
func NewReader(r io.Reader, rec *metrics.Recorder) *Reader {
	return &Reader{r: r, rec: rec}
}

// Next decodes the next message. It returns io.EOF only when the stream
// ends cleanly between messages.
func (r *Reader) Next() (*message.Message, error) {
	var m *message.Message
	err := readFrame(r.r, func(frame []byte) error {
		var err error
		if m, err = message.Decode(frame); err != nil {
			return err
		}
		r.rec.Observe(metrics.OpDecode, m, len(frame))
		return nil
	})
	if err != nil && err != io.EOF {
		r.rec.ObserveError(metrics.OpDecode, err)
		log.Debugw("Failed to read message", "error", err)
		return nil, err
	}
	return m, err
}

// ReadMessage decodes a single message from r.
func ReadMessage(r io.Reader) (*message.Message, error) {
	return NewReader(r, nil).Next()
}

// Writer encodes messages onto a byte stream, reusing one buffer.
type Writer struct {
	w   io.Writer
	rec *metrics.Recorder
	buf []byte
}

// NewWriter returns a Writer over w. rec may be nil.
func NewWriter(w io.Writer, rec *metrics.Recorder) *Writer {
	return &Writer{w: w, rec: rec}
}

// Write encodes m and writes it in one call to the underlying writer.
func (w *Writer) Write(m *message.Message) error {
	size := m.Size()
	if size > message.MaxLength {
		err := message.ErrInvalidMessageLength{Length: uint64(size)}
		w.rec.ObserveError(metrics.OpEncode, err)
		return err
	}
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	n, err := m.MarshalTo(w.buf[:size])
	if err != nil {
		w.rec.ObserveError(metrics.OpEncode, err)
		return err
	}
	if _, err := w.w.Write(w.buf[:n]); err != nil {
		return err
	}
	w.rec.Observe(metrics.OpEncode, m, n)
	return nil
}

// WriteMessage encodes m onto w.
func WriteMessage(w io.Writer, m *message.Message) error {
	return NewWriter(w, nil).Write(m)
}

// ScanMessages is a bufio.SplitFunc that yields one whole message per token.
func ScanMessages(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) < message.HeaderLength {
		if atEOF && len(data) > 0 {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}
	h, err := message.DecodeHeader(data[:message.HeaderLength])
	if err != nil {
		return 0, nil, err
	}
	if len(data) < int(h.Length) {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}
	return int(h.Length), data[:h.Length], nil
}

// NewScanner returns a bufio.Scanner that splits r into messages of up to
// message.MaxLength bytes.
func NewScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, pooledMessageLength), message.MaxLength)
	s.Split(ScanMessages)
	return s
}
