package message

import (
	"fmt"
	"strings"

	"github.com/hsdfat8/diam-codec/pkg/logger"
	"github.com/hsdfat8/diam-codec/pkg/netpack"
)

// Message is a Diameter header followed by an ordered list of AVPs.
type Message struct {
	Header Header
	AVPs   []AVP
}

// New returns a message with a fresh header for the given command and
// application.
func New(commandCode, applicationID uint32, fl CommandFlags) *Message {
	h := NewHeader()
	h.CommandCode = commandCode
	h.ApplicationID = applicationID
	h.Flags = fl
	return &Message{Header: h}
}

// NewAnswer returns an empty answer to req. It keeps the command code,
// application id, hop-by-hop and end-to-end identifiers and the Proxiable
// bit.
func NewAnswer(req *Message) *Message {
	var fl CommandFlags
	fl.SetTo(Proxiable, req.Header.IsProxiable())
	m := New(req.Header.CommandCode, req.Header.ApplicationID, fl)
	m.Header.HopByHopID = req.Header.HopByHopID
	m.Header.EndToEndID = req.Header.EndToEndID
	return m
}

// Add appends AVPs in order.
func (m *Message) Add(avps ...AVP) *Message {
	m.AVPs = append(m.AVPs, avps...)
	return m
}

// Find returns the first top-level AVP with code.
func (m *Message) Find(code uint32) (AVP, bool) {
	for _, a := range m.AVPs {
		if a.Code == code {
			return a, true
		}
	}
	return AVP{}, false
}

func (m *Message) FindAll(code uint32) []AVP {
	var out []AVP
	for _, a := range m.AVPs {
		if a.Code == code {
			out = append(out, a)
		}
	}
	return out
}

// Size returns the encoded size of the message and stores it in
// Header.Length.
func (m *Message) Size() int {
	n := m.Header.Size()
	for i := range m.AVPs {
		n += m.AVPs[i].Size()
	}
	m.Header.Length = uint32(n)
	return n
}

// MarshalTo encodes the message into dst and returns the number of bytes
// written. On error the content of dst is unspecified.
func (m *Message) MarshalTo(dst []byte) (int, error) {
	n := m.Size()
	if n > MaxLength {
		return 0, ErrInvalidMessageLength{Length: uint64(n)}
	}
	w := netpack.NewWriter(dst)
	if err := m.Header.MarshalTo(w); err != nil {
		return w.Len(), err
	}
	for i := range m.AVPs {
		if err := m.AVPs[i].MarshalTo(w); err != nil {
			return w.Len(), err
		}
	}
	return w.Len(), nil
}

// Marshal encodes the message into a new buffer.
func (m *Message) Marshal() ([]byte, error) {
	buf := make([]byte, m.Size())
	if _, err := m.MarshalTo(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Unmarshal decodes b into m. Only the Header.Length bytes at the start of
// b are parsed; anything after them is ignored.
func (m *Message) Unmarshal(b []byte) error {
	r := netpack.NewReader(b)
	h, err := ReadHeader(r)
	if err != nil {
		return err
	}
	body, err := r.Bytes(int(h.Length) - HeaderLength)
	if err != nil {
		return err
	}
	br := netpack.NewReader(body)
	avps := []AVP{}
	for br.Len() > 0 {
		offset := HeaderLength + br.Offset()
		a, err := ReadAVP(br)
		if err != nil {
			logger.Log.Debugw("Failed to decode AVP", "command_code", h.CommandCode, "offset", offset, "error", err)
			return err
		}
		avps = append(avps, a)
	}
	m.Header = h
	m.AVPs = avps
	return nil
}

func (m *Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Header.String())
	for _, a := range m.AVPs {
		fmt.Fprintf(&sb, "\n  %s", a)
	}
	return sb.String()
}

// Encode is shorthand for m.Marshal.
func Encode(m *Message) ([]byte, error) {
	return m.Marshal()
}

// Decode parses one message from the start of b.
func Decode(b []byte) (*Message, error) {
	m := &Message{}
	if err := m.Unmarshal(b); err != nil {
		return nil, err
	}
	return m, nil
}
