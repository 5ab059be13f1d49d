package message

import (
	"fmt"

	"github.com/hsdfat8/diam-codec/flags"
	"github.com/hsdfat8/diam-codec/pkg/netpack"
)

const (
	// Version is the only Diameter protocol version.
	Version = 1
	// HeaderLength is the fixed size of the message header.
	HeaderLength = 20
	// MaxLength is the largest value of a 24-bit length field.
	MaxLength = 1<<24 - 1
)

// Header is the fixed 20-byte Diameter message header.
type Header struct {
	Version       uint8
	Length        uint32
	Flags         CommandFlags
	CommandCode   uint32
	ApplicationID uint32
	HopByHopID    uint32
	EndToEndID    uint32
}

// NewHeader returns a version 1 header describing an empty message.
func NewHeader() Header {
	return Header{Version: Version, Length: HeaderLength}
}

func (h Header) Size() int {
	return HeaderLength
}

func (h Header) IsRequest() bool       { return h.Flags.Test(Request) }
func (h Header) IsProxiable() bool     { return h.Flags.Test(Proxiable) }
func (h Header) IsError() bool         { return h.Flags.Test(Error) }
func (h Header) IsRetransmitted() bool { return h.Flags.Test(Retransmitted) }

// MarshalTo writes the header. The length and command code keep only their
// low 24 bits.
func (h Header) MarshalTo(w *netpack.Writer) error {
	if err := w.PutUint8(h.Version); err != nil {
		return err
	}
	if err := w.PutUint24(h.Length); err != nil {
		return err
	}
	if err := w.PutUint(h.Flags.Uint64(), h.Flags.EncodedWidth()); err != nil {
		return err
	}
	if err := w.PutUint24(h.CommandCode); err != nil {
		return err
	}
	for _, v := range [...]uint32{h.ApplicationID, h.HopByHopID, h.EndToEndID} {
		if err := w.PutUint32(v); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeader reads and validates a header. Every field read is bounds
// checked, so a short source fails with netpack.ErrEndOfBuffer at the first
// field that does not fit.
func ReadHeader(r *netpack.Reader) (Header, error) {
	var (
		h   Header
		err error
	)
	if h.Version, err = r.Uint8(); err != nil {
		return h, err
	}
	if h.Version != Version {
		return h, ErrInvalidProtocolVersion{Version: h.Version}
	}
	if h.Length, err = r.Uint24(); err != nil {
		return h, err
	}
	if h.Length < HeaderLength {
		return h, ErrInvalidMessageLength{Length: uint64(h.Length)}
	}
	fl, err := r.Uint(h.Flags.EncodedWidth())
	if err != nil {
		return h, err
	}
	h.Flags = flags.FromUint[CommandFlag](fl)
	if h.CommandCode, err = r.Uint24(); err != nil {
		return h, err
	}
	if h.ApplicationID, err = r.Uint32(); err != nil {
		return h, err
	}
	if h.HopByHopID, err = r.Uint32(); err != nil {
		return h, err
	}
	if h.EndToEndID, err = r.Uint32(); err != nil {
		return h, err
	}
	return h, nil
}

// DecodeHeader reads a header from the start of b.
func DecodeHeader(b []byte) (Header, error) {
	return ReadHeader(netpack.NewReader(b))
}

func (h Header) String() string {
	return fmt.Sprintf("Header{Version:%d,Length:%d,Flags:%s,CommandCode:%d,ApplicationID:%d,HopByHopID:%#x,EndToEndID:%#x}",
		h.Version, h.Length, h.Flags, h.CommandCode, h.ApplicationID, h.HopByHopID, h.EndToEndID)
}
