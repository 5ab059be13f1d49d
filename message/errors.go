package message

import (
	"errors"
	"fmt"

	"github.com/hsdfat8/diam-codec/models_base"
	"github.com/hsdfat8/diam-codec/pkg/netpack"
)

// ErrInvalidProtocolVersion is returned when a header carries a version other
// than 1.
type ErrInvalidProtocolVersion struct {
	Version uint8
}

func (e ErrInvalidProtocolVersion) Error() string {
	return fmt.Sprintf("invalid protocol version: %d", e.Version)
}

// ErrInvalidMessageLength is returned for a header length shorter than the
// header itself, or a message too long for the 24-bit length field.
type ErrInvalidMessageLength struct {
	Length uint64
}

func (e ErrInvalidMessageLength) Error() string {
	return fmt.Sprintf("invalid message length: %d", e.Length)
}

type ErrInvalidAvpLength struct {
	Code   uint32
	Length uint64
	Reason string
}

func (e ErrInvalidAvpLength) Error() string {
	return fmt.Sprintf("invalid AVP %d length %d: %s", e.Code, e.Length, e.Reason)
}

// ErrInvalidAvpVendorId is returned when encoding an AVP whose
// Vendor-Specific flag is set but which carries no vendor id.
type ErrInvalidAvpVendorId struct {
	Code uint32
}

func (e ErrInvalidAvpVendorId) Error() string {
	return fmt.Sprintf("invalid AVP %d: vendor-specific flag set without vendor id", e.Code)
}

// ErrInvalidAvpValueCast is returned when a value cannot be viewed as the
// requested type.
type ErrInvalidAvpValueCast struct {
	From  models_base.TypeID
	To    models_base.TypeID
	Cause error
}

func (e ErrInvalidAvpValueCast) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid AVP value cast from %s to %s: %v", e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("invalid AVP value cast from %s to %s", e.From, e.To)
}

func (e ErrInvalidAvpValueCast) Unwrap() error {
	return e.Cause
}

// ErrorKind returns a stable label for err, suitable as a metric label.
func ErrorKind(err error) string {
	var (
		version  ErrInvalidProtocolVersion
		msgLen   ErrInvalidMessageLength
		avpLen   ErrInvalidAvpLength
		vendorID ErrInvalidAvpVendorId
		cast     ErrInvalidAvpValueCast
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cast):
		return "invalid_avp_value_cast"
	case errors.As(err, &version):
		return "invalid_protocol_version"
	case errors.As(err, &msgLen):
		return "invalid_message_length"
	case errors.As(err, &avpLen):
		return "invalid_avp_length"
	case errors.As(err, &vendorID):
		return "invalid_avp_vendor_id"
	case errors.Is(err, netpack.ErrEndOfBuffer):
		return "end_of_buffer"
	case errors.Is(err, netpack.ErrBufferOverflow):
		return "buffer_overflow"
	}
	return "other"
}
