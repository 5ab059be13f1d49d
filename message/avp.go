package message

import (
	"fmt"

	"github.com/hsdfat8/diam-codec/flags"
	"github.com/hsdfat8/diam-codec/models_base"
	"github.com/hsdfat8/diam-codec/pkg/netpack"
)

const (
	avpHeaderLength       = 8
	avpVendorHeaderLength = 12
)

// AVP is a single attribute. Vendor-Specific in Flags decides whether the
// Vendor-ID field is framed; VendorID must then be set before encoding.
type AVP struct {
	Code     uint32
	Flags    AVPFlags
	VendorID *uint32
	Value    Value
}

func NewAVP(code uint32, fl AVPFlags, v models_base.Type) AVP {
	return AVP{Code: code, Flags: fl, Value: NewValue(v)}
}

// NewVendorAVP returns an AVP carrying vendorID, with Vendor-Specific raised.
func NewVendorAVP(code, vendorID uint32, fl AVPFlags, v models_base.Type) AVP {
	a := NewAVP(code, fl, v)
	a.SetVendorID(vendorID)
	return a
}

func NewGroupedAVP(code uint32, fl AVPFlags, avps ...AVP) AVP {
	return AVP{Code: code, Flags: fl, Value: NewGrouped(avps...)}
}

// SetVendorID stores id and raises Vendor-Specific.
func (a *AVP) SetVendorID(id uint32) {
	a.VendorID = &id
	a.Flags.Set(VendorSpecific)
}

// Vendor returns the vendor id, if any.
func (a AVP) Vendor() (uint32, bool) {
	if a.VendorID == nil {
		return 0, false
	}
	return *a.VendorID, true
}

func (a AVP) IsVendorSpecific() bool { return a.Flags.Test(VendorSpecific) }
func (a AVP) IsMandatory() bool      { return a.Flags.Test(Mandatory) }

func (a AVP) headerLength() int {
	if a.IsVendorSpecific() {
		return avpVendorHeaderLength
	}
	return avpHeaderLength
}

// Length is the value of the AVP Length field: header plus data, without
// padding.
func (a AVP) Length() int {
	return a.headerLength() + a.Value.Len()
}

// Padding is the number of zero bytes that align the AVP to 4 bytes.
func (a AVP) Padding() int {
	return (4 - a.Length()%4) % 4
}

// Size is the number of bytes the AVP occupies on the wire.
func (a AVP) Size() int {
	return a.Length() + a.Padding()
}

// MarshalTo writes the AVP, its value and padding.
func (a AVP) MarshalTo(w *netpack.Writer) error {
	length := a.Length()
	if length > MaxLength {
		return ErrInvalidAvpLength{Code: a.Code, Length: uint64(length), Reason: "exceeds 24-bit length field"}
	}
	if a.IsVendorSpecific() && a.VendorID == nil {
		return ErrInvalidAvpVendorId{Code: a.Code}
	}
	if err := w.PutUint32(a.Code); err != nil {
		return err
	}
	if err := w.PutUint(a.Flags.Uint64(), a.Flags.EncodedWidth()); err != nil {
		return err
	}
	if err := w.PutUint24(uint32(length)); err != nil {
		return err
	}
	if a.IsVendorSpecific() {
		if err := w.PutUint32(*a.VendorID); err != nil {
			return err
		}
	}
	if err := a.Value.writeTo(w); err != nil {
		return err
	}
	return w.Zero(a.Padding())
}

// Marshal encodes the AVP into a new buffer of Size() bytes.
func (a AVP) Marshal() ([]byte, error) {
	buf := make([]byte, a.Size())
	if err := a.MarshalTo(netpack.NewWriter(buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadAVP reads one AVP. The value is kept as an OctetString; use the cast
// functions for a typed view.
func ReadAVP(r *netpack.Reader) (AVP, error) {
	var a AVP
	code, err := r.Uint32()
	if err != nil {
		return a, err
	}
	a.Code = code
	fl, err := r.Uint(a.Flags.EncodedWidth())
	if err != nil {
		return a, err
	}
	a.Flags = flags.FromUint[AVPFlag](fl)
	length, err := r.Uint24()
	if err != nil {
		return a, err
	}
	if length < avpHeaderLength {
		return a, ErrInvalidAvpLength{Code: code, Length: uint64(length), Reason: "too small"}
	}
	remaining := int(length) - avpHeaderLength
	if a.IsVendorSpecific() {
		if remaining < 4 {
			return a, ErrInvalidAvpLength{Code: code, Length: uint64(length), Reason: "too small for vendor specific"}
		}
		vendor, err := r.Uint32()
		if err != nil {
			return a, err
		}
		a.VendorID = &vendor
		remaining -= 4
	}
	data, err := r.Bytes(remaining)
	if err != nil {
		return a, err
	}
	a.Value = NewValue(models_base.OctetString(data))
	if err := r.Skip(a.Padding()); err != nil {
		return a, err
	}
	return a, nil
}

// DecodeAVP reads a single AVP from the start of b.
func DecodeAVP(b []byte) (AVP, error) {
	return ReadAVP(netpack.NewReader(b))
}

func (a AVP) clone() AVP {
	if a.VendorID != nil {
		v := *a.VendorID
		a.VendorID = &v
	}
	a.Value = a.Value.clone()
	return a
}

func (a AVP) String() string {
	if v, ok := a.Vendor(); ok {
		return fmt.Sprintf("AVP{Code:%d,Flags:%s,VendorID:%d,Length:%d,Value:%s}", a.Code, a.Flags, v, a.Length(), a.Value)
	}
	return fmt.Sprintf("AVP{Code:%d,Flags:%s,Length:%d,Value:%s}", a.Code, a.Flags, a.Length(), a.Value)
}
