package message

import (
	"fmt"

	"github.com/hsdfat8/diam-codec/models_base"
	"github.com/hsdfat8/diam-codec/pkg/netpack"
)

type castFunc func(raw []byte) (Value, error)

func fromDecoder(decode func([]byte) (models_base.Type, error)) castFunc {
	return func(raw []byte) (Value, error) {
		t, err := decode(raw)
		if err != nil {
			return Value{}, err
		}
		return NewValue(t), nil
	}
}

// castTable reconstructs each kind from raw octets.
var castTable = map[models_base.TypeID]castFunc{
	models_base.OctetStringType:      fromDecoder(models_base.DecodeOctetString),
	models_base.Integer32Type:        fromDecoder(models_base.DecodeInteger32),
	models_base.Integer64Type:        fromDecoder(models_base.DecodeInteger64),
	models_base.Unsigned32Type:       fromDecoder(models_base.DecodeUnsigned32),
	models_base.Unsigned64Type:       fromDecoder(models_base.DecodeUnsigned64),
	models_base.Float32Type:          fromDecoder(models_base.DecodeFloat32),
	models_base.Float64Type:          fromDecoder(models_base.DecodeFloat64),
	models_base.AddressType:          fromDecoder(models_base.DecodeAddress),
	models_base.TimeType:             fromDecoder(models_base.DecodeTime),
	models_base.UTF8StringType:       fromDecoder(models_base.DecodeUTF8String),
	models_base.DiameterIdentityType: fromDecoder(models_base.DecodeDiameterIdentity),
	models_base.DiameterURIType:      fromDecoder(models_base.DecodeDiameterURI),
	models_base.EnumeratedType:       fromDecoder(models_base.DecodeEnumerated),
	models_base.IPFilterRuleType:     fromDecoder(models_base.DecodeIPFilterRule),
	models_base.GroupedType:          decodeGrouped,
}

// decodeGrouped reads AVPs until raw is exhausted. Children keep their
// values as OctetString.
func decodeGrouped(raw []byte) (Value, error) {
	r := netpack.NewReader(raw)
	group := []AVP{}
	for r.Len() > 0 {
		a, err := ReadAVP(r)
		if err != nil {
			return Value{}, fmt.Errorf("grouped AVP at offset %d: %w", r.Offset(), err)
		}
		group = append(group, a)
	}
	return Value{group: group, grouped: true}, nil
}

// As returns v viewed as kind. A value already of that kind is copied. Any
// kind can be flattened to OctetString, and an OctetString can be parsed as
// any kind whose shape its bytes fit. Every other pair fails with
// ErrInvalidAvpValueCast.
func (v Value) As(kind models_base.TypeID) (Value, error) {
	from := v.Kind()
	if from == kind {
		return v.clone(), nil
	}
	if kind == models_base.OctetStringType {
		raw, err := v.Bytes()
		if err != nil {
			return Value{}, ErrInvalidAvpValueCast{From: from, To: kind, Cause: err}
		}
		return NewValue(models_base.OctetString(raw)), nil
	}
	cast, ok := castTable[kind]
	if from != models_base.OctetStringType || !ok {
		return Value{}, ErrInvalidAvpValueCast{From: from, To: kind}
	}
	raw := v.Data().Serialize()
	out, err := cast(raw)
	if err != nil {
		return Value{}, ErrInvalidAvpValueCast{From: from, To: kind, Cause: err}
	}
	return out, nil
}

// ValueAs returns the typed view T of v, e.g.
//
//	host, err := message.ValueAs[models_base.DiameterIdentity](avp.Value)
func ValueAs[T models_base.Type](v Value) (T, error) {
	var zero T
	out, err := v.As(zero.Type())
	if err != nil {
		return zero, err
	}
	t, ok := out.Data().(T)
	if !ok {
		return zero, ErrInvalidAvpValueCast{From: v.Kind(), To: zero.Type()}
	}
	return t, nil
}

// AsGrouped returns the children of v, decoding them from raw octets when
// needed.
func AsGrouped(v Value) ([]AVP, error) {
	out, err := v.As(models_base.GroupedType)
	if err != nil {
		return nil, err
	}
	return out.group, nil
}
