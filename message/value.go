package message

import (
	"fmt"
	"strings"

	"github.com/hsdfat8/diam-codec/models_base"
	"github.com/hsdfat8/diam-codec/pkg/netpack"
)

// Value is the payload of an AVP. It holds exactly one of the base data
// types, or an ordered list of AVPs for Grouped. The zero Value is an empty
// OctetString.
type Value struct {
	data    models_base.Type
	group   []AVP
	grouped bool
}

// NewValue wraps a base data type. A nil t yields the zero Value.
func NewValue(t models_base.Type) Value {
	return Value{data: t}
}

// NewGrouped returns a Grouped value owning a copy of avps.
func NewGrouped(avps ...AVP) Value {
	return Value{group: cloneAVPs(avps), grouped: true}
}

// Kind returns the active alternative.
func (v Value) Kind() models_base.TypeID {
	switch {
	case v.grouped:
		return models_base.GroupedType
	case v.data == nil:
		return models_base.OctetStringType
	}
	return v.data.Type()
}

// Len returns the size of the value in octets, without padding. For Grouped
// this is the sum of the children's padded sizes.
func (v Value) Len() int {
	if v.grouped {
		n := 0
		for _, a := range v.group {
			n += a.Size()
		}
		return n
	}
	if v.data == nil {
		return 0
	}
	return v.data.Len()
}

// Data returns the base data type held by v, or nil for Grouped.
func (v Value) Data() models_base.Type {
	if v.grouped {
		return nil
	}
	if v.data == nil {
		return models_base.OctetString("")
	}
	return v.data
}

// Group returns the children of a Grouped value and nil otherwise. The
// returned slice is owned by v.
func (v Value) Group() []AVP {
	return v.group
}

// Bytes flattens v into its on-wire octets.
func (v Value) Bytes() ([]byte, error) {
	if !v.grouped {
		if v.data == nil {
			return []byte{}, nil
		}
		return v.data.Serialize(), nil
	}
	buf := make([]byte, v.Len())
	if err := v.writeTo(netpack.NewWriter(buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (v Value) writeTo(w *netpack.Writer) error {
	if !v.grouped {
		if v.data == nil {
			return nil
		}
		return w.PutBytes(v.data.Serialize())
	}
	for i := range v.group {
		if err := v.group[i].MarshalTo(w); err != nil {
			return err
		}
	}
	return nil
}

func (v Value) clone() Value {
	if v.grouped {
		return Value{group: cloneAVPs(v.group), grouped: true}
	}
	if a, ok := v.data.(models_base.Address); ok {
		a.Value = append([]byte(nil), a.Value...)
		return Value{data: a}
	}
	return v
}

func (v Value) String() string {
	if !v.grouped {
		return v.Data().String()
	}
	parts := make([]string, len(v.group))
	for i, a := range v.group {
		parts[i] = a.String()
	}
	return fmt.Sprintf("Grouped{%s}", strings.Join(parts, ","))
}

func cloneAVPs(avps []AVP) []AVP {
	if avps == nil {
		return nil
	}
	out := make([]AVP, len(avps))
	for i, a := range avps {
		out[i] = a.clone()
	}
	return out
}
