package models_base

import "fmt"

// Type is a Diameter base data type that can be flattened to its on-wire
// octets.
type Type interface {
	Serialize() []byte
	Len() int
	Padding() int
	Type() TypeID
	String() string
}

type TypeID int

const (
	UnknownType TypeID = iota
	AddressType
	DiameterIdentityType
	DiameterURIType
	EnumeratedType
	Float32Type
	Float64Type
	GroupedType
	IPFilterRuleType
	Integer32Type
	Integer64Type
	OctetStringType
	TimeType
	UTF8StringType
	Unsigned32Type
	Unsigned64Type
)

var Available = map[string]TypeID{
	"Address":          AddressType,
	"DiameterIdentity": DiameterIdentityType,
	"DiameterURI":      DiameterURIType,
	"Enumerated":       EnumeratedType,
	"Float32":          Float32Type,
	"Float64":          Float64Type,
	"Grouped":          GroupedType,
	"IPFilterRule":     IPFilterRuleType,
	"Integer32":        Integer32Type,
	"Integer64":        Integer64Type,
	"OctetString":      OctetStringType,
	"Time":             TimeType,
	"UTF8String":       UTF8StringType,
	"Unsigned32":       Unsigned32Type,
	"Unsigned64":       Unsigned64Type,
}

var typeNames = func() map[TypeID]string {
	m := make(map[TypeID]string, len(Available))
	for name, id := range Available {
		m[id] = name
	}
	return m
}()

func (t TypeID) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TypeID(%d)", int(t))
}

// ParseTypeID looks a type up by its RFC 6733 name.
func ParseTypeID(name string) (TypeID, bool) {
	id, ok := Available[name]
	return id, ok
}

// ErrInvalidSize is returned by fixed-width decoders when the input does not
// have the exact width of the type.
type ErrInvalidSize struct {
	Type TypeID
	Want int
	Have int
}

func (e ErrInvalidSize) Error() string {
	return fmt.Sprintf("invalid %s size: want %d bytes, have %d", e.Type, e.Want, e.Have)
}

func checkSize(t TypeID, b []byte, want int) error {
	if len(b) != want {
		return ErrInvalidSize{Type: t, Want: want, Have: len(b)}
	}
	return nil
}

// pad4 rounds n up to a multiple of 4.
func pad4(n int) int {
	return n + ((4 - n%4) % 4)
}
