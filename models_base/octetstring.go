package models_base

import "fmt"

// OctetString holds arbitrary bytes. It is also the form every AVP value
// takes straight off the wire.
type OctetString string

func DecodeOctetString(b []byte) (Type, error) {
	return OctetString(b), nil
}

func (s OctetString) Serialize() []byte {
	return []byte(s)
}

func (s OctetString) Len() int {
	return len(s)
}

func (s OctetString) Padding() int {
	return pad4(len(s)) - len(s)
}

func (s OctetString) Type() TypeID {
	return OctetStringType
}

func (s OctetString) String() string {
	return fmt.Sprintf("OctetString{%#x},Padding:%d", string(s), s.Padding())
}
