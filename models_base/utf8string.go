package models_base

import (
	"fmt"
	"unicode/utf8"
)

type UTF8String OctetString

func DecodeUTF8String(b []byte) (Type, error) {
	return UTF8String(b), nil
}

func (s UTF8String) Serialize() []byte {
	return []byte(s)
}

func (s UTF8String) Len() int {
	return len(s)
}

func (s UTF8String) Padding() int {
	return OctetString(s).Padding()
}

func (s UTF8String) Type() TypeID {
	return UTF8StringType
}

// Valid reports whether s holds well-formed UTF-8.
func (s UTF8String) Valid() bool {
	return utf8.ValidString(string(s))
}

func (s UTF8String) String() string {
	return fmt.Sprintf("UTF8String{%s},Padding:%d", string(s), s.Padding())
}
