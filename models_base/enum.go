package models_base

import "fmt"

// Enumerated carries an Integer32 whose value set is defined by the
// application that owns the AVP.
type Enumerated Integer32

func DecodeEnumerated(b []byte) (Type, error) {
	if err := checkSize(EnumeratedType, b, 4); err != nil {
		return nil, err
	}
	v, _ := DecodeInteger32(b)
	return Enumerated(v.(Integer32)), nil
}

func (n Enumerated) Serialize() []byte {
	return Integer32(n).Serialize()
}

func (n Enumerated) Len() int     { return 4 }
func (n Enumerated) Padding() int { return 0 }
func (n Enumerated) Type() TypeID { return EnumeratedType }

func (n Enumerated) String() string {
	return fmt.Sprintf("Enumerated{%d}", n)
}
