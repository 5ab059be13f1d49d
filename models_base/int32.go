package models_base

import (
	"encoding/binary"
	"fmt"
)

// Integer32 is a signed 32-bit value in two's complement.
type Integer32 int32

// DecodeInteger32 requires exactly 4 bytes.
func DecodeInteger32(b []byte) (Type, error) {
	if err := checkSize(Integer32Type, b, 4); err != nil {
		return nil, err
	}
	return Integer32(int32(binary.BigEndian.Uint32(b))), nil
}

func (n Integer32) Serialize() []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(n))
	return b
}

func (n Integer32) Len() int     { return 4 }
func (n Integer32) Padding() int { return 0 }
func (n Integer32) Type() TypeID { return Integer32Type }

func (n Integer32) String() string {
	return fmt.Sprintf("Integer32{%d}", n)
}
