package models_base

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// ntpUnixOffset is the number of seconds between 1900-01-01 and 1970-01-01.
const ntpUnixOffset = (70*365 + 17) * 86400

// ErrTimeOverflow is returned when a Time does not map onto a signed 64-bit
// Unix second count, or a calendar time precedes the NTP epoch.
var ErrTimeOverflow = errors.New("time: overflow")

// Time is an NTP timestamp in seconds since 1900-01-01 UTC. Only Value is
// carried on the wire; Era counts the 2^32 second rollovers, the first of
// which happens at 2036-02-07 06:28:16 UTC.
type Time struct {
	Value uint32
	Era   uint32
}

// NewTime infers the era from the top bit: values with the top bit set are
// in era 0 (1968-2036), the rest in era 1 (2036-2104). Later eras must be
// given explicitly with NewTimeEra.
func NewTime(v uint32) Time {
	t := Time{Value: v}
	if v&0x80000000 == 0 {
		t.Era = 1
	}
	return t
}

func NewTimeEra(v, era uint32) Time {
	return Time{Value: v, Era: era}
}

// TimeFromCalendar converts t, truncated to the second, into an NTP era and
// offset.
func TimeFromCalendar(t time.Time) (Time, error) {
	unix := t.Unix()
	if unix < -ntpUnixOffset || unix > math.MaxInt64-ntpUnixOffset {
		return Time{}, fmt.Errorf("%w: %s", ErrTimeOverflow, t.UTC())
	}
	ntp := uint64(unix + ntpUnixOffset)
	return Time{Value: uint32(ntp), Era: uint32(ntp >> 32)}, nil
}

// NTP returns the era-extended seconds since 1900.
func (t Time) NTP() uint64 {
	return uint64(t.Era)<<32 | uint64(t.Value)
}

// Calendar converts back to UTC wall time.
func (t Time) Calendar() (time.Time, error) {
	ntp := t.NTP()
	if ntp > math.MaxInt64 {
		return time.Time{}, fmt.Errorf("%w: era %d value %d", ErrTimeOverflow, t.Era, t.Value)
	}
	return time.Unix(int64(ntp)-ntpUnixOffset, 0).UTC(), nil
}

// DecodeTime requires exactly 4 bytes and infers the era like NewTime.
func DecodeTime(b []byte) (Type, error) {
	if err := checkSize(TimeType, b, 4); err != nil {
		return nil, err
	}
	return NewTime(binary.BigEndian.Uint32(b)), nil
}

func (t Time) Serialize() []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, t.Value)
	return b
}

func (t Time) Len() int {
	return 4
}

func (t Time) Padding() int {
	return 0
}

func (t Time) Type() TypeID {
	return TimeType
}

func (t Time) String() string {
	c, err := t.Calendar()
	if err != nil {
		return fmt.Sprintf("Time{era:%d,%d}", t.Era, t.Value)
	}
	return fmt.Sprintf("Time{%s}", c.Format(time.DateTime))
}
