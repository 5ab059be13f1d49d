package base

import (
	"sync/atomic"
	"time"
)

// IDs hands out Hop-by-Hop and End-to-End identifiers. End-to-End ids
// start with the low 12 bits of the start time in the high bits, as
// RFC 6733 section 3 suggests.
type IDs struct {
	hopByHop atomic.Uint32
	endToEnd atomic.Uint32
}

func NewIDs(now time.Time) *IDs {
	ids := &IDs{}
	seed := uint32(now.UnixNano())
	ids.hopByHop.Store(seed)
	ids.endToEnd.Store(uint32(now.Unix()&0xfff) << 20)
	return ids
}

func (i *IDs) NextHopByHop() uint32 { return i.hopByHop.Add(1) }
func (i *IDs) NextEndToEnd() uint32 { return i.endToEnd.Add(1) }

var defaultIDs = NewIDs(time.Now())
