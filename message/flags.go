package message

import (
	"fmt"

	"github.com/hsdfat8/diam-codec/flags"
)

// CommandFlag is a bit of the header Command Flags field. Bits 3..0 are
// reserved.
type CommandFlag uint8

const (
	Retransmitted CommandFlag = 4
	Error         CommandFlag = 5
	Proxiable     CommandFlag = 6
	Request       CommandFlag = 7
)

func (CommandFlag) Bits() int { return 8 }

func (f CommandFlag) String() string {
	switch f {
	case Request:
		return "Request"
	case Proxiable:
		return "Proxiable"
	case Error:
		return "Error"
	case Retransmitted:
		return "Retransmitted"
	}
	return fmt.Sprintf("Reserved%d", uint8(f))
}

type CommandFlags = flags.Flags[CommandFlag]

// AVPFlag is a bit of the AVP Flags field. Bits 4..0 are reserved.
type AVPFlag uint8

const (
	Protected      AVPFlag = 5
	Mandatory      AVPFlag = 6
	VendorSpecific AVPFlag = 7
)

func (AVPFlag) Bits() int { return 8 }

func (f AVPFlag) String() string {
	switch f {
	case VendorSpecific:
		return "Vendor"
	case Mandatory:
		return "Mandatory"
	case Protected:
		return "Protected"
	}
	return fmt.Sprintf("Reserved%d", uint8(f))
}

type AVPFlags = flags.Flags[AVPFlag]
