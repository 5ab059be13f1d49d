// Package pcap stores Diameter messages in pcap captures and reads them
// back. Files whose name ends in ".zst" are zstd-compressed.
package pcap

import (
	"fmt"
	"net"
	"net/netip"
)

// Transport selects the layer-4 protocol a message is carried over.
type Transport uint8

const (
	TCP Transport = iota
	SCTP
)

func (t Transport) String() string {
	switch t {
	case TCP:
		return "tcp"
	case SCTP:
		return "sctp"
	}
	return fmt.Sprintf("transport(%d)", uint8(t))
}

// DiameterPort is the IANA port for Diameter over TCP and SCTP.
const DiameterPort = 3868

// Flow identifies one direction of a conversation.
type Flow struct {
	SrcMAC    net.HardwareAddr
	DstMAC    net.HardwareAddr
	SrcIP     netip.Addr
	DstIP     netip.Addr
	SrcPort   uint16
	DstPort   uint16
	Transport Transport
}

// DefaultFlow is a client to server TCP flow on the Diameter port.
func DefaultFlow() Flow {
	return Flow{
		SrcMAC:  net.HardwareAddr{0x00, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e},
		DstMAC:  net.HardwareAddr{0x00, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e},
		SrcIP:   netip.MustParseAddr("192.168.1.100"),
		DstIP:   netip.MustParseAddr("192.168.1.1"),
		SrcPort: 38680,
		DstPort: DiameterPort,
	}
}

// Reverse returns the opposite direction of f.
func (f Flow) Reverse() Flow {
	return Flow{
		SrcMAC:    f.DstMAC,
		DstMAC:    f.SrcMAC,
		SrcIP:     f.DstIP,
		DstIP:     f.SrcIP,
		SrcPort:   f.DstPort,
		DstPort:   f.SrcPort,
		Transport: f.Transport,
	}
}

func (f Flow) String() string {
	return fmt.Sprintf("%s %s -> %s",
		f.Transport, netip.AddrPortFrom(f.SrcIP, f.SrcPort), netip.AddrPortFrom(f.DstIP, f.DstPort))
}

type flowKey struct {
	src, dst  netip.AddrPort
	transport Transport
}

func (f Flow) key() flowKey {
	return flowKey{
		src:       netip.AddrPortFrom(f.SrcIP, f.SrcPort),
		dst:       netip.AddrPortFrom(f.DstIP, f.DstPort),
		transport: f.Transport,
	}
}
