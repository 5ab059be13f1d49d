package models_base

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// AddressFamily is an IANA address family number.
type AddressFamily uint16

const (
	FamilyIPv4        AddressFamily = 1
	FamilyIPv6        AddressFamily = 2
	FamilyNSAP        AddressFamily = 3
	FamilyHDLC        AddressFamily = 4
	FamilyBBN1822     AddressFamily = 5
	FamilyIEEE802     AddressFamily = 6
	FamilyE163        AddressFamily = 7
	FamilyE164        AddressFamily = 8
	FamilyF69         AddressFamily = 9
	FamilyFrameRelay  AddressFamily = 10
	FamilyIPX         AddressFamily = 11
	FamilyAppleTalk   AddressFamily = 12
	FamilyDecnetIV    AddressFamily = 13
	FamilyBanyanVines AddressFamily = 14
	FamilyE164NSAP    AddressFamily = 15
	FamilyDNS         AddressFamily = 16
)

var familyNames = map[AddressFamily]string{
	FamilyIPv4:        "IPv4",
	FamilyIPv6:        "IPv6",
	FamilyNSAP:        "NSAP",
	FamilyHDLC:        "HDLC",
	FamilyBBN1822:     "BBN1822",
	FamilyIEEE802:     "IEEE802",
	FamilyE163:        "E.163",
	FamilyE164:        "E.164",
	FamilyF69:         "F.69",
	FamilyFrameRelay:  "FrameRelay",
	FamilyIPX:         "IPX",
	FamilyAppleTalk:   "AppleTalk",
	FamilyDecnetIV:    "DecnetIV",
	FamilyBanyanVines: "BanyanVines",
	FamilyE164NSAP:    "E.164-NSAP",
	FamilyDNS:         "DNS",
}

func (f AddressFamily) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return fmt.Sprintf("AddressFamily(%d)", uint16(f))
}

// Address is a 2-byte address family followed by the raw address.
type Address struct {
	Family AddressFamily
	Value  []byte
}

// NewAddress parses text according to family. IPv4 and IPv6 text must be a
// literal address of that family; any other family stores text verbatim.
func NewAddress(family AddressFamily, text string) (Address, error) {
	switch family {
	case FamilyIPv4:
		ip, err := netip.ParseAddr(text)
		if err != nil || !ip.Is4() {
			return Address{}, fmt.Errorf("address: incorrect IPv4 %q", text)
		}
		b := ip.As4()
		return Address{Family: family, Value: b[:]}, nil
	case FamilyIPv6:
		ip, err := netip.ParseAddr(text)
		if err != nil || !ip.Is6() || ip.Zone() != "" {
			return Address{}, fmt.Errorf("address: incorrect IPv6 %q", text)
		}
		b := ip.As16()
		return Address{Family: family, Value: b[:]}, nil
	}
	return Address{Family: family, Value: []byte(text)}, nil
}

// AddressFromIP returns an IPv4 or IPv6 address for ip.
func AddressFromIP(ip netip.Addr) Address {
	if ip.Is4() {
		b := ip.As4()
		return Address{Family: FamilyIPv4, Value: b[:]}
	}
	b := ip.As16()
	return Address{Family: FamilyIPv6, Value: b[:]}
}

// DecodeAddress reads the family tag and keeps the rest as the address.
func DecodeAddress(b []byte) (Type, error) {
	if len(b) < 2 {
		return nil, ErrInvalidSize{Type: AddressType, Want: 2, Have: len(b)}
	}
	v := make([]byte, len(b)-2)
	copy(v, b[2:])
	return Address{Family: AddressFamily(binary.BigEndian.Uint16(b)), Value: v}, nil
}

func (a Address) IsIPv4() bool {
	return a.Family == FamilyIPv4 && len(a.Value) == 4
}

func (a Address) IsIPv6() bool {
	return a.Family == FamilyIPv6 && len(a.Value) == 16
}

// IP returns the address as netip.Addr. ok is false for non-IP families and
// for IP families whose length does not match.
func (a Address) IP() (ip netip.Addr, ok bool) {
	switch {
	case a.IsIPv4():
		return netip.AddrFrom4([4]byte(a.Value)), true
	case a.IsIPv6():
		return netip.AddrFrom16([16]byte(a.Value)), true
	}
	return netip.Addr{}, false
}

// Validate renders IPv4 and IPv6 addresses as text. It returns false for
// other families and when the length does not match the family.
func (a Address) Validate() (string, bool) {
	ip, ok := a.IP()
	if !ok {
		return "", false
	}
	return ip.String(), true
}

func (a Address) Serialize() []byte {
	b := make([]byte, a.Len())
	binary.BigEndian.PutUint16(b, uint16(a.Family))
	copy(b[2:], a.Value)
	return b
}

func (a Address) Len() int {
	return 2 + len(a.Value)
}

func (a Address) Padding() int {
	return pad4(a.Len()) - a.Len()
}

func (a Address) Type() TypeID {
	return AddressType
}

func (a Address) String() string {
	if s, ok := a.Validate(); ok {
		return fmt.Sprintf("Address{%s}", s)
	}
	return fmt.Sprintf("Address{%s:%#x}", a.Family, a.Value)
}
