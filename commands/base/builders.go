package base

import (
	"fmt"
	"net/netip"

	"github.com/hsdfat8/diam-codec/flags"
	"github.com/hsdfat8/diam-codec/message"
	"github.com/hsdfat8/diam-codec/models_base"
)

var mandatory = flags.New(message.Mandatory)

// Identity describes the local peer in CER/CEA, DWR/DWA and DPR/DPA.
type Identity struct {
	OriginHost       models_base.DiameterIdentity
	OriginRealm      models_base.DiameterIdentity
	HostIPAddresses  []netip.Addr
	VendorID         uint32
	ProductName      string
	FirmwareRevision uint32
	OriginStateID    uint32
}

// Validate checks that the origin host and realm are FQDNs and that a
// capabilities exchange has at least one address to advertise.
func (id Identity) Validate() error {
	if !id.OriginHost.Validate() {
		return fmt.Errorf("invalid Origin-Host %q", string(id.OriginHost))
	}
	if !id.OriginRealm.Validate() {
		return fmt.Errorf("invalid Origin-Realm %q", string(id.OriginRealm))
	}
	if len(id.HostIPAddresses) == 0 {
		return fmt.Errorf("no Host-IP-Address for %s", string(id.OriginHost))
	}
	return nil
}

// VendorApplication is one Vendor-Specific-Application-Id entry.
type VendorApplication struct {
	VendorID uint32
	AuthID   uint32
	AcctID   uint32
}

// Applications lists the applications advertised in a capabilities
// exchange.
type Applications struct {
	Auth             []uint32
	Acct             []uint32
	SupportedVendors []uint32
	VendorSpecific   []VendorApplication
}

func (id Identity) origin() []message.AVP {
	return []message.AVP{
		message.NewAVP(AVPOriginHost, mandatory, id.OriginHost),
		message.NewAVP(AVPOriginRealm, mandatory, id.OriginRealm),
	}
}

func (id Identity) capabilities(apps Applications) []message.AVP {
	avps := id.origin()
	for _, ip := range id.HostIPAddresses {
		avps = append(avps, message.NewAVP(AVPHostIPAddress, mandatory, models_base.AddressFromIP(ip)))
	}
	avps = append(avps,
		message.NewAVP(AVPVendorID, mandatory, models_base.Unsigned32(id.VendorID)),
		message.NewAVP(AVPProductName, message.AVPFlags{}, models_base.UTF8String(id.ProductName)),
	)
	if id.OriginStateID != 0 {
		avps = append(avps, message.NewAVP(AVPOriginStateID, mandatory, models_base.Unsigned32(id.OriginStateID)))
	}
	for _, v := range apps.SupportedVendors {
		avps = append(avps, message.NewAVP(AVPSupportedVendorID, mandatory, models_base.Unsigned32(v)))
	}
	for _, a := range apps.Auth {
		avps = append(avps, message.NewAVP(AVPAuthApplicationID, mandatory, models_base.Unsigned32(a)))
	}
	for _, a := range apps.Acct {
		avps = append(avps, message.NewAVP(AVPAcctApplicationID, mandatory, models_base.Unsigned32(a)))
	}
	for _, v := range apps.VendorSpecific {
		children := []message.AVP{message.NewAVP(AVPVendorID, mandatory, models_base.Unsigned32(v.VendorID))}
		if v.AuthID != 0 {
			children = append(children, message.NewAVP(AVPAuthApplicationID, mandatory, models_base.Unsigned32(v.AuthID)))
		}
		if v.AcctID != 0 {
			children = append(children, message.NewAVP(AVPAcctApplicationID, mandatory, models_base.Unsigned32(v.AcctID)))
		}
		avps = append(avps, message.NewGroupedAVP(AVPVendorSpecificApplicationID, mandatory, children...))
	}
	if id.FirmwareRevision != 0 {
		avps = append(avps, message.NewAVP(AVPFirmwareRevision, message.AVPFlags{}, models_base.Unsigned32(id.FirmwareRevision)))
	}
	return avps
}

func newRequest(code uint32) *message.Message {
	m := message.New(code, AppCommon, flags.New(message.Request))
	m.Header.HopByHopID = defaultIDs.NextHopByHop()
	m.Header.EndToEndID = defaultIDs.NextEndToEnd()
	return m
}

func newAnswer(req *message.Message, rc ResultCode) *message.Message {
	m := message.NewAnswer(req)
	if rc.IsProtocolError() {
		m.Header.Flags.Set(message.Error)
	}
	return m.Add(message.NewAVP(AVPResultCode, mandatory, models_base.Unsigned32(rc)))
}

// NewCapabilitiesExchangeRequest builds a CER.
func NewCapabilitiesExchangeRequest(id Identity, apps Applications) *message.Message {
	return newRequest(CodeCapabilitiesExchange).Add(id.capabilities(apps)...)
}

// NewCapabilitiesExchangeAnswer builds a CEA for req.
func NewCapabilitiesExchangeAnswer(req *message.Message, rc ResultCode, id Identity, apps Applications) *message.Message {
	return newAnswer(req, rc).Add(id.capabilities(apps)...)
}

func NewDeviceWatchdogRequest(id Identity) *message.Message {
	m := newRequest(CodeDeviceWatchdog).Add(id.origin()...)
	if id.OriginStateID != 0 {
		m.Add(message.NewAVP(AVPOriginStateID, mandatory, models_base.Unsigned32(id.OriginStateID)))
	}
	return m
}

func NewDeviceWatchdogAnswer(req *message.Message, rc ResultCode, id Identity) *message.Message {
	return newAnswer(req, rc).Add(id.origin()...)
}

func NewDisconnectPeerRequest(id Identity, cause DisconnectCause) *message.Message {
	return newRequest(CodeDisconnectPeer).
		Add(id.origin()...).
		Add(message.NewAVP(AVPDisconnectCause, mandatory, models_base.Enumerated(cause)))
}

func NewDisconnectPeerAnswer(req *message.Message, rc ResultCode, id Identity) *message.Message {
	return newAnswer(req, rc).Add(id.origin()...)
}

// ResultCodeOf extracts the Result-Code of an answer.
func ResultCodeOf(m *message.Message) (ResultCode, error) {
	a, ok := m.Find(AVPResultCode)
	if !ok {
		return 0, fmt.Errorf("%s has no Result-Code", MessageName(m.Header.CommandCode, m.Header.IsRequest()))
	}
	rc, err := message.ValueAs[models_base.Unsigned32](a.Value)
	if err != nil {
		return 0, err
	}
	return ResultCode(rc), nil
}

// OriginOf returns the Origin-Host and Origin-Realm of m.
func OriginOf(m *message.Message) (host, realm models_base.DiameterIdentity, err error) {
	h, ok := m.Find(AVPOriginHost)
	if !ok {
		return "", "", fmt.Errorf("missing Origin-Host")
	}
	if host, err = message.ValueAs[models_base.DiameterIdentity](h.Value); err != nil {
		return "", "", err
	}
	r, ok := m.Find(AVPOriginRealm)
	if !ok {
		return "", "", fmt.Errorf("missing Origin-Realm")
	}
	if realm, err = message.ValueAs[models_base.DiameterIdentity](r.Value); err != nil {
		return "", "", err
	}
	return host, realm, nil
}
