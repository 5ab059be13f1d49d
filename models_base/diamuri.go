package models_base

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Default ports for the aaa and aaas schemes.
const (
	DefaultPort       = 3868
	DefaultSecurePort = 5658
)

// DiameterURI data type, e.g. "aaa://host.example.com:3868;transport=tcp".
type DiameterURI OctetString

// URI holds the parts of a validated DiameterURI. Port is 0 and Transport
// or Protocol are empty when the URI leaves them out.
type URI struct {
	Scheme    string
	FQDN      string
	Port      int
	Transport string
	Protocol  string
}

// EffectivePort returns the explicit port or the scheme default.
func (u URI) EffectivePort() int {
	if u.Port != 0 {
		return u.Port
	}
	if u.Scheme == "aaas" {
		return DefaultSecurePort
	}
	return DefaultPort
}

// Secure reports whether the URI uses the aaas scheme.
func (u URI) Secure() bool {
	return u.Scheme == "aaas"
}

var uriPattern = regexp.MustCompile(`(?i)^(aaa|aaas)://([a-zA-Z0-9._~%!$&'()*+,=-]+)(?::([0-9]+))?(?:;transport=(tcp|sctp|udp))?(?:;protocol=(diameter|radius|tacacs\+))?$`)

func DecodeDiameterURI(b []byte) (Type, error) {
	return DiameterURI(b), nil
}

// Validate parses the URI and checks that its host is an FQDN. Scheme,
// transport and protocol are returned in lower case.
func (s DiameterURI) Validate() (URI, bool) {
	m := uriPattern.FindStringSubmatch(string(s))
	if m == nil || !IsFQDN(m[2]) {
		return URI{}, false
	}
	u := URI{
		Scheme:    strings.ToLower(m[1]),
		FQDN:      m[2],
		Transport: strings.ToLower(m[4]),
		Protocol:  strings.ToLower(m[5]),
	}
	if m[3] != "" {
		port, err := strconv.Atoi(m[3])
		if err != nil || port < 1 || port > 65535 {
			return URI{}, false
		}
		u.Port = port
	}
	return u, true
}

func (s DiameterURI) Serialize() []byte {
	return []byte(s)
}

func (s DiameterURI) Len() int {
	return len(s)
}

func (s DiameterURI) Padding() int {
	return OctetString(s).Padding()
}

func (s DiameterURI) Type() TypeID {
	return DiameterURIType
}

func (s DiameterURI) String() string {
	return fmt.Sprintf("DiameterURI{%s},Padding:%d", string(s), s.Padding())
}
