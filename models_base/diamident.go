package models_base

import (
	"fmt"
	"regexp"
)

// DiameterIdentity data type. Its content is an FQDN.
type DiameterIdentity OctetString

// Labels are 1-63 characters of letters, digits and hyphens that neither
// start nor end with a hyphen. The top-level label is 2-63 letters.
var fqdnPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`)

// IsFQDN reports whether s is a fully qualified domain name of 4 to 253
// characters.
func IsFQDN(s string) bool {
	if len(s) < 4 || len(s) > 253 {
		return false
	}
	return fqdnPattern.MatchString(s)
}

// DecodeDiameterIdentity decodes a DiameterIdentity from byte array.
func DecodeDiameterIdentity(b []byte) (Type, error) {
	return DiameterIdentity(b), nil
}

// Validate reports whether the identity is a well-formed FQDN.
func (s DiameterIdentity) Validate() bool {
	return IsFQDN(string(s))
}

// Serialize implements the Type interface.
func (s DiameterIdentity) Serialize() []byte {
	return []byte(s)
}

// Len implements the Type interface.
func (s DiameterIdentity) Len() int {
	return len(s)
}

// Padding implements the Type interface.
func (s DiameterIdentity) Padding() int {
	return OctetString(s).Padding()
}

// Type implements the Type interface.
func (s DiameterIdentity) Type() TypeID {
	return DiameterIdentityType
}

// String implements the Type interface.
func (s DiameterIdentity) String() string {
	return fmt.Sprintf("DiameterIdentity{%s},Padding:%d", string(s), s.Padding())
}
