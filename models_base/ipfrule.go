package models_base

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// IPFilterRule data type (RFC 6733 section 4.3.1).
type IPFilterRule OctetString

// FilterRule holds the fields of a validated IPFilterRule. Ports are empty
// when the rule does not restrict them.
type FilterRule struct {
	Action    string
	Direction string
	Protocol  string
	Src       string
	SrcPorts  string
	Dst       string
	DstPorts  string
}

const (
	filterAddr  = `(any|(?:\d{1,3}\.){3}\d{1,3}(?:/\d{1,2})?|[a-fA-F0-9:]+(?:/\d{1,3})?)`
	filterPorts = `(?:\s+(\d{1,5}(?:-\d{1,5})?))?`
)

var filterRulePattern = regexp.MustCompile(`(?i)^(permit|deny)\s+(in|out)\s+(ip|tcp|udp|icmp)\s+from\s+` +
	filterAddr + filterPorts + `\s+to\s+` + filterAddr + filterPorts + `$`)

// DecodeIPFilterRule decodes an IPFilterRule data type from byte array.
func DecodeIPFilterRule(b []byte) (Type, error) {
	return IPFilterRule(b), nil
}

// Validate parses the rule. Action, direction and protocol are returned in
// lower case.
func (s IPFilterRule) Validate() (FilterRule, bool) {
	m := filterRulePattern.FindStringSubmatch(string(s))
	if m == nil {
		return FilterRule{}, false
	}
	if !validPorts(m[5]) || !validPorts(m[7]) {
		return FilterRule{}, false
	}
	return FilterRule{
		Action:    strings.ToLower(m[1]),
		Direction: strings.ToLower(m[2]),
		Protocol:  strings.ToLower(m[3]),
		Src:       m[4],
		SrcPorts:  m[5],
		Dst:       m[6],
		DstPorts:  m[7],
	}, true
}

func validPorts(r string) bool {
	if r == "" {
		return true
	}
	for _, p := range strings.SplitN(r, "-", 2) {
		if n, err := strconv.Atoi(p); err != nil || n > 65535 {
			return false
		}
	}
	return true
}

// Serialize implements the Type interface.
func (s IPFilterRule) Serialize() []byte {
	return []byte(s)
}

// Len implements the Type interface.
func (s IPFilterRule) Len() int {
	return len(s)
}

// Padding implements the Type interface.
func (s IPFilterRule) Padding() int {
	return OctetString(s).Padding()
}

// Type implements the Type interface.
func (s IPFilterRule) Type() TypeID {
	return IPFilterRuleType
}

// String implements the Type interface.
func (s IPFilterRule) String() string {
	return fmt.Sprintf("IPFilterRule{%s},Padding:%d", string(s), s.Padding())
}
