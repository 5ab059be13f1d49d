package models_base

import "testing"

func TestIPFilterRuleValidate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"deny out udp from any to any 5060", true},
		{"permit in tcp from any to any 443", true},
		{"deny in icmp from 192.168.2.5/32 to any", true},
		{"permit in ip from any to any", true},
		{"deny out tcp from 10.0.0.0/8 to 192.168.1.1/32", true},
		{"permit in udp from 192.168.1.0/24 to any 5060", true},
		{"deny in icmp from any to 10.0.0.1/32", true},
		{"permit in tcp from any to any 80-82", true},
		{"deny out udp from 10.0.0.5/32 to any 123", true},
		{"permit in ip from 2001:db8::/32 to any", true},
		{"deny out tcp from ::1/128 to any 22", true},
		{"permit in ip from 192.168.1.100/32 to 192.168.1.200/32", true},
		{"deny in ip from any to 224.0.0.0/4", true},
		{"deny out ip from ::/0 to any", true},
		{"permit in ip from 0.0.0.0/0 to 255.255.255.255/32", true},
		{"PERMIT IN TCP from any to any", true},
		{"allow in ip from any to any", false},
		{"permit in ip from any to any 100000", false},
		{"permit in ip from any to any 99999", false},
		{"permit sideways ip from any to any", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if _, ok := IPFilterRule(tt.in).Validate(); ok != tt.want {
				t.Errorf("Validate(%q): want %v, have %v", tt.in, tt.want, ok)
			}
		})
	}
}

func TestIPFilterRuleFields(t *testing.T) {
	r, ok := IPFilterRule("Permit out udp from 10.0.0.5/32 1000-2000 to any 123").Validate()
	if !ok {
		t.Fatal("rule did not validate")
	}
	want := FilterRule{
		Action:    "permit",
		Direction: "out",
		Protocol:  "udp",
		Src:       "10.0.0.5/32",
		SrcPorts:  "1000-2000",
		Dst:       "any",
		DstPorts:  "123",
	}
	if r != want {
		t.Fatalf("Unexpected fields. Want %+v, have %+v", want, r)
	}
}
