package models_base

import "testing"

func TestDiameterURIValidate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want URI
	}{
		{"aaa://host.example.com;transport=tcp", true, URI{Scheme: "aaa", FQDN: "host.example.com", Transport: "tcp"}},
		{"aaa://host.example.com:6666;transport=tcp", true, URI{Scheme: "aaa", FQDN: "host.example.com", Port: 6666, Transport: "tcp"}},
		{"aaa://host.example.com;protocol=diameter", true, URI{Scheme: "aaa", FQDN: "host.example.com", Protocol: "diameter"}},
		{"aaa://host.example.com:6666;protocol=diameter", true, URI{Scheme: "aaa", FQDN: "host.example.com", Port: 6666, Protocol: "diameter"}},
		{"aaa://host.example.com:6666;transport=tcp;protocol=radius", true, URI{Scheme: "aaa", FQDN: "host.example.com", Port: 6666, Transport: "tcp", Protocol: "radius"}},
		{"aaa://host.example.com:1813;transport=udp;protocol=tacacs+", true, URI{Scheme: "aaa", FQDN: "host.example.com", Port: 1813, Transport: "udp", Protocol: "tacacs+"}},
		{"aaa://server.com", true, URI{Scheme: "aaa", FQDN: "server.com"}},
		{"aaa://server.com:1234", true, URI{Scheme: "aaa", FQDN: "server.com", Port: 1234}},
		{"aaas://server.com:1234;transport=tcp", true, URI{Scheme: "aaas", FQDN: "server.com", Port: 1234, Transport: "tcp"}},
		{"AAA://server.com;transport=SCTP", true, URI{Scheme: "aaa", FQDN: "server.com", Transport: "sctp"}},
		{"http://server.com:1234;transport=tcp", false, URI{}},
		{"https://server.com:1234;transport=udp", false, URI{}},
		{"https://127.0.0.1:1234;transport=udp", false, URI{}},
		{"aaa://127.0.0.1:1234", false, URI{}},
		{"aaa://host.example.com:1813;;transport=tcp;protocol=diameter", false, URI{}},
		{"aaa://host.example.com:1813;transport=tcp;protocol=diameter;", false, URI{}},
		{"aaa://host.example.com:70000", false, URI{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, ok := DiameterURI(tt.in).Validate()
			if ok != tt.ok {
				t.Fatalf("Validate(%q): want %v, have %v", tt.in, tt.ok, ok)
			}
			if u != tt.want {
				t.Errorf("Unexpected fields. Want %+v, have %+v", tt.want, u)
			}
		})
	}
}

func TestURIEffectivePort(t *testing.T) {
	tests := []struct {
		in   string
		port int
	}{
		{"aaa://server.com", DefaultPort},
		{"aaas://server.com", DefaultSecurePort},
		{"aaas://server.com:1234", 1234},
	}
	for _, tt := range tests {
		u, ok := DiameterURI(tt.in).Validate()
		if !ok {
			t.Fatalf("%s did not validate", tt.in)
		}
		if p := u.EffectivePort(); p != tt.port {
			t.Errorf("%s: want port %d, have %d", tt.in, tt.port, p)
		}
	}
}
