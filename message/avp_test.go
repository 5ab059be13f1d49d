package message

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hsdfat8/diam-codec/flags"
	"github.com/hsdfat8/diam-codec/models_base"
	"github.com/hsdfat8/diam-codec/pkg/netpack"
)

func TestAVPEncodeVendorSpecific(t *testing.T) {
	a := NewVendorAVP(1, 1, AVPFlags{}, models_base.OctetString([]byte{0, 0, 0, 1}))
	if a.Length() != 16 || a.Padding() != 0 || a.Size() != 16 {
		t.Fatalf("Unexpected sizes: length=%d padding=%d size=%d", a.Length(), a.Padding(), a.Size())
	}
	data, err := a.Marshal()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := mustHex(t, "00000001 80 000010 00000001 00000001")
	if !bytes.Equal(data, want) {
		t.Fatalf("want %x, have %x", want, data)
	}
}

func TestAVPDecode(t *testing.T) {
	data := mustHex(t, "00000001 80 000010 00000001 00000001")
	a, err := DecodeAVP(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Code != 1 || !a.IsVendorSpecific() || a.IsMandatory() {
		t.Fatalf("Unexpected AVP %s", a)
	}
	if v, ok := a.Vendor(); !ok || v != 1 {
		t.Fatalf("Unexpected vendor %d %v", v, ok)
	}
	if a.Length() != 16 || a.Size() != 16 {
		t.Errorf("length=%d size=%d", a.Length(), a.Size())
	}
	if a.Value.Kind() != models_base.OctetStringType {
		t.Errorf("decoded value should be OctetString, have %s", a.Value.Kind())
	}
}

func TestAVPDecodePadding(t *testing.T) {
	data := mustHex(t, "00000001 80 00000f 00000001 000001 00")
	r := netpack.NewReader(data)
	a, err := ReadAVP(r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Length() != 15 || a.Size() != 16 || a.Padding() != 1 {
		t.Fatalf("length=%d size=%d padding=%d", a.Length(), a.Size(), a.Padding())
	}
	raw, _ := a.Value.Bytes()
	if !bytes.Equal(raw, []byte{0, 0, 1}) {
		t.Errorf("Unexpected data %x", raw)
	}
	if r.Len() != 0 {
		t.Errorf("padding not consumed, %d bytes left", r.Len())
	}
}

func TestAVPDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(error) bool
	}{
		{"length below 8", "00000001 00 000007", func(err error) bool {
			var e ErrInvalidAvpLength
			return errors.As(err, &e) && e.Length == 7
		}},
		{"vendor without room", "00000001 80 00000a 0000", func(err error) bool {
			var e ErrInvalidAvpLength
			return errors.As(err, &e)
		}},
		{"short data", "00000001 00 000010 0000", func(err error) bool {
			return errors.Is(err, netpack.ErrEndOfBuffer)
		}},
		{"missing padding", "00000001 00 000009 01", func(err error) bool {
			return errors.Is(err, netpack.ErrEndOfBuffer)
		}},
		{"short header", "000000", func(err error) bool {
			return errors.Is(err, netpack.ErrEndOfBuffer)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAVP(mustHex(t, tt.data))
			if !tt.check(err) {
				t.Fatalf("Unexpected error %v", err)
			}
		})
	}
}

func TestAVPEncodeMissingVendorID(t *testing.T) {
	a := NewAVP(1, flags.New(VendorSpecific), models_base.Unsigned32(1))
	if a.Length() != 16 {
		t.Fatalf("length counts vendor field: want 16, have %d", a.Length())
	}
	_, err := a.Marshal()
	var e ErrInvalidAvpVendorId
	if !errors.As(err, &e) || e.Code != 1 {
		t.Fatalf("want ErrInvalidAvpVendorId, have %v", err)
	}
}

func TestAVPEncodeTooLong(t *testing.T) {
	a := NewAVP(1, AVPFlags{}, models_base.OctetString(make([]byte, MaxLength)))
	_, err := a.Marshal()
	var e ErrInvalidAvpLength
	if !errors.As(err, &e) {
		t.Fatalf("want ErrInvalidAvpLength, have %v", err)
	}
}

func TestAVPEncodeOverflow(t *testing.T) {
	a := NewAVP(1, AVPFlags{}, models_base.UTF8String("abc"))
	err := a.MarshalTo(netpack.NewWriter(make([]byte, a.Size()-1)))
	if !errors.Is(err, netpack.ErrBufferOverflow) {
		t.Fatalf("want ErrBufferOverflow, have %v", err)
	}
}

func TestAVPPaddingLaw(t *testing.T) {
	for n := 0; n < 16; n++ {
		for _, vendor := range []bool{false, true} {
			a := NewAVP(1, AVPFlags{}, models_base.OctetString(make([]byte, n)))
			if vendor {
				a.SetVendorID(10415)
			}
			if a.Size()%4 != 0 {
				t.Errorf("n=%d vendor=%v: size %d not aligned", n, vendor, a.Size())
			}
			if p := a.Size() - a.Length(); p < 0 || p > 3 {
				t.Errorf("n=%d vendor=%v: padding %d", n, vendor, p)
			}
			data, err := a.Marshal()
			if err != nil {
				t.Fatal(err)
			}
			if len(data) != a.Size() {
				t.Errorf("n=%d: encoded %d bytes, size %d", n, len(data), a.Size())
			}
			if !bytes.Equal(data[a.Length():], make([]byte, a.Padding())) {
				t.Errorf("n=%d: padding not zero: %x", n, data[a.Length():])
			}
		}
	}
}

func TestAVPEmptyValue(t *testing.T) {
	a := AVP{Code: 7}
	data, err := a.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, mustHex(t, "00000007 00 000008")) {
		t.Fatalf("Unexpected bytes %x", data)
	}
}

// Fixtures captured from real traffic.
func TestAVPDecodeTyped(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind models_base.TypeID
		want models_base.Type
	}{
		{"Unsigned32", "000005d2c0000010000028af0000000b", models_base.Unsigned32Type, models_base.Unsigned32(11)},
		{"Float32", "000005d2c0000010000028af3fc00000", models_base.Float32Type, models_base.Float32(1.5)},
		{"Float64", "000005d2c0000014000028af3ff8000000000000", models_base.Float64Type, models_base.Float64(1.5)},
		{"Time", "00000342c0000010000028afdd006763", models_base.TimeType, models_base.NewTimeEra(0xdd006763, 0)},
		{"IPFilterRule",
			"0000010F400000377065726D697420696E2069702066726F6D203139322E3136382E312E302F323420746F2031302E302E302E312F333200",
			models_base.IPFilterRuleType, models_base.IPFilterRule("permit in ip from 192.168.1.0/24 to 10.0.0.1/32")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := mustHex(t, tt.data)
			a, err := DecodeAVP(data)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if a.Size() != len(data) {
				t.Fatalf("size: want %d, have %d", len(data), a.Size())
			}
			v, err := a.Value.As(tt.kind)
			if err != nil {
				t.Fatalf("cast: %v", err)
			}
			if v.Data() != tt.want {
				t.Errorf("want %s, have %s", tt.want, v.Data())
			}
			a.Value = v
			out, err := a.Marshal()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(out, data) {
				t.Errorf("re-encode: want %x, have %x", data, out)
			}
		})
	}
}

func TestAVPDecodeAddress(t *testing.T) {
	a, err := DecodeAVP(mustHex(t, "000001014000000E0001C00002010000"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Length() != 14 || a.Size() != 16 {
		t.Fatalf("length=%d size=%d", a.Length(), a.Size())
	}
	addr, err := ValueAs[models_base.Address](a.Value)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := addr.Validate(); !ok || s != "192.0.2.1" {
		t.Fatalf("want 192.0.2.1, have %q %v", s, ok)
	}
}

func TestAVPDecodeOctetString(t *testing.T) {
	data := mustHex(t, "000009d5c0000013000028af04f17001cc110500")
	a, err := DecodeAVP(data)
	if err != nil {
		t.Fatal(err)
	}
	if a.Code != 2517 || a.Length() != 19 || a.Size() != len(data) {
		t.Fatalf("Unexpected AVP %s", a)
	}
	raw, err := ValueAs[models_base.OctetString](a.Value)
	if err != nil {
		t.Fatal(err)
	}
	if raw != models_base.OctetString(mustHex(t, "04f17001cc1105")) {
		t.Errorf("Unexpected data %x", string(raw))
	}
}

func TestAVPEncodeTyped(t *testing.T) {
	ts, err := models_base.TimeFromCalendar(mustTime(t, "1999-12-31 00:00:00"))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		avp  AVP
		want string
	}{
		{"UTF8String", NewAVP(1000, flags.New(Mandatory), models_base.UTF8String("ExampleProduct")),
			"000003E8400000164578616D706C6550726F647563740000"},
		{"Time", NewAVP(1000, flags.New(Mandatory), ts), "000003e8 40 00000c bc167080"},
		{"Address", NewAVP(257, flags.New(Mandatory), mustAddress(t, "192.0.2.1")),
			"00000101 40 00000e 0001c0000201 0000"},
		{"Integer64", NewAVP(1000, flags.New(Mandatory), models_base.Integer64(-4294967298)),
			"000003e8 40 000010 fffffffefffffffe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.avp.Marshal()
			if err != nil {
				t.Fatal(err)
			}
			if want := mustHex(t, tt.want); !bytes.Equal(data, want) {
				t.Errorf("want %x, have %x", want, data)
			}
		})
	}
}

func TestAVPEncodeGrouped(t *testing.T) {
	a := NewGroupedAVP(1000, flags.New(Mandatory),
		NewAVP(264, flags.New(Mandatory), models_base.DiameterIdentity("example.com")),
		NewAVP(263, flags.New(Mandatory), models_base.UTF8String("grump.example.com:33041;23432;893;0AF3B81")),
	)
	if a.Length() != 80 || a.Size() != 80 {
		t.Fatalf("length=%d size=%d", a.Length(), a.Size())
	}
	data, err := a.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	want := mustHex(t, "000003E8 40 000050"+
		"00000108 40 000013 6578616D706C652E636F6D 00"+
		"00000107 40 000031 6772756d702e6578616d706c652e636f6d3a33333034313b32333433323b3839333b30414633423831 000000")
	if !bytes.Equal(data, want) {
		t.Fatalf("want %x\nhave %x", want, data)
	}

	decoded, err := DecodeAVP(data)
	if err != nil {
		t.Fatal(err)
	}
	children, err := AsGrouped(decoded.Value)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 || children[0].Length() != 19 || children[1].Length() != 49 {
		t.Fatalf("Unexpected children %v", children)
	}
	host, err := ValueAs[models_base.DiameterIdentity](children[0].Value)
	if err != nil || host != "example.com" {
		t.Fatalf("child 0: %v %v", host, err)
	}
	sum := 0
	for _, c := range children {
		sum += c.Size()
	}
	if decoded.Value.Len() != sum {
		t.Errorf("grouped length %d, children sum %d", decoded.Value.Len(), sum)
	}
}

func TestAVPGroupedNested(t *testing.T) {
	inner := NewGroupedAVP(2, AVPFlags{}, NewAVP(3, AVPFlags{}, models_base.Unsigned32(7)))
	outer := NewGroupedAVP(1, AVPFlags{}, inner, NewVendorAVP(4, 10415, AVPFlags{}, models_base.UTF8String("x")))
	data, err := outer.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != outer.Size() || outer.Size() != 8+inner.Size()+16 {
		t.Fatalf("Unexpected size %d", len(data))
	}
	a, err := DecodeAVP(data)
	if err != nil {
		t.Fatal(err)
	}
	level1, err := AsGrouped(a.Value)
	if err != nil {
		t.Fatal(err)
	}
	level2, err := AsGrouped(level1[0].Value)
	if err != nil {
		t.Fatal(err)
	}
	n, err := ValueAs[models_base.Unsigned32](level2[0].Value)
	if err != nil || n != 7 {
		t.Fatalf("nested value: %v %v", n, err)
	}
	if v, _ := level1[1].Vendor(); v != 10415 {
		t.Errorf("vendor: have %d", v)
	}
}

func TestAVPGroupedMissingVendor(t *testing.T) {
	child := NewAVP(5, flags.New(VendorSpecific), models_base.Unsigned32(1))
	_, err := NewGroupedAVP(1, AVPFlags{}, child).Marshal()
	var e ErrInvalidAvpVendorId
	if !errors.As(err, &e) || e.Code != 5 {
		t.Fatalf("want ErrInvalidAvpVendorId for child, have %v", err)
	}
}

func TestNewGroupedOwnsChildren(t *testing.T) {
	children := []AVP{NewVendorAVP(1, 10, AVPFlags{}, models_base.Unsigned32(1))}
	g := NewGrouped(children...)
	*children[0].VendorID = 99
	children[0].Code = 42
	if got := g.Group()[0]; got.Code != 1 || *got.VendorID != 10 {
		t.Fatalf("grouped value shares state with caller: %s", got)
	}
}
