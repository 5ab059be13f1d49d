package main

import (
	"bytes"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hsdfat8/diam-codec/internal/config"
	"github.com/hsdfat8/diam-codec/message"
	"github.com/hsdfat8/diam-codec/pkg/metrics"
)

func TestHexDump(t *testing.T) {
	got := HexDump([]byte{0x01, 0x00, 0x00, 0x14, 0x80, 0x00})
	want := "0000  01 00 00 14\n0004  80 00\n"
	if got != want {
		t.Fatalf("want %q, have %q", want, got)
	}
}

func TestBuildSample(t *testing.T) {
	id, err := config.Default().Identity.Identity()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"cer", "DWR", "dpr"} {
		req, ans, err := buildSample(id, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !req.Header.IsRequest() || ans.Header.IsRequest() || req.Header.HopByHopID != ans.Header.HopByHopID {
			t.Errorf("%s: request %s, answer %s", name, req.Header, ans.Header)
		}
	}
	if _, _, err := buildSample(id, "ulr"); err == nil {
		t.Error("expected an error for an unknown sample")
	}
}

func TestRunDecode(t *testing.T) {
	id, _ := config.Default().Identity.Identity()
	req, _, _ := buildSample(id, "cer")
	data, err := message.Encode(req)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rec := metrics.NewRecorder("cli")
	if err := runDecode(&out, hex.EncodeToString(data), 266, "Unsigned32", rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "AVP 266 as Unsigned32: Unsigned32{10415}") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
	if rec.Decoded.Get(257) != 1 {
		t.Errorf("decoded CER count %d", rec.Decoded.Get(257))
	}

	if err := runDecode(&out, hex.EncodeToString(data), 264, "Unsigned32", nil); err == nil {
		t.Error("expected a cast error for Origin-Host as Unsigned32")
	}
	if err := runDecode(&out, hex.EncodeToString(data), 266, "NoSuchType", nil); err == nil {
		t.Error("expected an error for an unknown type")
	}
	if err := runDecode(&out, "zz", 0, "", nil); err == nil {
		t.Error("expected an error for invalid hex")
	}
}

func TestSampleToPcapAndBack(t *testing.T) {
	cfg := config.Default()
	cfg.Capture.Output = filepath.Join(t.TempDir(), "dwr.pcap")
	if err := runSample(cfg, "dwr", nil); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := runPcapIn(&out, cfg.Capture.Output, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "#1 ") || !strings.Contains(out.String(), "DWR") || !strings.Contains(out.String(), "#2 ") || !strings.Contains(out.String(), "DWA") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}
