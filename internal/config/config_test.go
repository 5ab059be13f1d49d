package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Capture.DstPort != 3868 || cfg.Metrics.Namespace != "diameter" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
identity:
  origin_host: hss.example.net
  origin_realm: example.net
  vendor_id: 10415
  host_ip: ["10.0.0.1", "2001:db8::5"]
capture:
  output: out.pcap
  src_ip: 10.0.0.1
  dst_ip: 10.0.0.2
metrics:
  enabled: true
`)
	t.Setenv("DIAMCODEC_IDENTITY__PRODUCT_NAME", "hss-sim")
	t.Setenv("DIAMCODEC_CAPTURE__DST_PORT", "3869")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Identity.ProductName != "hss-sim" || cfg.Capture.DstPort != 3869 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	id, err := cfg.Identity.Identity()
	if err != nil {
		t.Fatal(err)
	}
	if len(id.HostIPAddresses) != 2 || !id.HostIPAddresses[1].Is6() {
		t.Errorf("host addresses: %v", id.HostIPAddresses)
	}
	f, err := cfg.Capture.Flow()
	if err != nil {
		t.Fatal(err)
	}
	if f.DstIP.String() != "10.0.0.2" || f.DstPort != 3869 {
		t.Errorf("Unexpected flow %s", f)
	}
}

func TestLoadEnvHostIPList(t *testing.T) {
	t.Setenv("DIAMCODEC_IDENTITY__HOST_IP", "10.1.1.1,10.1.1.2")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Identity.HostIP) != 2 {
		t.Fatalf("want 2 addresses, have %v", cfg.Identity.HostIP)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"origin host", func(c *Config) { c.Identity.OriginHost = "localhost" }, "Origin-Host"},
		{"host ip", func(c *Config) { c.Identity.HostIP = []string{"not-an-ip"} }, "identity.host_ip"},
		{"family mismatch", func(c *Config) {
			c.Capture.Output = "x.pcap"
			c.Capture.DstIP = "::1"
		}, "same address family"},
		{"namespace", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Namespace = ""
		}, "metrics.namespace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("want error containing %q, have %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
