package config

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hsdfat8/diam-codec/commands/base"
	"github.com/hsdfat8/diam-codec/models_base"
	"github.com/hsdfat8/diam-codec/pkg/pcap"
)

// EnvPrefix prefixes environment overrides: DIAMCODEC_LOGGING__LEVEL
// sets logging.level.
const EnvPrefix = "DIAMCODEC_"

// Config holds the CLI configuration
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Identity IdentityConfig `koanf:"identity"`
	Capture  CaptureConfig  `koanf:"capture"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error"
}

// IdentityConfig describes the local peer placed in generated messages
type IdentityConfig struct {
	OriginHost  string   `koanf:"origin_host"`
	OriginRealm string   `koanf:"origin_realm"`
	VendorID    uint32   `koanf:"vendor_id"`
	ProductName string   `koanf:"product_name"`
	HostIP      []string `koanf:"host_ip"`
}

// CaptureConfig holds the pcap output settings
type CaptureConfig struct {
	Output  string `koanf:"output"`
	SrcIP   string `koanf:"src_ip"`
	DstIP   string `koanf:"dst_ip"`
	SrcPort uint16 `koanf:"src_port"`
	DstPort uint16 `koanf:"dst_port"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Identity: IdentityConfig{
			OriginHost:  "diamcodec.example.com",
			OriginRealm: "example.com",
			VendorID:    base.VendorTGPP,
			ProductName: "diam-codec",
			HostIP:      []string{"127.0.0.1"},
		},
		Capture: CaptureConfig{
			SrcIP:   "192.168.1.100",
			DstIP:   "192.168.1.1",
			SrcPort: 38680,
			DstPort: pcap.DiameterPort,
		},
		Metrics: MetricsConfig{Namespace: "diameter"},
	}
}

// Load reads the YAML file at path, if any, then overlays environment
// variables, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Comma-separated env values arrive as a single element.
	if len(cfg.Identity.HostIP) == 1 && strings.Contains(cfg.Identity.HostIP[0], ",") {
		cfg.Identity.HostIP = strings.Split(cfg.Identity.HostIP[0], ",")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if _, err := c.Identity.Identity(); err != nil {
		return err
	}
	if c.Capture.Output != "" {
		if _, err := c.Capture.Flow(); err != nil {
			return err
		}
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}
	return nil
}

// Identity converts the section into a base.Identity.
func (c IdentityConfig) Identity() (base.Identity, error) {
	id := base.Identity{
		OriginHost:  models_base.DiameterIdentity(c.OriginHost),
		OriginRealm: models_base.DiameterIdentity(c.OriginRealm),
		VendorID:    c.VendorID,
		ProductName: c.ProductName,
	}
	for _, s := range c.HostIP {
		ip, err := netip.ParseAddr(strings.TrimSpace(s))
		if err != nil {
			return base.Identity{}, fmt.Errorf("config: identity.host_ip: %w", err)
		}
		id.HostIPAddresses = append(id.HostIPAddresses, ip)
	}
	if err := id.Validate(); err != nil {
		return base.Identity{}, fmt.Errorf("config: identity: %w", err)
	}
	return id, nil
}

// Flow converts the section into the flow used for written packets.
func (c CaptureConfig) Flow() (pcap.Flow, error) {
	f := pcap.DefaultFlow()
	var err error
	if f.SrcIP, err = netip.ParseAddr(c.SrcIP); err != nil {
		return f, fmt.Errorf("config: capture.src_ip: %w", err)
	}
	if f.DstIP, err = netip.ParseAddr(c.DstIP); err != nil {
		return f, fmt.Errorf("config: capture.dst_ip: %w", err)
	}
	if f.SrcIP.Is4() != f.DstIP.Is4() {
		return f, fmt.Errorf("config: capture.src_ip and capture.dst_ip must be the same address family")
	}
	if c.SrcPort == 0 || c.DstPort == 0 {
		return f, fmt.Errorf("config: capture ports must be > 0")
	}
	f.SrcPort, f.DstPort = c.SrcPort, c.DstPort
	return f, nil
}
