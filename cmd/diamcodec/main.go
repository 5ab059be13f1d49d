package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hsdfat8/diam-codec/commands/base"
	"github.com/hsdfat8/diam-codec/internal/config"
	"github.com/hsdfat8/diam-codec/message"
	"github.com/hsdfat8/diam-codec/models_base"
	"github.com/hsdfat8/diam-codec/pkg/logger"
	"github.com/hsdfat8/diam-codec/pkg/metrics"
	"github.com/hsdfat8/diam-codec/pkg/pcap"
)

var log = logger.For("cli")

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
	sample := flag.String("sample", "", "Build a sample request and its answer: cer, dwr or dpr")
	decode := flag.String("decode", "", "Hex-encoded message to decode")
	avpCode := flag.Uint("code", 0, "With -decode: AVP code to view as -as")
	as := flag.String("as", "", "With -decode: data type for -code, e.g. Unsigned32, Address, Time")
	pcapIn := flag.String("pcap-in", "", "Capture to read Diameter messages from (.pcap or .pcap.zst)")
	pcapOut := flag.String("pcap-out", "", "Capture to write the sample exchange to; overrides capture.output")
	metricsOut := flag.String("metrics-out", "", "Write Prometheus metrics in text format to this file on exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("Failed to load configuration", "error", err)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger.SetLevel(cfg.Logging.Level)
	if *pcapOut != "" {
		cfg.Capture.Output = *pcapOut
	}

	var (
		rec *metrics.Recorder
		reg *prometheus.Registry
	)
	if cfg.Metrics.Enabled || *metricsOut != "" {
		rec = metrics.NewRecorder(cfg.Metrics.Namespace)
		reg = prometheus.NewRegistry()
		if err := rec.Register(reg); err != nil {
			fatal("Failed to register metrics", "error", err)
		}
	}

	ran := false
	if *sample != "" {
		ran = true
		if err := runSample(cfg, *sample, rec); err != nil {
			fatal("Sample failed", "sample", *sample, "error", err)
		}
	}
	if *decode != "" {
		ran = true
		if err := runDecode(os.Stdout, *decode, uint32(*avpCode), *as, rec); err != nil {
			fatal("Decode failed", "error", err)
		}
	}
	if *pcapIn != "" {
		ran = true
		if err := runPcapIn(os.Stdout, *pcapIn, rec); err != nil {
			fatal("Reading capture failed", "file", *pcapIn, "error", err)
		}
	}
	if !ran {
		flag.Usage()
		os.Exit(2)
	}

	if rec != nil {
		fmt.Println(rec.Summary())
	}
	if *metricsOut != "" {
		if err := prometheus.WriteToTextfile(*metricsOut, reg); err != nil {
			fatal("Failed to write metrics", "file", *metricsOut, "error", err)
		}
		log.Infow("Metrics written", "file", *metricsOut)
	}
}

func fatal(msg string, kv ...any) {
	log.Errorw(msg, kv...)
	os.Exit(1)
}

func buildSample(id base.Identity, name string) (req, ans *message.Message, err error) {
	switch strings.ToLower(name) {
	case "cer":
		apps := base.Applications{
			Auth:             []uint32{base.AppTGPPS6a},
			SupportedVendors: []uint32{base.VendorTGPP},
		}
		req = base.NewCapabilitiesExchangeRequest(id, apps)
		ans = base.NewCapabilitiesExchangeAnswer(req, base.ResultCodeSuccess, id, apps)
	case "dwr":
		req = base.NewDeviceWatchdogRequest(id)
		ans = base.NewDeviceWatchdogAnswer(req, base.ResultCodeSuccess, id)
	case "dpr":
		req = base.NewDisconnectPeerRequest(id, base.DisconnectRebooting)
		ans = base.NewDisconnectPeerAnswer(req, base.ResultCodeSuccess, id)
	default:
		return nil, nil, fmt.Errorf("unknown sample %q (want cer, dwr or dpr)", name)
	}
	return req, ans, nil
}

func runSample(cfg *config.Config, name string, rec *metrics.Recorder) error {
	id, err := cfg.Identity.Identity()
	if err != nil {
		return err
	}
	req, ans, err := buildSample(id, name)
	if err != nil {
		return err
	}
	for _, m := range []*message.Message{req, ans} {
		data, err := message.Encode(m)
		if err != nil {
			rec.ObserveError(metrics.OpEncode, err)
			return err
		}
		rec.Observe(metrics.OpEncode, m, len(data))
		fmt.Printf("%s (%d bytes)\n%s\n%s\n", base.MessageName(m.Header.CommandCode, m.Header.IsRequest()), len(data), m, HexDump(data))
	}

	if cfg.Capture.Output == "" {
		return nil
	}
	flow, err := cfg.Capture.Flow()
	if err != nil {
		return err
	}
	w, err := pcap.Create(cfg.Capture.Output, nil)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := w.Write(req, flow, now); err != nil {
		w.Close()
		return err
	}
	if err := w.Write(ans, flow.Reverse(), now.Add(time.Millisecond)); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Infow("Capture written", "file", cfg.Capture.Output, "packets", w.Packets())
	return nil
}

func runDecode(out io.Writer, text string, code uint32, as string, rec *metrics.Recorder) error {
	data, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	m, err := message.Decode(data)
	if err != nil {
		rec.ObserveError(metrics.OpDecode, err)
		return err
	}
	rec.Observe(metrics.OpDecode, m, int(m.Header.Length))
	fmt.Fprintf(out, "%s\n", m)

	if as == "" {
		return nil
	}
	kind, ok := models_base.ParseTypeID(as)
	if !ok {
		return fmt.Errorf("unknown data type %q", as)
	}
	avps := m.FindAll(code)
	if len(avps) == 0 {
		return fmt.Errorf("no AVP with code %d", code)
	}
	for _, a := range avps {
		v, err := a.Value.As(kind)
		if err != nil {
			rec.ObserveError(metrics.OpDecode, err)
			return fmt.Errorf("AVP %d: %w", code, err)
		}
		fmt.Fprintf(out, "AVP %d as %s: %s\n", code, kind, v)
	}
	return nil
}

func runPcapIn(out io.Writer, path string, rec *metrics.Recorder) error {
	r, err := pcap.Open(path, rec)
	if err != nil {
		return err
	}
	defer r.Close()
	n := 0
	for {
		p, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		n++
		h := p.Message.Header
		fmt.Fprintf(out, "#%d %s %s %s\n%s\n", n, p.Timestamp.Format(time.RFC3339Nano), p.Flow,
			base.MessageName(h.CommandCode, h.IsRequest()), p.Message)
	}
	log.Infow("Capture read", "file", path, "packets", r.Packets(), "messages", n)
	return nil
}

// HexDump renders data four bytes per row with the row offset.
func HexDump(data []byte) string {
	var sb strings.Builder
	for off := 0; off < len(data); off += 4 {
		end := min(off+4, len(data))
		fmt.Fprintf(&sb, "%04x  % x\n", off, data[off:end])
	}
	return sb.String()
}
