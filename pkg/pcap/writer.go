package pcap

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"

	"github.com/hsdfat8/diam-codec/message"
	"github.com/hsdfat8/diam-codec/pkg/logger"
	"github.com/hsdfat8/diam-codec/pkg/metrics"
)

var log = logger.For("pcap")

const (
	snapLen    = 65536
	initialSeq = 1000

	// tcpSegmentSize is the largest TCP payload written per packet.
	tcpSegmentSize = 1460

	// maxSCTPData keeps one DATA chunk inside a single IP packet.
	maxSCTPData = 65000
)

// Writer appends Diameter messages to a pcap stream as Ethernet frames.
type Writer struct {
	w       *pcapgo.Writer
	closers []io.Closer
	seq     map[flowKey]uint32
	tsn     map[flowKey]uint32
	rec     *metrics.Recorder
	packets int
}

// NewWriter writes the pcap file header to w and returns a Writer. rec may
// be nil.
func NewWriter(w io.Writer, rec *metrics.Recorder) (*Writer, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("write pcap header: %w", err)
	}
	return &Writer{
		w:   pw,
		seq: make(map[flowKey]uint32),
		tsn: make(map[flowKey]uint32),
		rec: rec,
	}, nil
}

// Create creates or truncates the file at path. A ".zst" suffix compresses
// the capture.
func Create(path string, rec *metrics.Recorder) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	var (
		out     io.Writer = f
		closers           = []io.Closer{f}
	)
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		out = enc
		closers = []io.Closer{enc, f}
	}
	w, err := NewWriter(out, rec)
	if err != nil {
		return nil, multierr.Append(err, closeAll(closers))
	}
	w.closers = closers
	log.Infow("Writing capture", "file", path)
	return w, nil
}

func closeAll(closers []io.Closer) error {
	var err error
	for _, c := range closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

// Close flushes compression and closes the file opened by Create.
func (w *Writer) Close() error {
	err := closeAll(w.closers)
	w.closers = nil
	return err
}

// Packets returns the number of packets written.
func (w *Writer) Packets() int {
	return w.packets
}

// Write encodes m and writes it on flow f.
func (w *Writer) Write(m *message.Message, f Flow, ts time.Time) error {
	data, err := message.Encode(m)
	if err != nil {
		w.rec.ObserveError(metrics.OpEncode, err)
		return err
	}
	if err := w.WriteMessage(data, f, ts); err != nil {
		return err
	}
	w.rec.Observe(metrics.OpEncode, m, len(data))
	return nil
}

// WriteMessage writes an already encoded message on flow f. TCP payloads
// are split into segments; SCTP carries the message in one DATA chunk.
func (w *Writer) WriteMessage(data []byte, f Flow, ts time.Time) error {
	switch f.Transport {
	case TCP:
		for off := 0; off < len(data); off += tcpSegmentSize {
			end := min(off+tcpSegmentSize, len(data))
			if err := w.writeTCP(data[off:end], f, ts); err != nil {
				return err
			}
		}
		return nil
	case SCTP:
		if len(data) > maxSCTPData {
			return fmt.Errorf("message of %d bytes does not fit one SCTP DATA chunk", len(data))
		}
		return w.writeSCTP(data, f, ts)
	}
	return fmt.Errorf("unsupported transport %s", f.Transport)
}

func (w *Writer) network(f Flow, proto layers.IPProtocol) (*layers.Ethernet, gopacket.SerializableLayer, gopacket.NetworkLayer, error) {
	if f.SrcIP.Is4() != f.DstIP.Is4() || !f.SrcIP.IsValid() || !f.DstIP.IsValid() {
		return nil, nil, nil, fmt.Errorf("invalid address pair in flow %s", f)
	}
	eth := &layers.Ethernet{
		SrcMAC:       f.SrcMAC,
		DstMAC:       f.DstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	if f.SrcIP.Is4() {
		ip := &layers.IPv4{
			Version:  4,
			IHL:      5,
			TTL:      64,
			Protocol: proto,
			SrcIP:    f.SrcIP.AsSlice(),
			DstIP:    f.DstIP.AsSlice(),
		}
		return eth, ip, ip, nil
	}
	eth.EthernetType = layers.EthernetTypeIPv6
	ip := &layers.IPv6{
		Version:    6,
		HopLimit:   64,
		NextHeader: proto,
		SrcIP:      f.SrcIP.AsSlice(),
		DstIP:      f.DstIP.AsSlice(),
	}
	return eth, ip, ip, nil
}

func (w *Writer) writeTCP(payload []byte, f Flow, ts time.Time) error {
	eth, ip, nl, err := w.network(f, layers.IPProtocolTCP)
	if err != nil {
		return err
	}
	k := f.key()
	seq, ok := w.seq[k]
	if !ok {
		seq = initialSeq
	}
	ack, ok := w.seq[f.Reverse().key()]
	if !ok {
		ack = initialSeq
	}
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(f.SrcPort),
		DstPort: layers.TCPPort(f.DstPort),
		Seq:     seq,
		Ack:     ack,
		ACK:     true,
		PSH:     true,
		Window:  65535,
	}
	if err := tcp.SetNetworkLayerForChecksum(nl); err != nil {
		return err
	}
	if err := w.writePacket(ts, eth, ip, tcp, gopacket.Payload(payload)); err != nil {
		return err
	}
	w.seq[k] = seq + uint32(len(payload))
	return nil
}

func (w *Writer) writeSCTP(payload []byte, f Flow, ts time.Time) error {
	eth, ip, _, err := w.network(f, layers.IPProtocolSCTP)
	if err != nil {
		return err
	}
	k := f.key()
	w.tsn[k]++
	sctp := &layers.SCTP{
		SrcPort:         layers.SCTPPort(f.SrcPort),
		DstPort:         layers.SCTPPort(f.DstPort),
		VerificationTag: 1,
	}
	chunk := &layers.SCTPData{
		SCTPChunk:       layers.SCTPChunk{Type: layers.SCTPChunkTypeData},
		BeginFragment:   true,
		EndFragment:     true,
		TSN:             w.tsn[k],
		PayloadProtocol: diameterPPID,
	}
	return w.writePacket(ts, eth, ip, sctp, chunk, gopacket.Payload(payload))
}

// diameterPPID is the SCTP payload protocol identifier for Diameter.
const diameterPPID layers.SCTPPayloadProtocol = 46

func (w *Writer) writePacket(ts time.Time, l ...gopacket.SerializableLayer) error {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	if err := gopacket.SerializeLayers(buf, opts, l...); err != nil {
		return fmt.Errorf("serialize packet: %w", err)
	}
	data := buf.Bytes()
	ci := gopacket.CaptureInfo{
		Timestamp:     ts,
		CaptureLength: len(data),
		Length:        len(data),
	}
	if err := w.w.WritePacket(ci, data); err != nil {
		return err
	}
	w.packets++
	return nil
}
