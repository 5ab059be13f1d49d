package pcap

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"

	"github.com/hsdfat8/diam-codec/message"
	"github.com/hsdfat8/diam-codec/pkg/metrics"
)

// Packet is one Diameter message recovered from a capture.
type Packet struct {
	Timestamp time.Time
	Flow      Flow
	Data      []byte
	Message   *message.Message
}

// Reader extracts Diameter messages from TCP segments and SCTP DATA chunks
// whose source or destination port is in Ports. TCP payloads are
// concatenated per flow in capture order.
type Reader struct {
	Ports []uint16

	r       *pcapgo.Reader
	closers []io.Closer
	rec     *metrics.Recorder
	pending map[flowKey][]byte
	queue   []Packet
	packets int
}

// NewReader reads a pcap stream from r. rec may be nil.
func NewReader(r io.Reader, rec *metrics.Recorder) (*Reader, error) {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read pcap header: %w", err)
	}
	return &Reader{
		Ports:   []uint16{DiameterPort, 5658},
		r:       pr,
		rec:     rec,
		pending: make(map[flowKey][]byte),
	}, nil
}

// Open opens the capture at path, decompressing ".zst" files.
func Open(path string, rec *metrics.Recorder) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var (
		in      io.Reader = f
		closers           = []io.Closer{f}
	)
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		rc := dec.IOReadCloser()
		in = rc
		closers = []io.Closer{rc, f}
	}
	r, err := NewReader(in, rec)
	if err != nil {
		return nil, multierr.Append(err, closeAll(closers))
	}
	r.closers = closers
	log.Infow("Reading capture", "file", path, "link_type", r.r.LinkType().String())
	return r, nil
}

// Close closes the file opened by Open.
func (r *Reader) Close() error {
	err := closeAll(r.closers)
	r.closers = nil
	return err
}

// Packets returns the number of capture records read so far.
func (r *Reader) Packets() int {
	return r.packets
}

// Next returns the next message in the capture. It returns io.EOF once the
// capture is exhausted; bytes left over from an incomplete TCP message are
// discarded.
func (r *Reader) Next() (Packet, error) {
	for len(r.queue) == 0 {
		data, ci, err := r.r.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.dropPending()
				return Packet{}, io.EOF
			}
			return Packet{}, err
		}
		r.packets++
		if err := r.handle(data, ci.Timestamp); err != nil {
			return Packet{}, err
		}
	}
	p := r.queue[0]
	r.queue = r.queue[1:]
	return p, nil
}

// All reads every remaining message.
func (r *Reader) All() ([]Packet, error) {
	var out []Packet
	for {
		p, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
}

func (r *Reader) dropPending() {
	for k, b := range r.pending {
		if len(b) > 0 {
			log.Warnw("Discarding incomplete message at end of capture", "src", k.src.String(), "dst", k.dst.String(), "bytes", len(b))
		}
	}
	clear(r.pending)
}

func (r *Reader) wanted(src, dst uint16) bool {
	return slices.Contains(r.Ports, src) || slices.Contains(r.Ports, dst)
}

func (r *Reader) handle(data []byte, ts time.Time) error {
	pkt := gopacket.NewPacket(data, r.r.LinkType(), gopacket.DecodeOptions{Lazy: true, NoCopy: true})

	var f Flow
	if eth, ok := pkt.LinkLayer().(*layers.Ethernet); ok {
		f.SrcMAC, f.DstMAC = eth.SrcMAC, eth.DstMAC
	}
	switch ip := pkt.NetworkLayer().(type) {
	case *layers.IPv4:
		f.SrcIP, _ = netip.AddrFromSlice(ip.SrcIP)
		f.DstIP, _ = netip.AddrFromSlice(ip.DstIP)
	case *layers.IPv6:
		f.SrcIP, _ = netip.AddrFromSlice(ip.SrcIP)
		f.DstIP, _ = netip.AddrFromSlice(ip.DstIP)
	default:
		return nil
	}
	f.SrcIP, f.DstIP = f.SrcIP.Unmap(), f.DstIP.Unmap()

	if l := pkt.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		f.SrcPort, f.DstPort, f.Transport = uint16(tcp.SrcPort), uint16(tcp.DstPort), TCP
		if !r.wanted(f.SrcPort, f.DstPort) || len(tcp.Payload) == 0 {
			return nil
		}
		r.reassemble(f, tcp.Payload, ts)
		return nil
	}

	if l := pkt.Layer(layers.LayerTypeSCTP); l != nil {
		sctp := l.(*layers.SCTP)
		f.SrcPort, f.DstPort, f.Transport = uint16(sctp.SrcPort), uint16(sctp.DstPort), SCTP
		if !r.wanted(f.SrcPort, f.DstPort) {
			return nil
		}
		for _, l := range pkt.Layers() {
			if chunk, ok := l.(*layers.SCTPData); ok && len(chunk.Payload) > 0 {
				r.emit(f, chunk.Payload, ts)
			}
		}
	}
	return nil
}

// reassemble appends a TCP payload to its flow and emits every complete
// message. An invalid header drops the buffered bytes for that flow.
func (r *Reader) reassemble(f Flow, payload []byte, ts time.Time) {
	k := f.key()
	buf := append(r.pending[k], payload...)
	for len(buf) >= message.HeaderLength {
		h, err := message.DecodeHeader(buf)
		if err != nil {
			r.rec.ObserveError(metrics.OpDecode, err)
			log.Warnw("Dropping unframed TCP bytes", "flow", f.String(), "bytes", len(buf), "error", err)
			buf = nil
			break
		}
		if len(buf) < int(h.Length) {
			break
		}
		r.emit(f, buf[:h.Length], ts)
		buf = buf[h.Length:]
	}
	if len(buf) == 0 {
		delete(r.pending, k)
		return
	}
	r.pending[k] = slices.Clone(buf)
}

func (r *Reader) emit(f Flow, data []byte, ts time.Time) {
	data = slices.Clone(data)
	m, err := message.Decode(data)
	if err != nil {
		r.rec.ObserveError(metrics.OpDecode, err)
		log.Warnw("Failed to decode message", "flow", f.String(), "error", err)
		return
	}
	r.rec.Observe(metrics.OpDecode, m, len(data))
	r.queue = append(r.queue, Packet{Timestamp: ts, Flow: f, Data: data[:m.Header.Length], Message: m})
}
