package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/hsdfat8/diam-codec/commands/base"
	"github.com/hsdfat8/diam-codec/message"
)

// Op labels the codec direction.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// Recorder collects codec activity. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	Encoded *MessageTypeMetrics
	Decoded *MessageTypeMetrics

	messages *prometheus.CounterVec
	avps     *prometheus.CounterVec
	size     *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewRecorder creates the collectors under namespace. They are not
// registered until Register is called.
func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = "diameter"
	}
	return &Recorder{
		Encoded: NewMessageTypeMetrics(),
		Decoded: NewMessageTypeMetrics(),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "Diameter messages encoded or decoded.",
			},
			[]string{"op", "command", "type"},
		),
		avps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "avps_total",
				Help:      "Top-level AVPs in encoded or decoded messages.",
			},
			[]string{"op"},
		),
		size: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "message_size_bytes",
				Help:      "Encoded message size.",
				Buckets:   []float64{20, 64, 128, 256, 512, 1024, 2048, 4096, 16384, 65536},
			},
			[]string{"op"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Codec failures by kind.",
			},
			[]string{"op", "kind"},
		),
	}
}

// Collectors returns the Prometheus collectors owned by r.
func (r *Recorder) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.messages, r.avps, r.size, r.errors}
}

// Register registers every collector with reg and reports all failures.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	var err error
	for _, c := range r.Collectors() {
		err = multierr.Append(err, reg.Register(c))
	}
	return err
}

// Observe records one message of size bytes.
func (r *Recorder) Observe(op Op, m *message.Message, size int) {
	if r == nil || m == nil {
		return
	}
	typ := "answer"
	if m.Header.IsRequest() {
		typ = "request"
	}
	code := m.Header.CommandCode
	r.messages.WithLabelValues(string(op), base.CommandName(code), typ).Inc()
	r.avps.WithLabelValues(string(op)).Add(float64(len(m.AVPs)))
	r.size.WithLabelValues(string(op)).Observe(float64(size))
	if op == OpEncode {
		r.Encoded.Increment(code)
	} else {
		r.Decoded.Increment(code)
	}
}

// ObserveError records a failed operation labelled by message.ErrorKind.
func (r *Recorder) ObserveError(op Op, err error) {
	if r == nil || err == nil {
		return
	}
	r.errors.WithLabelValues(string(op), message.ErrorKind(err)).Inc()
}

// Summary renders both directions on one line each.
func (r *Recorder) Summary() string {
	if r == nil {
		return ""
	}
	return CompactMetrics("Encoded", r.Encoded) + "\n" + CompactMetrics("Decoded", r.Decoded)
}
