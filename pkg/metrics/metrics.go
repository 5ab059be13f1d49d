// Package metrics counts encoded and decoded Diameter messages, both as
// in-process per-command counters and as Prometheus collectors.
package metrics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hsdfat8/diam-codec/commands/base"
)

// MessageTypeMetrics tracks the number of messages seen for each command code
type MessageTypeMetrics struct {
	counters map[uint32]*atomic.Uint64
	mu       sync.RWMutex
}

// NewMessageTypeMetrics creates a new MessageTypeMetrics instance
func NewMessageTypeMetrics() *MessageTypeMetrics {
	return &MessageTypeMetrics{
		counters: make(map[uint32]*atomic.Uint64),
	}
}

// Increment increments the counter for a command code
func (m *MessageTypeMetrics) Increment(commandCode uint32) {
	m.mu.RLock()
	counter, exists := m.counters[commandCode]
	m.mu.RUnlock()
	if !exists {
		m.mu.Lock()
		if counter, exists = m.counters[commandCode]; !exists {
			counter = &atomic.Uint64{}
			m.counters[commandCode] = counter
		}
		m.mu.Unlock()
	}
	counter.Add(1)
}

// Get returns the count for a command code
func (m *MessageTypeMetrics) Get(commandCode uint32) uint64 {
	m.mu.RLock()
	counter, exists := m.counters[commandCode]
	m.mu.RUnlock()

	if !exists {
		return 0
	}
	return counter.Load()
}

// GetAll returns a snapshot of all counters
func (m *MessageTypeMetrics) GetAll() map[uint32]uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[uint32]uint64, len(m.counters))
	for code, counter := range m.counters {
		result[code] = counter.Load()
	}
	return result
}

// Total returns the sum of all counters
func (m *MessageTypeMetrics) Total() uint64 {
	var total uint64
	for _, n := range m.GetAll() {
		total += n
	}
	return total
}

// Reset clears all counters
func (m *MessageTypeMetrics) Reset() {
	m.mu.Lock()
	m.counters = make(map[uint32]*atomic.Uint64)
	m.mu.Unlock()
}

func sortedCodes(counters map[uint32]uint64) []uint32 {
	codes := make([]uint32, 0, len(counters))
	for code := range counters {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// FormatMetrics renders the counters as a table ordered by command code
func FormatMetrics(direction string, metrics *MessageTypeMetrics) string {
	var sb strings.Builder
	counters := metrics.GetAll()

	fmt.Fprintf(&sb, "\n%s Metrics by Message Type:\n", direction)
	sb.WriteString("┌─────────────────────────────────┬───────────┐\n")
	sb.WriteString("│ Message Type                    │ Count     │\n")
	sb.WriteString("├─────────────────────────────────┼───────────┤\n")

	total := uint64(0)
	for _, code := range sortedCodes(counters) {
		fmt.Fprintf(&sb, "│ %-31s │ %9d │\n", base.CommandName(code), counters[code])
		total += counters[code]
	}

	sb.WriteString("├─────────────────────────────────┼───────────┤\n")
	fmt.Fprintf(&sb, "│ %-31s │ %9d │\n", "TOTAL", total)
	sb.WriteString("└─────────────────────────────────┴───────────┘\n")

	return sb.String()
}

// CompactMetrics formats the counters on a single line
func CompactMetrics(direction string, metrics *MessageTypeMetrics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: ", direction)
	counters := metrics.GetAll()
	total := uint64(0)

	for _, code := range sortedCodes(counters) {
		if count := counters[code]; count > 0 {
			fmt.Fprintf(&sb, "[%s=%d] ", base.CommandName(code), count)
			total += count
		}
	}

	fmt.Fprintf(&sb, "(Total=%d)", total)
	return sb.String()
}
