// Package bench issues repeated exchanges through a fetch client and
// aggregates latency metrics.
package bench

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Metrics collects latency and outcome counters for one bench run.
type Metrics struct {
	mu sync.Mutex

	totalRequests   atomic.Int64
	successRequests atomic.Int64
	errorRequests   atomic.Int64

	// Latency histogram (in microseconds for precision)
	histogram *hdrhistogram.Histogram

	startTime time.Time
	endTime   time.Time
}

// NewMetrics creates a new Metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		// Histogram: 1us to 60s range, 3 significant digits
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Start marks the beginning of the run
func (m *Metrics) Start() {
	m.startTime = time.Now()
}

// Stop marks the end of the run
func (m *Metrics) Stop() {
	m.endTime = time.Now()
}

// Record records one exchange outcome
func (m *Metrics) Record(duration time.Duration, err error) {
	m.totalRequests.Add(1)

	if err != nil {
		m.errorRequests.Add(1)
	} else {
		m.successRequests.Add(1)
	}

	latencyUs := duration.Microseconds()
	if latencyUs < 1 {
		latencyUs = 1
	}
	if latencyUs > 60_000_000 {
		latencyUs = 60_000_000
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(latencyUs)
	m.mu.Unlock()
}

// Report is a summary of one completed run.
type Report struct {
	Total    int64
	Success  int64
	Errors   int64
	Duration time.Duration
	RPS      float64

	P50 time.Duration
	P90 time.Duration
	P95 time.Duration
	P99 time.Duration
	Max time.Duration
}

// Report builds a summary. Call after Stop.
func (m *Metrics) Report() *Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := m.endTime.Sub(m.startTime)
	total := m.totalRequests.Load()

	rps := 0.0
	if elapsed > 0 {
		rps = float64(total) / elapsed.Seconds()
	}

	return &Report{
		Total:    total,
		Success:  m.successRequests.Load(),
		Errors:   m.errorRequests.Load(),
		Duration: elapsed,
		RPS:      rps,
		P50:      time.Duration(m.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P90:      time.Duration(m.histogram.ValueAtQuantile(90)) * time.Microsecond,
		P95:      time.Duration(m.histogram.ValueAtQuantile(95)) * time.Microsecond,
		P99:      time.Duration(m.histogram.ValueAtQuantile(99)) * time.Microsecond,
		Max:      time.Duration(m.histogram.Max()) * time.Microsecond,
	}
}
