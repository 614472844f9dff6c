package metrics

import (
	"sort"
	"sync"
	"time"
)

const responseTimeWindow = 1000

type Metrics struct {
	mutex         sync.RWMutex
	loads         map[string]LoadMetrics
	requests      int64
	responseTimes []time.Duration
	statusCodes   map[int]int64
	healthy       bool
	startTime     time.Time
}

type Snapshot struct {
	TotalRequests int64                  `json:"total_requests"`
	Uptime        time.Duration          `json:"uptime"`
	Loads         map[string]LoadMetrics `json:"loads"`
	Upstream      UpstreamMetrics        `json:"upstream"`
}

// LoadMetrics records how one startup configuration loader resolved.
type LoadMetrics struct {
	Outcome     string        `json:"outcome"`
	Duration    time.Duration `json:"duration"`
	CompletedAt time.Time     `json:"completed_at"`
}

type UpstreamMetrics struct {
	Requests    int64         `json:"requests"`
	Healthy     bool          `json:"healthy"`
	AvgResponse time.Duration `json:"avg_response"`
	P50Response time.Duration `json:"p50_response"`
	P95Response time.Duration `json:"p95_response"`
	P99Response time.Duration `json:"p99_response"`
	StatusCodes map[int]int64 `json:"status_codes"`
}

func (m *Metrics) RecordLoad(source, outcome string, duration time.Duration, completedAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.loads[source] = LoadMetrics{
		Outcome:     outcome,
		Duration:    duration,
		CompletedAt: completedAt,
	}
}

func (m *Metrics) IncrementRequests() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests++
}

func (m *Metrics) RecordResponse(duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.responseTimes = append(m.responseTimes, duration)

	if len(m.responseTimes) > responseTimeWindow {
		m.responseTimes = m.responseTimes[1:]
	}

	m.statusCodes[statusCode]++
}

func (m *Metrics) UpdateHealthStatus(healthy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.healthy = healthy
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		TotalRequests: m.requests,
		Uptime:        time.Since(m.startTime),
		Loads:         make(map[string]LoadMetrics, len(m.loads)),
		Upstream: UpstreamMetrics{
			Requests:    m.requests,
			Healthy:     m.healthy,
			StatusCodes: make(map[int]int64, len(m.statusCodes)),
		},
	}

	for source, load := range m.loads {
		snap.Loads[source] = load
	}

	for code, count := range m.statusCodes {
		snap.Upstream.StatusCodes[code] = count
	}

	if len(m.responseTimes) > 0 {
		sorted := make([]time.Duration, len(m.responseTimes))
		copy(sorted, m.responseTimes)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.Upstream.AvgResponse = average(sorted)
		snap.Upstream.P50Response = percentile(sorted, 0.50)
		snap.Upstream.P95Response = percentile(sorted, 0.95)
		snap.Upstream.P99Response = percentile(sorted, 0.99)
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		loads:       make(map[string]LoadMetrics),
		statusCodes: make(map[int]int64),
		startTime:   time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
