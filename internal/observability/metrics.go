package observability

import (
	"sync"
	"time"
)

type requestKey struct {
	route  string
	method string
	status int
}

type errorKey struct {
	route  string
	method string
	code   string
}

type requestStat struct {
	count   int64
	elapsed time.Duration
}

// Metrics keeps in-process request and error counters per route. They
// are inspected through the accessors (and logs), not scraped.
type Metrics struct {
	mu       sync.Mutex
	requests map[requestKey]*requestStat
	errors   map[errorKey]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[requestKey]*requestStat),
		errors:   make(map[errorKey]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	key := requestKey{route: route, method: method, status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	stat := m.requests[key]
	if stat == nil {
		stat = &requestStat{}
		m.requests[key] = stat
	}
	stat.count++
	stat.elapsed += elapsed
}

// RecordError counts a request that ended in the given error code.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[errorKey{route: route, method: method, code: code}]++
}

// RequestCount returns how many requests completed for the combination.
func (m *Metrics) RequestCount(route, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if stat := m.requests[requestKey{route: route, method: method, status: status}]; stat != nil {
		return stat.count
	}
	return 0
}

// TotalLatency returns the accumulated wall time for the combination.
func (m *Metrics) TotalLatency(route, method string, status int) time.Duration {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if stat := m.requests[requestKey{route: route, method: method, status: status}]; stat != nil {
		return stat.elapsed
	}
	return 0
}

// ErrorCount returns how many requests failed with the given code.
func (m *Metrics) ErrorCount(route, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[errorKey{route: route, method: method, code: code}]
}
