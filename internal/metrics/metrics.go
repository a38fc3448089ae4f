package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	HeadlinesProcessed int64
	DuplicatesFiltered int64
	ClassifyFailures   int64
	FailedTranslations int64
	AlertsPosted       int64
	CacheHits          int64

	// Timings
	LastCycleTime    time.Duration
	AverageCycleTime time.Duration
	TotalCycleTime   time.Duration
	CycleCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementHeadlinesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HeadlinesProcessed++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementClassifyFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassifyFailures++
}

func (m *Metrics) IncrementFailedTranslations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedTranslations++
}

func (m *Metrics) IncrementAlertsPosted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AlertsPosted++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) RecordCycleTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCycleTime = duration
	m.TotalCycleTime += duration
	m.CycleCount++

	if m.CycleCount > 0 {
		m.AverageCycleTime = m.TotalCycleTime / time.Duration(m.CycleCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"headlines_processed":   m.HeadlinesProcessed,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"classify_failures":     m.ClassifyFailures,
		"failed_translations":   m.FailedTranslations,
		"alerts_posted":         m.AlertsPosted,
		"cache_hits":            m.CacheHits,
		"last_cycle_time_ms":    m.LastCycleTime.Milliseconds(),
		"average_cycle_time_ms": m.AverageCycleTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
